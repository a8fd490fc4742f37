package timeline

// Visible reports whether timeline data places its element inside the
// visibility window at t. A nil TimelineData is a static layer and is
// always visible. The zero EntryPoint means the entry is always past.
// Persist keeps the element visible past its exit, frozen at the last
// evaluated state.
//
// This check is independent of keyframe data: an element with
// keyframes inside a hidden range is still hidden, and evaluation
// short-circuits before interpolating for it.
func Visible(td *TimelineData, t float64) bool {
	if td == nil {
		return true
	}
	afterEntry := t >= td.EntryPoint
	beforeExit := td.ExitPoint == nil || t <= *td.ExitPoint || td.Persist
	return afterEntry && beforeExit
}
