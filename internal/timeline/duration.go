package timeline

const (
	// The timeline never shrinks below a minute.
	minDuration = 60.0

	// Extra room shown after the latest exit or keyframe.
	tailBuffer = 10.0
)

// TotalDuration derives the timeline length for a set of elements:
// long enough to show every exit point and every keyframe plus a
// buffer, floored at a minute. Callers cache the result and recompute
// only when element timeline data changes, never per time update.
func TotalDuration(elements []*Element) float64 {
	d := minDuration
	for _, el := range elements {
		td := el.Timeline
		if td == nil {
			continue
		}
		if td.ExitPoint != nil && *td.ExitPoint+tailBuffer > d {
			d = *td.ExitPoint + tailBuffer
		}
		if last := td.LastKeyframeTime(); last+tailBuffer > d {
			d = last + tailBuffer
		}
	}
	return d
}
