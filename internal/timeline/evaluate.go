package timeline

// Evaluation is what the engine produces per element per query. When
// Visible is false, Props carries no meaning and must not be rendered.
type Evaluation struct {
	Visible bool
	Props   Properties
}

// Evaluate computes an element's visibility and interpolated
// properties at t. It is pure: identical input always yields an
// identical result, so the playback clock, the zine scroll handler,
// and manual scrubs can all call it without coordination.
func Evaluate(el *Element, t float64) Evaluation {
	if el.Timeline == nil {
		return Evaluation{Visible: true, Props: el.Base}
	}
	if !Visible(el.Timeline, t) {
		return Evaluation{}
	}

	res := Resolve(el.Timeline.Keyframes, t)

	var a, b Snapshot
	progress := res.Progress
	easingName := ""
	switch {
	case res.Prev != nil && res.Next != nil:
		a, b = res.Prev.Props, res.Next.Props
		easingName = res.Next.Easing
	case res.Prev != nil:
		// Past the last keyframe: hold its values.
		a, b = res.Prev.Props, res.Prev.Props
		progress = 0
	case res.Next != nil:
		// Before the first keyframe: the element appears already in
		// its first animated state.
		a, b = res.Next.Props, res.Next.Props
		progress = 0
	default:
		// No keyframe data at all.
		return Evaluation{Visible: true, Props: el.Base}
	}

	return Evaluation{
		Visible: true,
		Props: Properties{
			Position: blendPoint(a.Position, b.Position, progress, easingName, el.Base.Position),
			Size:     blendSize(a.Size, b.Size, progress, easingName, el.Base.Size),
			Rotation: blendScalar(a.Rotation, b.Rotation, progress, easingName, el.Base.Rotation),
			Opacity:  blendScalar(a.Opacity, b.Opacity, progress, easingName, el.Base.Opacity),
		},
	}
}
