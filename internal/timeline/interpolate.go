package timeline

import "github.com/zinecanvas/engine/internal/easing"

// Interpolate blends two scalars at the given progress under the named
// easing curve. Progress is clamped to [0,1] before the curve is
// applied; the curve itself may still overshoot, so back and elastic
// segments swing past their target on the way in.
func Interpolate(from, to, progress float64, easingName string) float64 {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	return from + (to-from)*easing.Lookup(easingName)(progress)
}

// Structured values interpolate field-by-field with the same scalar
// routine. A field present on only one side passes through unblended;
// a field present on neither falls back to the base value.

func blendPoint(a, b *Point, progress float64, easingName string, base Point) Point {
	switch {
	case a != nil && b != nil:
		return Point{
			X: Interpolate(a.X, b.X, progress, easingName),
			Y: Interpolate(a.Y, b.Y, progress, easingName),
		}
	case a != nil:
		return *a
	case b != nil:
		return *b
	}
	return base
}

func blendSize(a, b *Size, progress float64, easingName string, base Size) Size {
	switch {
	case a != nil && b != nil:
		return Size{
			Width:  Interpolate(a.Width, b.Width, progress, easingName),
			Height: Interpolate(a.Height, b.Height, progress, easingName),
		}
	case a != nil:
		return *a
	case b != nil:
		return *b
	}
	return base
}

func blendScalar(a, b *float64, progress float64, easingName string, base float64) float64 {
	switch {
	case a != nil && b != nil:
		return Interpolate(*a, *b, progress, easingName)
	case a != nil:
		return *a
	case b != nil:
		return *b
	}
	return base
}
