// Package easing provides the named progress curves used by keyframe
// interpolation. Each curve maps normalized progress in [0,1] to eased
// progress. Outputs are deliberately unclamped: the back and elastic
// curves overshoot past 1 before settling, and callers rely on that.
package easing

import "math"

// Func is a pure easing curve.
type Func func(t float64) float64

const (
	backC1    = 1.70158
	backC3    = backC1 + 1
	elasticC4 = 2 * math.Pi / 3
)

// Linear returns progress unchanged.
func Linear(t float64) float64 { return t }

// Standard is a symmetric cubic ease-in-out, continuous and smooth at
// the t=0.5 joint. It is the default curve for every segment that
// does not name one.
func Standard(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Emphasized is a cubic back-out: it briefly overshoots above 1 before
// settling at the target.
func Emphasized(t float64) float64 {
	return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
}

// Decelerate eases out quadratically.
func Decelerate(t float64) float64 { return 1 - (1-t)*(1-t) }

// Accelerate eases in quadratically.
func Accelerate(t float64) float64 { return t * t }

// Elastic is a decaying sinusoid: exactly 0 at t=0 and 1 at t=1, with
// diminishing oscillation around 1 in between.
func Elastic(t float64) float64 {
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
}

// Bounce is a four-segment piecewise parabola simulating a ball
// settling on the target value.
func Bounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

var curves = map[string]Func{
	"linear":      Linear,
	"standard":    Standard,
	"ease-in-out": Standard,
	"emphasized":  Emphasized,
	"back":        Emphasized,
	"decelerate":  Decelerate,
	"accelerate":  Accelerate,
	"elastic":     Elastic,
	"bounce":      Bounce,
}

// Lookup resolves a curve by name. Unknown names resolve to Standard;
// a bad name costs the caller a default curve, never an error.
func Lookup(name string) Func {
	if f, ok := curves[name]; ok {
		return f
	}
	return Standard
}
