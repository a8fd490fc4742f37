package easing

import (
	"math"
	"testing"
)

func TestEndpoints(t *testing.T) {
	// Every curve must hit its endpoints exactly so interpolation lands
	// on keyframe values at progress 0 and 1.
	names := []string{"linear", "standard", "emphasized", "decelerate", "accelerate", "elastic", "bounce"}

	for _, name := range names {
		fn := Lookup(name)
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestStandardMidpoint(t *testing.T) {
	// The cubic in-out joint at t=0.5 must be continuous.
	left := Standard(0.5 - 1e-9)
	right := Standard(0.5 + 1e-9)
	if math.Abs(left-right) > 1e-6 {
		t.Errorf("discontinuity at 0.5: left=%v right=%v", left, right)
	}
	if got := Standard(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Standard(0.5) = %v, want 0.5", got)
	}
}

func TestEmphasizedOvershoots(t *testing.T) {
	overshot := false
	for p := 0.5; p < 1.0; p += 0.01 {
		if Emphasized(p) > 1.0 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("Emphasized should exceed 1.0 before settling")
	}
}

func TestElasticOscillates(t *testing.T) {
	above, below := false, false
	for p := 0.1; p < 1.0; p += 0.01 {
		v := Elastic(p)
		if v > 1.0 {
			above = true
		}
		if v < 1.0 {
			below = true
		}
	}
	if !above || !below {
		t.Errorf("Elastic should oscillate around 1 (above=%v below=%v)", above, below)
	}
}

func TestBounceSegments(t *testing.T) {
	// Each breakpoint lands back on a parabola start; values stay in [0, 1].
	for p := 0.0; p <= 1.0; p += 0.001 {
		v := Bounce(p)
		if v < 0 || v > 1.0+1e-9 {
			t.Fatalf("Bounce(%v) = %v out of range", p, v)
		}
	}
}

func TestLookupFallback(t *testing.T) {
	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{"linear", 0.25, 0.25},
		{"accelerate", 0.5, 0.25},
		{"decelerate", 0.5, 0.75},
		{"no-such-curve", 0.5, Standard(0.5)},
		{"", 0.5, Standard(0.5)},
	}

	for _, tt := range tests {
		if got := Lookup(tt.name)(tt.at); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lookup(%q)(%v) = %v, want %v", tt.name, tt.at, got, tt.want)
		}
	}
}
