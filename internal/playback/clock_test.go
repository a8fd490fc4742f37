package playback

import (
	"math"
	"testing"
	"time"
)

func fixedDuration(d float64) func() float64 {
	return func() float64 { return d }
}

func TestStepWraps(t *testing.T) {
	c := NewClock(fixedDuration(10), DefaultConfig())
	c.SetSpeed(2)

	// 6 elapsed seconds at speed 2 covers 12 timeline seconds: one
	// full lap of 10 plus 2.
	c.step(6)

	if got := c.Position(); math.Abs(got-2) > 1e-9 {
		t.Errorf("position after wrap = %v, want 2", got)
	}
}

func TestStepAccumulates(t *testing.T) {
	c := NewClock(fixedDuration(100), DefaultConfig())

	// Uneven frame deltas, as a real loop produces.
	for _, dt := range []float64{0.016, 0.033, 0.5, 0.001} {
		c.step(dt)
	}

	if got := c.Position(); math.Abs(got-0.55) > 1e-9 {
		t.Errorf("position = %v, want 0.55", got)
	}
}

func TestStepLongGap(t *testing.T) {
	// A suspended loop recovers with one large jump, never an error.
	c := NewClock(fixedDuration(60), DefaultConfig())
	c.step(3600)

	got := c.Position()
	if got < 0 || got >= 60 {
		t.Errorf("position after long gap = %v, want within [0, 60)", got)
	}
}

func TestSeekClampsAndKeepsPlayState(t *testing.T) {
	c := NewClock(fixedDuration(30), DefaultConfig())

	c.Seek(-5)
	if got := c.Position(); got != 0 {
		t.Errorf("Seek(-5): position = %v, want 0", got)
	}
	c.Seek(100)
	if got := c.Position(); got != 30 {
		t.Errorf("Seek(100): position = %v, want clamp at duration 30", got)
	}

	c.Play()
	defer c.Pause()
	c.Seek(3)
	if !c.Playing() {
		t.Error("seeking must not stop a running clock")
	}
}

func TestSetSpeedClampsToMinimum(t *testing.T) {
	c := NewClock(fixedDuration(10), DefaultConfig())

	for _, bad := range []float64{0, -1, 0.0001} {
		c.SetSpeed(bad)
		if got := c.Speed(); got != DefaultConfig().MinSpeed {
			t.Errorf("SetSpeed(%v): speed = %v, want min %v", bad, got, DefaultConfig().MinSpeed)
		}
	}

	c.SetSpeed(4)
	if got := c.Speed(); got != 4 {
		t.Errorf("speed = %v, want 4", got)
	}
}

func TestPauseCancelsTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = time.Millisecond

	c := NewClock(fixedDuration(1000), cfg)
	c.Play()
	time.Sleep(20 * time.Millisecond)
	c.Pause()

	// No ghost tick may fire after Pause returns.
	frozen := c.Position()
	if frozen == 0 {
		t.Error("clock did not advance while playing")
	}
	time.Sleep(20 * time.Millisecond)
	if got := c.Position(); got != frozen {
		t.Errorf("position moved after Pause: %v -> %v", frozen, got)
	}
}

func TestToggle(t *testing.T) {
	c := NewClock(fixedDuration(10), DefaultConfig())

	c.Toggle()
	if !c.Playing() {
		t.Fatal("first toggle should start playback")
	}
	c.Toggle()
	if c.Playing() {
		t.Fatal("second toggle should pause")
	}
}

func TestSnapshot(t *testing.T) {
	c := NewClock(fixedDuration(90), DefaultConfig())
	c.SetSpeed(2)
	c.Seek(12)

	got := c.Snapshot()
	want := State{Position: 12, Playing: false, Speed: 2, Duration: 90}
	if got != want {
		t.Errorf("Snapshot = %+v, want %+v", got, want)
	}
}
