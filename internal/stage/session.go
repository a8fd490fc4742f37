package stage

import (
	"github.com/zinecanvas/engine/internal/playback"
	"github.com/zinecanvas/engine/internal/timeline"
)

// Driver identifies which input channel currently feeds the shared
// timeline position. Exactly one driver is active per view mode;
// switching the view switches the driver, never runs two at once.
type Driver int

const (
	DriverClock Driver = iota
	DriverScroll
	DriverManual
)

func (d Driver) String() string {
	switch d {
	case DriverClock:
		return "clock"
	case DriverScroll:
		return "scroll"
	case DriverManual:
		return "manual"
	}
	return "unknown"
}

// Session binds a stage to its time drivers. All position writes
// funnel through the clock's seek; drivers never touch each other's
// internals.
type Session struct {
	stage  *Stage
	clock  *playback.Clock
	scroll playback.ScrollMapper
	driver Driver
}

// NewSession wires a session over the stage with the clock driver
// active, as in the editing view.
func NewSession(st *Stage, clockCfg playback.Config, pixelsPerSecond float64) *Session {
	return &Session{
		stage:  st,
		clock:  playback.NewClock(st.Duration, clockCfg),
		scroll: playback.NewScrollMapper(pixelsPerSecond),
		driver: DriverClock,
	}
}

// Stage returns the underlying stage.
func (s *Session) Stage() *Stage { return s.stage }

// Driver returns the active driver.
func (s *Session) Driver() Driver { return s.driver }

// SetDriver switches the active input channel. Leaving the clock
// driver pauses the frame loop so a backgrounded view cannot keep
// advancing time.
func (s *Session) SetDriver(d Driver) {
	if s.driver == DriverClock && d != DriverClock {
		s.clock.Pause()
	}
	s.driver = d
}

// Play starts clock-driven playback; it is ignored unless the clock
// drives the session.
func (s *Session) Play() {
	if s.driver != DriverClock {
		return
	}
	s.clock.Play()
}

// Pause stops clock-driven playback.
func (s *Session) Pause() { s.clock.Pause() }

// Toggle flips play/pause under the clock driver.
func (s *Session) Toggle() {
	if s.driver != DriverClock {
		return
	}
	s.clock.Toggle()
}

// Scrub moves the position directly. Allowed in any driver mode and in
// either play state; a running clock resumes from the new position on
// its next tick.
func (s *Session) Scrub(t float64) { s.clock.Seek(t) }

// HandleScroll feeds a zine-view scroll offset through the mapper.
// Ignored unless the scroll driver is active. The update is applied
// synchronously; evaluation is cheap and pure, so no debouncing.
func (s *Session) HandleScroll(scrollPixels float64) {
	if s.driver != DriverScroll {
		return
	}
	s.clock.Seek(s.scroll.Time(scrollPixels))
}

// SetSpeed adjusts the clock's speed multiplier.
func (s *Session) SetSpeed(speed float64) { s.clock.SetSpeed(speed) }

// Position returns the shared timeline position.
func (s *Session) Position() float64 { return s.clock.Position() }

// State returns the shared playback state.
func (s *Session) State() playback.State { return s.clock.Snapshot() }

// SetKeyframe records a keyframe for an element, defaulting a lazily
// created timeline window to the current position.
func (s *Session) SetKeyframe(id string, kf timeline.Keyframe) error {
	return s.stage.SetKeyframe(id, kf, s.clock.Position())
}

// Close tears the session down, cancelling any scheduled tick.
func (s *Session) Close() { s.clock.Pause() }
