// Package playback provides the two time drivers of the editor: a
// frame-loop clock for live playback and a scroll-offset mapper for
// the zine view. Both produce plain timeline positions; evaluation
// itself lives in the timeline package and stays driver-agnostic.
package playback

import (
	"log/slog"
	"math"
	"sync"
	"time"
)

// State is the shared playback state exposed to the scrubbing UI.
type State struct {
	Position float64
	Playing  bool
	Speed    float64
	Duration float64
}

// Config holds clock configuration.
type Config struct {
	// TickInterval is the frame-loop period. Elapsed time is measured
	// from the wall clock on every tick, so a slow or suspended loop
	// produces one large jump, not a burst of catch-up ticks.
	TickInterval time.Duration

	// MinSpeed is the lowest accepted speed multiplier. Zero and
	// negative speeds are not supported.
	MinSpeed float64

	Logger *slog.Logger
}

// DefaultConfig returns the default clock configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: 33 * time.Millisecond,
		MinSpeed:     0.1,
	}
}

// Clock advances a timeline position while playing, wrapping to the
// start when it reaches the duration. The duration is read through a
// callback so the owning stage can cache and invalidate it on element
// mutation rather than per tick.
//
// Positions move only under mu. The previous-tick wall time is a local
// of the run loop, deliberately outside the shared state: the loop's
// inputs are playing/speed/duration, never the position it writes.
type Clock struct {
	cfg      Config
	duration func() float64
	logger   *slog.Logger

	mu       sync.Mutex
	position float64
	speed    float64
	playing  bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewClock creates a stopped clock at position 0 with speed 1.
func NewClock(duration func() float64, cfg Config) *Clock {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.MinSpeed <= 0 {
		cfg.MinSpeed = DefaultConfig().MinSpeed
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Clock{
		cfg:      cfg,
		duration: duration,
		logger:   cfg.Logger,
		speed:    1,
	}
}

// Play starts the frame loop. Calling Play on a running clock is a
// no-op.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	c.playing = true
	c.stopCh = make(chan struct{})
	c.wg.Add(1)
	go c.run(c.stopCh)
}

// Pause stops the frame loop and waits until the outstanding tick is
// cancelled, so no ghost tick can advance the position afterwards.
func (c *Clock) Pause() {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	c.playing = false
	stop := c.stopCh
	c.stopCh = nil
	c.mu.Unlock()

	close(stop)
	c.wg.Wait()
}

// Toggle flips between playing and paused.
func (c *Clock) Toggle() {
	if c.Playing() {
		c.Pause()
	} else {
		c.Play()
	}
}

// Seek moves the position, clamped to [0, duration]. Seeking does not
// change the play state: a running clock simply resumes advancing from
// the new position on its next tick.
func (c *Clock) Seek(t float64) {
	d := c.duration()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = clamp(t, 0, d)
}

// SetSpeed sets the speed multiplier, clamped up to the configured
// minimum. It takes effect on the next tick.
func (c *Clock) SetSpeed(speed float64) {
	if speed < c.cfg.MinSpeed {
		c.logger.Warn("playback speed clamped", slog.Float64("requested", speed), slog.Float64("min", c.cfg.MinSpeed))
		speed = c.cfg.MinSpeed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
}

// Position returns the current timeline position.
func (c *Clock) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Playing reports whether the frame loop is running.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Speed returns the current speed multiplier.
func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Snapshot returns the full playback state in one consistent read.
func (c *Clock) Snapshot() State {
	d := c.duration()
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Position: c.position, Playing: c.playing, Speed: c.speed, Duration: d}
}

func (c *Clock) run(stop chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	// Loop-local: the previous tick's wall time never enters the
	// shared state the loop depends on.
	last := time.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			c.step(now.Sub(last).Seconds())
			last = now
		}
	}
}

// step advances the position by elapsed wall-clock seconds scaled by
// speed, wrapping to the start at the duration.
func (c *Clock) step(elapsed float64) {
	d := c.duration()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position += elapsed * c.speed
	if d > 0 && c.position >= d {
		c.position = math.Mod(c.position, d)
	}
	if c.position < 0 {
		c.position = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
