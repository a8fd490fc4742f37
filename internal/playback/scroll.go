package playback

// DefaultPixelsPerSecond is the zine view's scroll-to-time ratio.
const DefaultPixelsPerSecond = 100.0

// ScrollMapper converts a pixel scroll offset into a timeline position
// for the zine view, where scrolling replaces the clock as the time
// source.
type ScrollMapper struct {
	PixelsPerSecond float64
}

// NewScrollMapper creates a mapper; ratios at or below zero fall back
// to the default.
func NewScrollMapper(pixelsPerSecond float64) ScrollMapper {
	if pixelsPerSecond <= 0 {
		pixelsPerSecond = DefaultPixelsPerSecond
	}
	return ScrollMapper{PixelsPerSecond: pixelsPerSecond}
}

// Time maps a scroll offset in pixels to a timeline position.
func (m ScrollMapper) Time(scrollPixels float64) float64 {
	return scrollPixels / m.PixelsPerSecond
}

// Pixels is the inverse mapping, used to size the zine scroll run for
// a timeline of the given length.
func (m ScrollMapper) Pixels(t float64) float64 {
	return t * m.PixelsPerSecond
}
