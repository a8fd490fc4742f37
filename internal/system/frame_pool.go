package system

import (
	"image"
	"sync"
)

// FramePool recycles per-frame RGBA buffers of one size so a long
// export does not churn the garbage collector with megabyte
// allocations per frame.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

// NewFramePool creates a pool producing buffers of the given bounds.
func NewFramePool(rect image.Rectangle) *FramePool {
	return &FramePool{
		rect: rect,
		pool: sync.Pool{
			New: func() any { return image.NewRGBA(rect) },
		},
	}
}

// Get returns a frame buffer. Contents are whatever the previous user
// left; callers overwrite the full frame anyway.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns a buffer for reuse. Buffers of a different size are
// dropped rather than poisoning the pool.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
