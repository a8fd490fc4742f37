package system

import (
	"image"
	"testing"
)

func TestWorkersAlwaysPositive(t *testing.T) {
	// Even absurd frame sizes must leave one worker.
	if got := Workers(1<<62, nil); got < 1 {
		t.Errorf("Workers = %d, want >= 1", got)
	}
	if got := Workers(0, nil); got < 1 {
		t.Errorf("Workers(0) = %d, want >= 1", got)
	}
}

func TestFramePoolReuse(t *testing.T) {
	rect := image.Rect(0, 0, 64, 48)
	p := NewFramePool(rect)

	buf := p.Get()
	if buf.Rect != rect {
		t.Fatalf("pool produced %v, want %v", buf.Rect, rect)
	}
	p.Put(buf)

	again := p.Get()
	if again.Rect != rect {
		t.Fatalf("recycled buffer has bounds %v", again.Rect)
	}

	// Wrong-sized buffers must not enter the pool.
	p.Put(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if got := p.Get(); got.Rect != rect {
		t.Errorf("pool returned a foreign buffer: %v", got.Rect)
	}
}
