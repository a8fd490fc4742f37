package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/zinecanvas/engine/internal/timeline"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func rect(id string, pos timeline.Point, size timeline.Size, opacity float64) *timeline.Element {
	return &timeline.Element{
		ID:      id,
		Content: timeline.ShapeContent{Shape: timeline.ShapeRect, Fill: red},
		Base:    timeline.Properties{Position: pos, Size: size, Opacity: opacity},
	}
}

func renderOne(el *timeline.Element, t float64) *image.RGBA {
	r := New(200, 200, black)
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	r.Frame(dst, []*timeline.Element{el}, t)
	return dst
}

func TestFrameDrawsVisibleShape(t *testing.T) {
	el := rect("box", timeline.Point{X: 50, Y: 50}, timeline.Size{Width: 100, Height: 100}, 1)
	dst := renderOne(el, 0)

	if got := dst.RGBAAt(100, 100); got.R < 200 {
		t.Errorf("box center = %+v, want red", got)
	}
	if got := dst.RGBAAt(10, 10); got.R != 0 {
		t.Errorf("outside the box = %+v, want background", got)
	}
}

func TestFrameSkipsHiddenElements(t *testing.T) {
	el := rect("late", timeline.Point{X: 50, Y: 50}, timeline.Size{Width: 100, Height: 100}, 1)
	el.Timeline = &timeline.TimelineData{EntryPoint: 100}

	dst := renderOne(el, 0)
	if got := dst.RGBAAt(100, 100); got.R != 0 {
		t.Errorf("hidden element was drawn: %+v", got)
	}
}

func TestFrameAppliesOpacity(t *testing.T) {
	full := renderOne(rect("a", timeline.Point{X: 50, Y: 50}, timeline.Size{Width: 100, Height: 100}, 1), 0)
	half := renderOne(rect("a", timeline.Point{X: 50, Y: 50}, timeline.Size{Width: 100, Height: 100}, 0.5), 0)
	zero := renderOne(rect("a", timeline.Point{X: 50, Y: 50}, timeline.Size{Width: 100, Height: 100}, 0), 0)

	if full.RGBAAt(100, 100).R <= half.RGBAAt(100, 100).R {
		t.Error("half opacity should blend darker than full")
	}
	if half.RGBAAt(100, 100).R == 0 {
		t.Error("half opacity should still be visible")
	}
	if zero.RGBAAt(100, 100).R != 0 {
		t.Error("zero opacity should draw nothing")
	}
}

func TestFrameAppliesRotation(t *testing.T) {
	// A thin horizontal bar rotated 90° becomes vertical.
	bar := rect("bar", timeline.Point{X: 40, Y: 95}, timeline.Size{Width: 120, Height: 10}, 1)
	bar.Base.Rotation = 90

	dst := renderOne(bar, 0)
	if got := dst.RGBAAt(100, 50); got.R < 200 {
		t.Errorf("above center = %+v, want bar pixel after rotation", got)
	}
	if got := dst.RGBAAt(50, 100); got.R != 0 {
		t.Errorf("left of center = %+v, want background after rotation", got)
	}
}

func TestFrameAnimatedPosition(t *testing.T) {
	x0 := timeline.Point{X: 0, Y: 90}
	x1 := timeline.Point{X: 180, Y: 90}
	el := rect("mover", timeline.Point{}, timeline.Size{Width: 20, Height: 20}, 1)
	el.Timeline = &timeline.TimelineData{
		Keyframes: []timeline.Keyframe{
			{Time: 0, Easing: "linear", Props: timeline.Snapshot{Position: &x0}},
			{Time: 10, Easing: "linear", Props: timeline.Snapshot{Position: &x1}},
		},
	}

	dst := renderOne(el, 5)
	if got := dst.RGBAAt(100, 100); got.R < 200 {
		t.Errorf("midpoint frame = %+v, want the mover at the canvas middle", got)
	}
}

func TestStickerAndTextRender(t *testing.T) {
	r := New(200, 200, black)
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))

	elements := []*timeline.Element{
		{
			ID:      "qr",
			Content: timeline.StickerContent{Payload: "https://example.com"},
			Base:    timeline.Properties{Position: timeline.Point{X: 10, Y: 10}, Size: timeline.Size{Width: 80, Height: 80}, Opacity: 1},
		},
		{
			ID:      "label",
			Content: timeline.TextContent{Text: "hello", Color: color.RGBA{G: 255, A: 255}},
			Base:    timeline.Properties{Position: timeline.Point{X: 10, Y: 150}, Size: timeline.Size{Width: 35, Height: 13}, Opacity: 1},
		},
	}
	r.Frame(dst, elements, 0)

	// A QR code is never a flat fill: expect both dark and light
	// pixels inside its box.
	light, dark := false, false
	for y := 12; y < 88; y++ {
		for x := 12; x < 88; x++ {
			c := dst.RGBAAt(x, y)
			if c.R > 200 && c.G > 200 && c.B > 200 {
				light = true
			} else {
				dark = true
			}
		}
	}
	if !light || !dark {
		t.Errorf("QR box lacks modulation (light=%v dark=%v)", light, dark)
	}

	green := false
	for y := 145; y < 170 && !green; y++ {
		for x := 5; x < 60; x++ {
			if dst.RGBAAt(x, y).G > 200 {
				green = true
				break
			}
		}
	}
	if !green {
		t.Error("text label not drawn")
	}
}
