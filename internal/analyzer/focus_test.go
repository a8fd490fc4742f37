package analyzer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestFocusFindsHighContrastRegion(t *testing.T) {
	// Flat background with one busy block: the block should win.
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for y := 60; y < 120; y++ {
		for x := 40; x < 140; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}

	focus := NewFocusDetector().Focus(img)

	want := image.Rect(40, 60, 140, 120)
	if !focus.Overlaps(want) {
		t.Fatalf("focus %v does not overlap the busy block %v", focus, want)
	}
	// The detected region should be in the block's neighborhood, not
	// the whole frame.
	if focus.Dx() > 180 || focus.Dy() > 180 {
		t.Errorf("focus %v is nearly the full frame", focus)
	}
	t.Logf("focus: %v", focus)
}

func TestFocusFallsBackToFullBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	focus := NewFocusDetector().Focus(img)
	if focus != img.Bounds() {
		t.Errorf("featureless image: focus = %v, want full bounds %v", focus, img.Bounds())
	}
}
