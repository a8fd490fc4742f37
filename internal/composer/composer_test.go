package composer

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
	"testing"

	"github.com/zinecanvas/engine/internal/timeline"
)

// fakeSource serves generated bitmaps, satisfying asset.Source.
type fakeSource struct {
	pages int
}

func (f *fakeSource) Count() int { return f.pages }

func (f *fakeSource) Bitmap(index int, dpi int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	// A distinct busy block per page so focus detection has a target.
	for y := 40; y < 100; y++ {
		for x := 40 + index*20; x < 160+index*20; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img, nil
}

func (f *fakeSource) Close() error { return nil }

func TestComposeBuildsStaggeredScene(t *testing.T) {
	c := New(640, 480, nil)
	st, err := c.Compose(&fakeSource{pages: 3}, Options{Title: "demo zine", Link: "https://example.com/zine"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// backdrop + title + 3 pages + sticker
	if got := len(st.Elements()); got != 6 {
		t.Fatalf("expected 6 elements, got %d", got)
	}

	// Pages enter in stagger order with valid windows.
	var prevEntry float64 = -1
	for _, id := range []string{"page-0", "page-1", "page-2"} {
		el, ok := st.Element(id)
		if !ok {
			t.Fatalf("missing %s", id)
		}
		td := el.Timeline
		if td == nil {
			t.Fatalf("%s has no timeline", id)
		}
		if td.EntryPoint <= prevEntry {
			t.Errorf("%s entry %v not after previous %v", id, td.EntryPoint, prevEntry)
		}
		prevEntry = td.EntryPoint

		if td.ExitPoint != nil && *td.ExitPoint <= td.EntryPoint {
			t.Errorf("%s has degenerate window: %v..%v", id, td.EntryPoint, *td.ExitPoint)
		}
		if !sort.SliceIsSorted(td.Keyframes, func(i, j int) bool { return td.Keyframes[i].Time < td.Keyframes[j].Time }) {
			t.Errorf("%s keyframes not sorted", id)
		}
		if len(td.Keyframes) < 3 {
			t.Errorf("%s has only %d keyframes", id, len(td.Keyframes))
		}
	}

	// Final page persists as the closing frame.
	last, _ := st.Element("page-2")
	if !last.Timeline.Persist {
		t.Error("last page should persist")
	}

	// Backdrop is a static layer.
	backdrop, _ := st.Element("backdrop")
	if backdrop.Timeline != nil {
		t.Error("backdrop should have no timeline data")
	}
}

func TestComposedSceneEvaluates(t *testing.T) {
	c := New(640, 480, nil)
	st, err := c.Compose(&fakeSource{pages: 2}, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Mid-dwell of page 0: visible and fully faded in.
	el, _ := st.Element("page-0")
	ev := timeline.Evaluate(el, el.Timeline.EntryPoint+c.Dwell/2)
	if !ev.Visible {
		t.Fatal("page-0 should be visible mid-dwell")
	}
	if ev.Props.Opacity < 0.99 {
		t.Errorf("mid-dwell opacity = %v, want ~1", ev.Props.Opacity)
	}
	if ev.Props.Size.Width <= 0 || ev.Props.Size.Height <= 0 {
		t.Errorf("degenerate size: %+v", ev.Props.Size)
	}

	// Before page 1's entry it is hidden; the scene never double-runs.
	second, _ := st.Element("page-1")
	if ev := timeline.Evaluate(second, 0); ev.Visible {
		t.Error("page-1 should be hidden at t=0")
	}

	// The derived duration covers the last window plus buffer.
	if d := st.Duration(); d < 60 {
		t.Errorf("duration = %v, want at least the 60s floor", d)
	}
}

func TestComposeEmptySource(t *testing.T) {
	c := New(640, 480, nil)
	if _, err := c.Compose(&fakeSource{pages: 0}, Options{}); err == nil {
		t.Fatal("empty source should error")
	}
}
