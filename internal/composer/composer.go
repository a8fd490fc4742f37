// Package composer builds a canvas scene from loaded assets: each page
// becomes an image element with a staggered visibility window and
// generated keyframes that fade the page in, push toward its salient
// region, and hand off to the next page. The result is an ordinary
// stage; nothing about the scene is special-cased downstream.
package composer

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/zinecanvas/engine/internal/analyzer"
	"github.com/zinecanvas/engine/internal/asset"
	"github.com/zinecanvas/engine/internal/stage"
	"github.com/zinecanvas/engine/internal/timeline"
)

// Composer generates scenes for a fixed canvas size.
type Composer struct {
	CanvasWidth  int
	CanvasHeight int

	// Dwell is how long each page holds the canvas; Overlap is how far
	// the next page's entry reaches back into it.
	Dwell   float64
	Overlap float64

	// MaxZoom caps the push toward a page's focus region.
	MaxZoom float64

	DPI int

	detector *analyzer.FocusDetector
	logger   *slog.Logger
}

// New returns a composer with the default pacing.
func New(width, height int, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		CanvasWidth:  width,
		CanvasHeight: height,
		Dwell:        8,
		Overlap:      1,
		MaxZoom:      3,
		DPI:          150,
		detector:     analyzer.NewFocusDetector(),
		logger:       logger,
	}
}

// Options for extra scene elements.
type Options struct {
	Title     string // heading text element; empty disables it
	Link      string // QR sticker payload; empty disables it
	AudioPath string // audio marker element; empty disables it
}

// Compose builds a stage from the source's pages.
func (c *Composer) Compose(src asset.Source, opts Options) (*stage.Stage, error) {
	pageCount := src.Count()
	if pageCount == 0 {
		return nil, fmt.Errorf("source has no pages")
	}

	st := stage.New()

	// Static backdrop behind everything; no timeline, always visible.
	st.Add(&timeline.Element{
		ID:      "backdrop",
		Content: timeline.ShapeContent{Shape: timeline.ShapeRect, Fill: color.RGBA{R: 16, G: 16, B: 20, A: 255}},
		Base: timeline.Properties{
			Size:    timeline.Size{Width: float64(c.CanvasWidth), Height: float64(c.CanvasHeight)},
			Opacity: 1,
		},
	})

	if opts.Title != "" {
		c.addTitle(st, opts.Title)
	}

	for i := 0; i < pageCount; i++ {
		bitmap, err := src.Bitmap(i, c.DPI)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		entry := float64(i) * (c.Dwell - c.Overlap)
		last := i == pageCount-1
		if err := c.addPage(st, i, bitmap, entry, last); err != nil {
			return nil, err
		}
		c.logger.Debug("composed page",
			slog.Int("page", i),
			slog.Float64("entry", entry),
			slog.Bool("persist", last))
	}

	end := float64(pageCount-1)*(c.Dwell-c.Overlap) + c.Dwell

	if opts.Link != "" {
		c.addSticker(st, opts.Link, end)
	}
	if opts.AudioPath != "" {
		st.Add(&timeline.Element{
			ID:      "audio-marker",
			Content: timeline.MediaContent{Path: opts.AudioPath, Label: "audio"},
			Base: timeline.Properties{
				Position: timeline.Point{X: 16, Y: float64(c.CanvasHeight) - 40},
				Size:     timeline.Size{Width: 120, Height: 24},
				Opacity:  0.85,
			},
		})
	}

	return st, nil
}

// addPage places one page bitmap: fit to canvas, fade in, push toward
// the salient region, fade out unless the page persists as the final
// frame.
func (c *Composer) addPage(st *stage.Stage, index int, bitmap image.Image, entry float64, persist bool) error {
	id := fmt.Sprintf("page-%d", index)

	bounds := bitmap.Bounds()
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	if srcW == 0 || srcH == 0 {
		return fmt.Errorf("page %d has empty bounds", index)
	}

	canvasW, canvasH := float64(c.CanvasWidth), float64(c.CanvasHeight)
	fit := math.Min(canvasW/srcW, canvasH/srcH)
	fitSize := timeline.Size{Width: srcW * fit, Height: srcH * fit}
	fitPos := timeline.Point{X: (canvasW - fitSize.Width) / 2, Y: (canvasH - fitSize.Height) / 2}

	el := &timeline.Element{
		ID:      id,
		Content: timeline.ImageContent{Path: id, Bitmap: bitmap},
		Base:    timeline.Properties{Position: fitPos, Size: fitSize, Opacity: 1},
	}
	if err := st.Add(el); err != nil {
		return err
	}

	var exit *float64
	if !persist {
		e := entry + c.Dwell
		exit = &e
	}
	if err := st.SetWindow(id, entry, exit, entry); err != nil {
		return err
	}
	if persist {
		if err := st.SetPersist(id, true, entry); err != nil {
			return err
		}
	}

	focus := c.detector.Focus(bitmap)
	zoom := c.focusZoom(focus, fit)
	zoomSize := timeline.Size{Width: fitSize.Width * zoom, Height: fitSize.Height * zoom}
	focusCx := float64(focus.Min.X+focus.Dx()/2) * fit * zoom
	focusCy := float64(focus.Min.Y+focus.Dy()/2) * fit * zoom
	zoomPos := timeline.Point{X: canvasW/2 - focusCx, Y: canvasH/2 - focusCy}

	o0, o1 := 0.0, 1.0
	holdEnd := entry + c.Dwell - 1

	st.SetKeyframe(id, timeline.Keyframe{
		Time:  entry,
		Props: timeline.Snapshot{Position: &fitPos, Size: &fitSize, Opacity: &o0},
	}, entry)
	st.SetKeyframe(id, timeline.Keyframe{
		Time:   entry + 0.75,
		Easing: "decelerate",
		Props:  timeline.Snapshot{Position: &fitPos, Size: &fitSize, Opacity: &o1},
	}, entry)
	st.SetKeyframe(id, timeline.Keyframe{
		Time:   entry + c.Dwell/2,
		Easing: "standard",
		Props:  timeline.Snapshot{Position: &zoomPos, Size: &zoomSize, Opacity: &o1},
	}, entry)

	if persist {
		return nil
	}

	st.SetKeyframe(id, timeline.Keyframe{
		Time:   holdEnd,
		Easing: "standard",
		Props:  timeline.Snapshot{Position: &zoomPos, Size: &zoomSize, Opacity: &o1},
	}, entry)
	st.SetKeyframe(id, timeline.Keyframe{
		Time:   entry + c.Dwell,
		Easing: "accelerate",
		Props:  timeline.Snapshot{Position: &zoomPos, Size: &zoomSize, Opacity: &o0},
	}, entry)
	return nil
}

// focusZoom is the scale pushing the focus region toward filling 90%
// of the canvas, clamped so flat pages stay put and dense ones do not
// overshoot.
func (c *Composer) focusZoom(focus image.Rectangle, fit float64) float64 {
	focusW := float64(focus.Dx()) * fit
	focusH := float64(focus.Dy()) * fit
	if focusW <= 0 || focusH <= 0 {
		return 1
	}

	zoom := math.Min(
		float64(c.CanvasWidth)*0.9/focusW,
		float64(c.CanvasHeight)*0.9/focusH,
	)
	if zoom < 1 {
		zoom = 1
	}
	if zoom > c.MaxZoom {
		zoom = c.MaxZoom
	}
	return zoom
}

func (c *Composer) addTitle(st *stage.Stage, title string) {
	id := "title"
	st.Add(&timeline.Element{
		ID:      id,
		Content: timeline.TextContent{Text: title, Color: color.RGBA{R: 240, G: 240, B: 240, A: 255}},
		Base: timeline.Properties{
			Position: timeline.Point{X: 24, Y: 24},
			Size:     timeline.Size{Width: float64(len(title) * 7), Height: 13},
			Opacity:  1,
		},
	})

	exit := c.Dwell
	st.SetWindow(id, 0, &exit, 0)

	o0, o1 := 0.0, 1.0
	high := timeline.Point{X: 24, Y: 8}
	rest := timeline.Point{X: 24, Y: 24}
	st.SetKeyframe(id, timeline.Keyframe{Time: 0, Props: timeline.Snapshot{Position: &high, Opacity: &o0}}, 0)
	st.SetKeyframe(id, timeline.Keyframe{Time: 1, Easing: "emphasized", Props: timeline.Snapshot{Position: &rest, Opacity: &o1}}, 0)
	st.SetKeyframe(id, timeline.Keyframe{Time: exit - 1, Props: timeline.Snapshot{Position: &rest, Opacity: &o1}}, 0)
	st.SetKeyframe(id, timeline.Keyframe{Time: exit, Easing: "accelerate", Props: timeline.Snapshot{Position: &rest, Opacity: &o0}}, 0)
}

// addSticker drops a QR sticker that bounces in over the final page.
func (c *Composer) addSticker(st *stage.Stage, payload string, end float64) {
	id := "link-sticker"
	size := timeline.Size{Width: 96, Height: 96}
	pos := timeline.Point{
		X: float64(c.CanvasWidth) - size.Width - 24,
		Y: float64(c.CanvasHeight) - size.Height - 24,
	}

	st.Add(&timeline.Element{
		ID:      id,
		Content: timeline.StickerContent{Payload: payload},
		Base:    timeline.Properties{Position: pos, Size: size, Opacity: 1},
	})

	entry := end - 2
	if entry < 0 {
		entry = 0
	}
	st.SetWindow(id, entry, nil, entry)
	st.SetPersist(id, true, entry)

	o0, o1 := 0.0, 1.0
	tiny := timeline.Size{Width: 8, Height: 8}
	tinyPos := timeline.Point{X: pos.X + size.Width/2 - 4, Y: pos.Y + size.Height/2 - 4}
	st.SetKeyframe(id, timeline.Keyframe{Time: entry, Props: timeline.Snapshot{Position: &tinyPos, Size: &tiny, Opacity: &o0}}, entry)
	st.SetKeyframe(id, timeline.Keyframe{Time: entry + 1, Easing: "bounce", Props: timeline.Snapshot{Position: &pos, Size: &size, Opacity: &o1}}, entry)
}
