// Package render rasterizes one evaluated instant of a stage into an
// RGBA frame. It consumes only what the timeline engine produces per
// element: a visibility flag and interpolated position, size, rotation
// and opacity.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/zinecanvas/engine/internal/timeline"
)

const qrBaseSize = 256

// Renderer draws frames of a fixed canvas size. Frame may be called
// from multiple export workers at once; the only shared state is the
// sticker cache, guarded below.
type Renderer struct {
	width      int
	height     int
	background color.RGBA

	// Sticker bitmaps are deterministic per payload; generate once.
	qrMu    sync.Mutex
	qrCache map[string]image.Image
}

// New creates a renderer for the given canvas.
func New(width, height int, background color.RGBA) *Renderer {
	return &Renderer{
		width:      width,
		height:     height,
		background: background,
		qrCache:    make(map[string]image.Image),
	}
}

// Frame evaluates every element at t and draws the visible ones into
// dst, in stacking order. dst must match the canvas size.
func (r *Renderer) Frame(dst *image.RGBA, elements []*timeline.Element, t float64) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	for _, el := range elements {
		ev := timeline.Evaluate(el, t)
		if !ev.Visible {
			continue
		}
		r.drawElement(dst, el, ev.Props)
	}
}

func (r *Renderer) drawElement(dst *image.RGBA, el *timeline.Element, p timeline.Properties) {
	if p.Opacity <= 0 || p.Size.Width <= 0 || p.Size.Height <= 0 {
		return
	}

	var src image.Image
	switch c := el.Content.(type) {
	case timeline.ImageContent:
		src = c.Bitmap
	case timeline.StickerContent:
		src = r.stickerBitmap(c.Payload)
	case timeline.TextContent:
		src = rasterizeText(c.Text, c.Color)
	case timeline.ShapeContent:
		src = rasterizeShape(c, p.Size)
	case timeline.MediaContent:
		src = rasterizeBadge(c.Label, p.Size)
	}
	if src == nil {
		return
	}

	r.drawBitmap(dst, src, p)
}

// drawBitmap maps src into its evaluated box: scaled to Size, rotated
// about the box center, blended at Opacity.
func (r *Renderer) drawBitmap(dst *image.RGBA, src image.Image, p timeline.Properties) {
	sr := src.Bounds()
	srcW, srcH := float64(sr.Dx()), float64(sr.Dy())
	if srcW == 0 || srcH == 0 {
		return
	}

	sx := p.Size.Width / srcW
	sy := p.Size.Height / srcH
	theta := p.Rotation * math.Pi / 180
	sin, cos := math.Sincos(theta)

	// Rotation pivots on the box center.
	cx := p.Position.X + p.Size.Width/2
	cy := p.Position.Y + p.Size.Height/2

	m := f64.Aff3{
		sx * cos, -sy * sin, cx - (sx*cos)*srcW/2 + (sy*sin)*srcH/2,
		sx * sin, sy * cos, cy - (sx*sin)*srcW/2 - (sy*cos)*srcH/2,
	}

	var opts *xdraw.Options
	if p.Opacity < 1 {
		alpha := uint8(math.Round(clamp01(p.Opacity) * 255))
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: alpha})}
	}
	xdraw.ApproxBiLinear.Transform(dst, m, src, sr, xdraw.Over, opts)
}

func (r *Renderer) stickerBitmap(payload string) image.Image {
	if payload == "" {
		return nil
	}
	r.qrMu.Lock()
	defer r.qrMu.Unlock()
	if img, ok := r.qrCache[payload]; ok {
		return img
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil
	}
	img := code.Image(qrBaseSize)
	r.qrCache[payload] = img
	return img
}

// rasterizeText draws a label with the bitmap face into its own image,
// so text transforms like any other element bitmap.
func rasterizeText(text string, col color.RGBA) image.Image {
	if text == "" {
		return nil
	}

	face := basicfont.Face7x13
	d := &font.Drawer{Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(text).Ceil()
	if w == 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, w, face.Height))
	d.Dst = img
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(text)
	return img
}

// rasterizeShape fills a primitive at the evaluated pixel size.
func rasterizeShape(c timeline.ShapeContent, size timeline.Size) image.Image {
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	if w <= 0 || h <= 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	switch c.Shape {
	case timeline.ShapeEllipse:
		rx, ry := float64(w)/2, float64(h)/2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := (float64(x) + 0.5 - rx) / rx
				dy := (float64(y) + 0.5 - ry) / ry
				if dx*dx+dy*dy <= 1 {
					img.SetRGBA(x, y, c.Fill)
				}
			}
		}
	default:
		draw.Draw(img, img.Bounds(), image.NewUniform(c.Fill), image.Point{}, draw.Src)
	}
	return img
}

// rasterizeBadge draws the audio-marker pill: dark box, light border,
// label.
func rasterizeBadge(label string, size timeline.Size) image.Image {
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	if w <= 0 || h <= 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 32, G: 32, B: 40, A: 230}), image.Point{}, draw.Src)
	border := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	for x := 0; x < w; x++ {
		img.SetRGBA(x, 0, border)
		img.SetRGBA(x, h-1, border)
	}
	for y := 0; y < h; y++ {
		img.SetRGBA(0, y, border)
		img.SetRGBA(w-1, y, border)
	}

	if label != "" {
		face := basicfont.Face7x13
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(border),
			Face: face,
			Dot:  fixed.P(6, (h+face.Ascent)/2),
		}
		d.DrawString(label)
	}
	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
