// Package timeline implements the evaluation engine of the canvas
// editor: given an element's keyframes and entry/exit window, it
// computes visibility and interpolated property values for any instant
// on the time axis. Everything in this package is pure; the playback
// clock, the scroll mapper, and manual scrubbing all feed the same
// Evaluate without coordination.
package timeline

import (
	"image"
	"image/color"
)

// Point is a canvas position in pixels.
type Point struct {
	X float64
	Y float64
}

// Size is an element's box in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Properties is the full set of animatable values for an element.
type Properties struct {
	Position Point
	Size     Size
	Rotation float64 // degrees
	Opacity  float64 // 0..1
}

// Snapshot is a partial Properties: a nil field means the keyframe
// does not record that property and it passes through from the
// neighboring keyframe or the element's static base.
type Snapshot struct {
	Position *Point
	Size     *Size
	Rotation *float64
	Opacity  *float64
}

// Keyframe is a timestamped property snapshot. Easing names the curve
// applied to the segment ending at this keyframe; empty means the
// standard curve.
type Keyframe struct {
	Time   float64
	Easing string
	Props  Snapshot
}

// TimelineData holds one element's animation rules. A nil ExitPoint
// means the element never exits. Keyframes are kept sorted by time and
// time-unique; mutate them through the methods in track.go.
type TimelineData struct {
	EntryPoint float64
	ExitPoint  *float64
	Persist    bool
	Keyframes  []Keyframe
}

// Kind discriminates the closed set of element content variants.
type Kind int

const (
	KindImage Kind = iota
	KindText
	KindShape
	KindSticker
	KindMedia
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	case KindShape:
		return "shape"
	case KindSticker:
		return "sticker"
	case KindMedia:
		return "media"
	}
	return "unknown"
}

// Content is the per-kind payload of an element. The implementations
// below are the only ones; there is no open property bag.
type Content interface {
	Kind() Kind
}

// ImageContent is a bitmap placed on the canvas.
type ImageContent struct {
	Path   string
	Bitmap image.Image
}

func (ImageContent) Kind() Kind { return KindImage }

// TextContent is a text label.
type TextContent struct {
	Text  string
	Color color.RGBA
}

func (TextContent) Kind() Kind { return KindText }

// ShapeKind selects the primitive a ShapeContent draws.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
)

// ShapeContent is a filled primitive.
type ShapeContent struct {
	Shape ShapeKind
	Fill  color.RGBA
}

func (ShapeContent) Kind() Kind { return KindShape }

// StickerContent is a decorative marker rendered as a QR code for its
// payload string.
type StickerContent struct {
	Payload string
}

func (StickerContent) Kind() Kind { return KindSticker }

// MediaContent is an audio marker pinned to the canvas.
type MediaContent struct {
	Path  string
	Label string
}

func (MediaContent) Kind() Kind { return KindMedia }

// Element is one canvas item. Base holds the static property values
// used wherever keyframes do not cover a field. A nil Timeline makes
// the element a permanently visible background layer.
type Element struct {
	ID       string
	Content  Content
	Base     Properties
	Timeline *TimelineData
}
