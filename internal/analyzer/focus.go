// Package analyzer finds the visually salient region of an element
// bitmap. The composer aims generated keyframe motion at that region
// instead of panning blindly across the whole image.
package analyzer

import (
	"image"
	"image/color"
	"math"
)

// FocusDetector locates a focus rectangle from edge density.
type FocusDetector struct {
	MinArea       int     // minimum region area in pixels²
	EdgeThreshold float64 // Sobel gradient magnitude cutoff
}

// NewFocusDetector returns a detector with moderate sensitivity.
func NewFocusDetector() *FocusDetector {
	return &FocusDetector{
		MinArea:       500,
		EdgeThreshold: 30.0,
	}
}

// Focus returns the most salient region of img: the largest connected
// high-contrast area. When nothing passes the thresholds the full
// bounds come back, which makes the composer's motion a plain
// full-frame hold.
func (d *FocusDetector) Focus(img image.Image) image.Rectangle {
	gray := toGray(img)
	edges := sobel(gray, d.EdgeThreshold)
	merged := dilate(edges, 5, 2)

	best := image.Rectangle{}
	bestArea := 0
	for _, rect := range regions(merged) {
		area := rect.Dx() * rect.Dy()
		if area >= d.MinArea && area > bestArea {
			best = rect
			bestArea = area
		}
	}

	if bestArea == 0 {
		return img.Bounds()
	}
	return best
}

func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobel(gray *image.Gray, threshold float64) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					p := float64(gray.GrayAt(x+kx, y+ky).Y)
					gx += p * sobelX[ky+1][kx+1]
					gy += p * sobelY[ky+1][kx+1]
				}
			}
			if math.Sqrt(gx*gx+gy*gy) > threshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

// dilate connects nearby edge pixels so fragmented detail merges into
// one region.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := image.NewGray(bounds)
	copy(result.Pix, img.Pix)

	half := kernelSize / 2
	for iter := 0; iter < iterations; iter++ {
		next := image.NewGray(bounds)
		for y := bounds.Min.Y + half; y < bounds.Max.Y-half; y++ {
			for x := bounds.Min.X + half; x < bounds.Max.X-half; x++ {
				var maxVal uint8
				for ky := -half; ky <= half; ky++ {
					for kx := -half; kx <= half; kx++ {
						if v := result.GrayAt(x+kx, y+ky).Y; v > maxVal {
							maxVal = v
						}
					}
				}
				next.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}
		result = next
	}
	return result
}

// regions finds the bounding boxes of connected white areas.
func regions(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	visited := make([][]bool, bounds.Dy())
	for i := range visited {
		visited[i] = make([]bool, bounds.Dx())
	}

	var out []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 128 && !visited[y-bounds.Min.Y][x-bounds.Min.X] {
				out = append(out, fill(img, visited, x, y))
			}
		}
	}
	return out
}

// fill flood-fills from a seed pixel and returns the region's bounds.
func fill(img *image.Gray, visited [][]bool, startX, startY int) image.Rectangle {
	bounds := img.Bounds()
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < bounds.Min.X || p.X >= bounds.Max.X || p.Y < bounds.Min.Y || p.Y >= bounds.Max.Y {
			continue
		}
		if visited[p.Y-bounds.Min.Y][p.X-bounds.Min.X] || img.GrayAt(p.X, p.Y).Y <= 128 {
			continue
		}
		visited[p.Y-bounds.Min.Y][p.X-bounds.Min.X] = true

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	return image.Rect(minX, minY, maxX+1, maxY+1)
}
