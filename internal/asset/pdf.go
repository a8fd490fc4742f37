package asset

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// PDFSource imports PDF pages as element bitmaps.
type PDFSource struct {
	doc  *fitz.Document
	path string
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, path: path}, nil
}

func (s *PDFSource) Count() int { return s.doc.NumPage() }

// Bitmap renders one page. A fitz document is not goroutine-safe, so
// each call opens its own handle; parallel composers stay independent.
func (s *PDFSource) Bitmap(index int, dpi int) (image.Image, error) {
	doc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(index, float64(dpi))
}

func (s *PDFSource) Close() error { return s.doc.Close() }
