// Package asset loads element bitmap content from disk: plain image
// files or the pages of a PDF, each page becoming one canvas element.
package asset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Source yields bitmaps for the composer, one per page.
type Source interface {
	Count() int
	Bitmap(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks a source implementation by path: a .pdf file, a single
// image file, or a directory of images.
func Open(path string) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewImageSource(path)
}

// ImageSource serves image files from a path (file or directory).
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(strings.ToLower(entry.Name())) {
			case ".jpg", ".jpeg", ".png":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %s", path)
	}
	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) Count() int { return len(s.paths) }

// Path returns the backing file for a page index.
func (s *ImageSource) Path(index int) string { return s.paths[index] }

func (s *ImageSource) Bitmap(index int, dpi int) (image.Image, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ImageSource) Close() error { return nil }

// FindLatest returns the newest file in dir carrying one of the
// extensions, so the CLI can default to "whatever was dropped in last".
func FindLatest(dir string, exts []string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latest string
	var latestTime time.Time
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		matched := false
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, f.Name())
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no matching files in %s", dir)
	}
	return latest, nil
}
