// Package raster renders PDF pages to images with MuPDF via go-fitz.
package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the resolution the catalog scans OCR well at.
const DefaultDPI = 300

// Fitz rasterizes PDF files page by page.
type Fitz struct {
	DPI float64
}

// New returns a Fitz rasterizer at the given resolution; dpi <= 0 selects
// DefaultDPI.
func New(dpi float64) *Fitz {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Fitz{DPI: dpi}
}

// Rasterize renders every page of the PDF at path, in page order. A PDF with
// zero pages yields an empty slice and no error.
func (f *Fitz) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	dpi := f.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	n := doc.NumPage()
	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// PageCount reports the number of pages without rendering them.
func PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}
