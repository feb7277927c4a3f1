// Package segment splits a rasterized catalog page into one region per
// physical tag. Partitioning is purely positional: the catalog prints a fixed
// grid of tags per page.
package segment

import (
	"fmt"
	"image"
	"strings"

	"pricetag/pkg/geometry"
)

// Mode selects the fixed partition of a page.
type Mode int

const (
	ModeWhole    Mode = iota // One region covering the page
	ModeHalves               // Left and right halves
	ModeQuarters             // 2x2 grid
)

func (m Mode) String() string {
	switch m {
	case ModeWhole:
		return "whole"
	case ModeHalves:
		return "halves"
	case ModeQuarters:
		return "quarters"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as written in configuration.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole", "page", "1":
		return ModeWhole, nil
	case "halves", "half", "2":
		return ModeHalves, nil
	case "quarters", "quarter", "4":
		return ModeQuarters, nil
	}
	return 0, fmt.Errorf("unknown segmentation mode %q (want whole, halves or quarters)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Region is a rectangular sub-image expected to hold one tag's text.
type Region struct {
	Index  int              // Row-major position on the page
	Bounds geometry.RectInt // Absolute pixel bounds in the page image
	Image  image.Image
}

// Bounds partitions a page rectangle for a mode without touching pixels.
// Regions are row-major: top row left to right, then the next row. Split
// points are integer midpoints, so the regions tile the page exactly.
func Bounds(page image.Rectangle, mode Mode) ([]image.Rectangle, error) {
	if page.Empty() {
		return nil, fmt.Errorf("empty page image")
	}
	midX := page.Min.X + page.Dx()/2
	midY := page.Min.Y + page.Dy()/2

	switch mode {
	case ModeWhole:
		return []image.Rectangle{page}, nil
	case ModeHalves:
		return []image.Rectangle{
			image.Rect(page.Min.X, page.Min.Y, midX, page.Max.Y),
			image.Rect(midX, page.Min.Y, page.Max.X, page.Max.Y),
		}, nil
	case ModeQuarters:
		return []image.Rectangle{
			image.Rect(page.Min.X, page.Min.Y, midX, midY),
			image.Rect(midX, page.Min.Y, page.Max.X, midY),
			image.Rect(page.Min.X, midY, midX, page.Max.Y),
			image.Rect(midX, midY, page.Max.X, page.Max.Y),
		}, nil
	}
	return nil, fmt.Errorf("unsupported segmentation mode %v", mode)
}

// subImager is implemented by every concrete image type in the standard library.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Split cuts a page image into regions. Sub-images share pixels with the page
// where the image type allows it; otherwise the pixels are copied.
func Split(page image.Image, mode Mode) ([]Region, error) {
	rects, err := Bounds(page.Bounds(), mode)
	if err != nil {
		return nil, err
	}

	regions := make([]Region, 0, len(rects))
	for i, r := range rects {
		regions = append(regions, Region{
			Index:  i,
			Bounds: geometry.FromRectangle(r),
			Image:  crop(page, r),
		})
	}
	return regions, nil
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, img.At(x, y))
		}
	}
	return dst
}
