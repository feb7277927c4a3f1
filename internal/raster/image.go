package raster

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// Page is a page image loaded from disk.
type Page struct {
	Path  string
	Image image.Image
	DPI   float64 // from TIFF metadata; 0 if unknown
}

// LoadImage loads a scanned page image (TIFF, PNG or JPEG).
func LoadImage(path string) (*Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	page := &Page{Path: path, Image: img}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".tiff" || ext == ".tif" {
		if dpi, err := tiffDPI(file); err == nil {
			page.DPI = dpi
		}
	}
	return page, nil
}

// IsImage reports whether path has a supported page image extension.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif", ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// TIFF tags and field types used for resolution.
const (
	tagXResolution    = 282
	tagYResolution    = 283
	tagResolutionUnit = 296

	typeShort    = 3
	typeRational = 5

	unitCentimeter = 3
)

// tiffDPI reads the resolution from the first IFD of a TIFF file.
func tiffDPI(r io.ReaderAt) (float64, error) {
	header := make([]byte, 8)
	if _, err := r.ReadAt(header, 0); err != nil {
		return 0, err
	}

	var order binary.ByteOrder
	switch string(header[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0, fmt.Errorf("not a valid TIFF file")
	}

	ifd := int64(order.Uint32(header[4:8]))
	count := make([]byte, 2)
	if _, err := r.ReadAt(count, ifd); err != nil {
		return 0, err
	}

	rational := func(offset int64) float64 {
		buf := make([]byte, 8)
		if _, err := r.ReadAt(buf, offset); err != nil {
			return 0
		}
		num, denom := order.Uint32(buf[:4]), order.Uint32(buf[4:])
		if denom == 0 {
			return 0
		}
		return float64(num) / float64(denom)
	}

	var xRes, yRes float64
	unit := uint16(2) // inches
	entry := make([]byte, 12)
	for i := 0; i < int(order.Uint16(count)); i++ {
		if _, err := r.ReadAt(entry, ifd+2+int64(i)*12); err != nil {
			return 0, err
		}
		tag, typ := order.Uint16(entry[0:2]), order.Uint16(entry[2:4])
		switch {
		case tag == tagXResolution && typ == typeRational:
			xRes = rational(int64(order.Uint32(entry[8:12])))
		case tag == tagYResolution && typ == typeRational:
			yRes = rational(int64(order.Uint32(entry[8:12])))
		case tag == tagResolutionUnit && typ == typeShort:
			unit = order.Uint16(entry[8:10])
		}
	}

	dpi := xRes
	if dpi == 0 {
		dpi = yRes
	}
	if dpi == 0 {
		return 0, fmt.Errorf("no resolution tags found")
	}
	if unit == unitCentimeter {
		dpi *= 2.54
	}
	return dpi, nil
}
