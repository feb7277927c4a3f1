package render

import (
	"fmt"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// Bar is one dark run of a linear barcode, in modules from the left edge.
type Bar struct {
	Start int
	Width int
}

// Code128 encodes value and returns its dark bars and the total symbol width
// in modules, without quiet zones.
func Code128(value string) ([]Bar, int, error) {
	if value == "" {
		return nil, 0, fmt.Errorf("empty barcode value")
	}
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_MARGIN: 0,
	}
	matrix, err := oned.NewCode128Writer().Encode(value, gozxing.BarcodeFormat_CODE_128, 0, 1, hints)
	if err != nil {
		return nil, 0, fmt.Errorf("encode code128 %q: %w", value, err)
	}

	width := matrix.GetWidth()
	var bars []Bar
	for x := 0; x < width; {
		if !matrix.Get(x, 0) {
			x++
			continue
		}
		start := x
		for x < width && matrix.Get(x, 0) {
			x++
		}
		bars = append(bars, Bar{Start: start, Width: x - start})
	}
	return bars, width, nil
}
