package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// barImage draws bars at scale px per module with a 10 module quiet zone.
func barImage(bars []Bar, modules, scale int) image.Image {
	const quiet = 10
	img := image.NewGray(image.Rect(0, 0, (modules+2*quiet)*scale, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for _, b := range bars {
		for x := (quiet + b.Start) * scale; x < (quiet+b.Start+b.Width)*scale; x++ {
			for y := 0; y < 40; y++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestCode128RoundTrip(t *testing.T) {
	for _, value := range []string{"ABC123", "FP4000", "0042"} {
		bars, modules, err := Code128(value)
		require.NoError(t, err)
		require.NotEmpty(t, bars)

		bmp, err := gozxing.NewBinaryBitmapFromImage(barImage(bars, modules, 3))
		require.NoError(t, err)
		result, err := oned.NewCode128Reader().Decode(bmp, nil)
		require.NoError(t, err, value)
		assert.Equal(t, value, result.GetText())
	}
}

func TestCode128BarsWithinSymbol(t *testing.T) {
	bars, modules, err := Code128("ABC123")
	require.NoError(t, err)

	// No quiet zone: the symbol starts and ends with a bar.
	assert.Equal(t, 0, bars[0].Start)
	last := bars[len(bars)-1]
	assert.Equal(t, modules, last.Start+last.Width)
	for i := 1; i < len(bars); i++ {
		assert.Greater(t, bars[i].Start, bars[i-1].Start+bars[i-1].Width-1)
	}
}

func TestCode128Empty(t *testing.T) {
	_, _, err := Code128("")
	assert.Error(t, err)
}
