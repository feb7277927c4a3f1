package ocr

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func requireTesseract(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed")
	}
}

// textImage renders lines of black text on white, scaled up so the 7x13
// bitmap face is legible to Tesseract.
func textImage(lines []string, scale int) *image.Gray {
	const lineHeight = 16
	width := 0
	for _, l := range lines {
		width = max(width, len(l)*7+20)
	}
	small := image.NewGray(image.Rect(0, 0, width, len(lines)*lineHeight+20))
	draw.Draw(small, small.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: small, Src: image.NewUniform(color.Black), Face: basicfont.Face7x13}
	for i, l := range lines {
		d.Dot = fixed.P(10, 10+(i+1)*lineHeight-3)
		d.DrawString(l)
	}

	b := small.Bounds()
	big := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < big.Bounds().Dy(); y++ {
		for x := 0; x < big.Bounds().Dx(); x++ {
			big.SetGray(x, y, small.GrayAt(x/scale, y/scale))
		}
	}
	return big
}

func TestTesseractRecognizeKeepsLines(t *testing.T) {
	requireTesseract(t)

	eng, err := NewTesseract(NewParams())
	require.NoError(t, err)
	defer eng.Close()

	img := textImage([]string{"MODEL 42", "PRICE 19"}, 4)
	text, err := eng.Recognize(context.Background(), img)
	require.NoError(t, err)

	upper := strings.ToUpper(text)
	assert.Contains(t, upper, "MODEL")
	assert.Contains(t, upper, "PRICE")
	assert.Contains(t, text, "\n")
}

func TestTesseractRecognizeCanceled(t *testing.T) {
	requireTesseract(t)

	eng, err := NewTesseract(NewParams())
	require.NoError(t, err)
	defer eng.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.Recognize(ctx, textImage([]string{"X"}, 2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTesseractRecognizeEmptyImage(t *testing.T) {
	requireTesseract(t)

	eng, err := NewTesseract(NewParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}

func TestPreprocessInvertsLightOnDark(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	// Mostly black with a small white block.
	for y := 80; y < 120; y++ {
		for x := 80; x < 120; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	mat, err := toMat(img)
	require.NoError(t, err)
	defer mat.Close()

	out := preprocessForOCR(mat, NewParams())
	defer out.Close()

	// After inversion the background is white.
	assert.Equal(t, uint8(255), out.GetUCharAt(0, 0))
	assert.Equal(t, uint8(0), out.GetUCharAt(100, 100))
}

func TestPreprocessUpscalesSmallRegions(t *testing.T) {
	img := textImage([]string{"AB"}, 1)
	mat, err := toMat(img)
	require.NoError(t, err)
	defer mat.Close()

	out := preprocessForOCR(mat, Params{MinScaleDim: 150})
	defer out.Close()

	assert.GreaterOrEqual(t, min(out.Rows(), out.Cols()), 149)
}

func TestToMatRebasesSubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	img.SetGray(30, 30, color.Gray{Y: 200})
	sub := img.SubImage(image.Rect(20, 20, 40, 40)).(*image.Gray)

	mat, err := toMat(sub)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 20, mat.Rows())
	assert.Equal(t, 20, mat.Cols())
	assert.Equal(t, uint8(200), mat.GetUCharAt(10, 10))
}
