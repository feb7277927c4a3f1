package layout

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Points per inch.
const Inch = 72.0

// Measurer reports the rendered width, in points, of text set at size points.
type Measurer interface {
	TextWidth(text string, size float64) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, size float64) float64

func (f MeasureFunc) TextWidth(text string, size float64) float64 { return f(text, size) }

// FontMeasurer measures with a TrueType font's advance widths. Kerning is not
// applied, matching how the PDF writer sets strings.
type FontMeasurer struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

// NewFontMeasurer parses a TrueType font.
func NewFontMeasurer(ttf []byte) (*FontMeasurer, error) {
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontMeasurer{font: f}, nil
}

// GoBold returns a measurer for the Go Bold font, the face tags are printed in.
func GoBold() *FontMeasurer {
	m, err := NewFontMeasurer(gobold.TTF)
	if err != nil {
		// gobold.TTF is compiled in.
		panic(err)
	}
	return m
}

// TextWidth implements Measurer. Runes missing from the font measure as the
// notdef glyph.
func (m *FontMeasurer) TextWidth(text string, size float64) float64 {
	ppem := fixed.Int26_6(size * 64)
	var total fixed.Int26_6
	for _, r := range text {
		idx, err := m.font.GlyphIndex(&m.buf, r)
		if err != nil {
			continue
		}
		adv, err := m.font.GlyphAdvance(&m.buf, idx, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		total += adv
	}
	return float64(total) / 64
}
