// Package layout decides how a product name is broken into at most two lines
// and at what font size, so that it fits the printable width of a tag.
package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// Layout is the computed presentation of one name.
type Layout struct {
	Lines    []string
	FontSize int
	// Overflow is set when no candidate fitted and the floor size was forced.
	Overflow bool
}

// Fitter holds the sizing rules. Allowances are multiples of the max width.
type Fitter struct {
	Measurer Measurer

	BaseSize int // initial font size, points
	MinSize  int // floor font size, points

	FirstAllowance  float64 // first of two lines
	SecondAllowance float64 // second line
	SingleAllowance float64 // name on one line
}

// NewFitter returns a Fitter with the default tag rules.
func NewFitter(m Measurer) *Fitter {
	return &Fitter{
		Measurer:        m,
		BaseSize:        14,
		MinSize:         9,
		FirstAllowance:  1.5,
		SecondAllowance: 1.2,
		SingleAllowance: 1.0,
	}
}

var (
	// "..., SET OF 4", "... 2-PACK", "... 12 CT"
	qualifierPattern = regexp.MustCompile(`(?i)(?:,\s*|\s+)((?:SET OF \d+|PACK OF \d+|\d+\s*-?\s*(?:PACK|PK|CT|PCS?|PIECES?|COUNT)\b).*)$`)

	// a number, optionally with a unit, followed by a word
	measurePattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?(?:\s*(?:"|(?:IN|FT|OZ|LBS?|GAL|QT|BTU|W|V|MM|CM)\b))?)\s+\pL`)
)

// Fit lays out name within maxWidth points.
func (f *Fitter) Fit(name string, maxWidth float64) Layout {
	text := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	base, floor := f.BaseSize, f.MinSize
	if floor > base {
		floor = base
	}
	if text == "" {
		return Layout{Lines: []string{""}, FontSize: base}
	}

	if f.single(text, base, maxWidth) {
		return Layout{Lines: []string{text}, FontSize: base}
	}

	for _, split := range semanticSplits(text) {
		if f.pair(split, base, maxWidth) {
			return Layout{Lines: split[:], FontSize: base}
		}
	}

	mid, ok := midpointSplit(text)
	for size := base - 1; size >= floor; size-- {
		if ok {
			if f.pair(mid, size, maxWidth) {
				return Layout{Lines: mid[:], FontSize: size}
			}
		} else if f.single(text, size, maxWidth) {
			return Layout{Lines: []string{text}, FontSize: size}
		}
	}

	if ok {
		return Layout{Lines: mid[:], FontSize: floor, Overflow: true}
	}
	return Layout{Lines: []string{text}, FontSize: floor, Overflow: true}
}

func (f *Fitter) single(text string, size int, maxWidth float64) bool {
	return f.Measurer.TextWidth(text, float64(size)) <= maxWidth*f.SingleAllowance
}

func (f *Fitter) pair(lines [2]string, size int, maxWidth float64) bool {
	return f.Measurer.TextWidth(lines[0], float64(size)) <= maxWidth*f.FirstAllowance &&
		f.Measurer.TextWidth(lines[1], float64(size)) <= maxWidth*f.SecondAllowance
}

// semanticSplits returns candidate breaks in priority order: before a
// packaging qualifier, before a parenthesis, after a measurement, after the
// first comma, at the space nearest the middle.
func semanticSplits(text string) [][2]string {
	var out [][2]string
	add := func(a, b string) {
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if a != "" && b != "" {
			out = append(out, [2]string{a, b})
		}
	}

	if m := qualifierPattern.FindStringSubmatchIndex(text); m != nil {
		add(text[:m[2]], text[m[2]:])
	}
	if i := strings.Index(text, "("); i > 0 {
		add(text[:i], text[i:])
	}
	if m := measurePattern.FindStringSubmatchIndex(text); m != nil {
		add(text[:m[3]], text[m[3]:])
	}
	if i := strings.Index(text, ","); i >= 0 {
		add(text[:i+1], text[i+1:])
	}
	if mid, ok := midpointSplit(text); ok {
		out = append(out, mid)
	}
	return out
}

// midpointSplit breaks at the space closest to the middle rune, preferring
// the left one on a tie.
func midpointSplit(text string) ([2]string, bool) {
	runes := []rune(text)
	mid := len(runes) / 2
	best := -1
	for i, r := range runes {
		if !unicode.IsSpace(r) {
			continue
		}
		if best < 0 || abs(i-mid) < abs(best-mid) {
			best = i
		}
	}
	if best <= 0 || best >= len(runes)-1 {
		return [2]string{}, false
	}
	return [2]string{
		strings.TrimSpace(string(runes[:best])),
		strings.TrimSpace(string(runes[best+1:])),
	}, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
