package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Parser extracts product records from the OCR text of one catalog region.
type Parser struct {
	rules Rules
}

// NewParser creates a parser using the given rules.
func NewParser(rules Rules) *Parser {
	return &Parser{rules: rules}
}

var defaultParser = NewParser(DefaultRules())

// Parse extracts a record from text using DefaultRules.
func Parse(text string) (Record, bool) {
	return defaultParser.Parse(text)
}

// scan holds the marker positions found in one region's lines.
type scan struct {
	lines     []string
	category  string
	sku       string
	price     string
	skuLine   int
	priceLine int
	anyMarker bool
}

// Parse extracts a candidate record from raw OCR text. It returns false when
// the text carries no product: no marker token at all, or nothing usable for
// the SKU, name and price. The returned record is normalized.
func (p *Parser) Parse(text string) (Record, bool) {
	s := p.scan(text)
	if !s.anyMarker {
		return Record{}, false
	}

	name := ""
	if s.skuLine >= 0 && s.priceLine >= 0 && s.skuLine < s.priceLine {
		name = p.nameBetween(s.lines[s.skuLine+1 : s.priceLine])
	}
	if name == "" {
		name = p.fallbackName(s.lines)
	}

	if s.sku == "" && name == "" && s.price == "" {
		return Record{}, false
	}

	rec := Record{
		ProductName: name,
		Price:       s.price,
		SKU:         s.sku,
		Description: s.category,
	}
	Normalize(&rec)
	return rec, true
}

func (p *Parser) scan(text string) scan {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	s := scan{
		lines:     strings.Split(text, "\n"),
		skuLine:   -1,
		priceLine: -1,
	}

	labelLine := -1
	labelPrice := ""
	for i, raw := range s.lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// The first matching line wins for every marker.
		if s.category == "" && p.rules.isCategory(line) {
			s.category = collapseSpaces(line)
			s.anyMarker = true
		}
		if s.skuLine < 0 {
			if m := submatch(p.rules.SKU, line); m != nil {
				s.skuLine = i
				s.sku = strings.TrimSpace(m[1])
				s.anyMarker = true
			}
		}
		if s.priceLine < 0 {
			if m := submatch(p.rules.Amount, line); m != nil {
				s.priceLine = i
				s.price = cleanAmount(m[1])
				s.anyMarker = true
			}
		}
		if labelLine < 0 {
			if m := submatch(p.rules.PriceLabel, line); m != nil {
				labelLine = i
				labelPrice = cleanAmount(m[1])
				s.anyMarker = true
			}
		}
	}

	// A labelled price is only a fallback for a missing bare amount.
	if s.priceLine < 0 && labelLine >= 0 {
		s.priceLine = labelLine
		s.price = labelPrice
	}
	return s
}

// nameBetween joins the product-name lines found between the SKU and price
// lines.
func (p *Parser) nameBetween(lines []string) string {
	var parts []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || p.rules.excludedFromName(line) {
			continue
		}
		parts = append(parts, line)
	}
	return collapseSpaces(strings.Join(parts, " "))
}

// fallbackName returns the first long line that is not a marker line.
func (p *Parser) fallbackName(lines []string) string {
	for _, raw := range lines {
		line := collapseSpaces(raw)
		if utf8.RuneCountInString(line) <= p.rules.MinNameLength {
			continue
		}
		if p.rules.excludedFromName(line) {
			continue
		}
		return line
	}
	return ""
}

// submatch is FindStringSubmatch that treats a nil pattern as never matching.
func submatch(re *regexp.Regexp, line string) []string {
	if re == nil {
		return nil
	}
	return re.FindStringSubmatch(line)
}

func cleanAmount(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSuffix(s, ".")
}
