package catalog

import (
	"regexp"
	"strings"
)

// Rules holds the marker tokens and exclusions that anchor field extraction.
// Catalog format changes are made here, not in the parser.
type Rules struct {
	// Category matches the breadcrumb line at the start of a tag.
	Category *regexp.Regexp
	// SKU matches the model-number line; group 1 is the code.
	SKU *regexp.Regexp
	// Amount matches a line that starts with a bare currency amount; group 1
	// is the number.
	Amount *regexp.Regexp
	// PriceLabel matches an explicitly labelled price; group 1 is the number
	// and may be empty when OCR lost it.
	PriceLabel *regexp.Regexp
	// Boilerplate lists lower-case phrases of vendor footer text and notices
	// that never belong to a product name.
	Boilerplate []string
	// MinNameLength is the character count a line must exceed to be used as a fallback
	// product name.
	MinNameLength int
}

// DefaultRules returns the rules for the hearth-products vendor catalog.
func DefaultRules() Rules {
	return Rules{
		Category:   regexp.MustCompile(`^\s*[Hh]earth\s*>`),
		SKU:        regexp.MustCompile(`(?i)model\s*#\s*:?\s*(.*)$`),
		Amount:     regexp.MustCompile(`^\s*\$\s?(\d[\d,]*(?:\.\d{1,2})?)`),
		PriceLabel: regexp.MustCompile(`(?i)price\s*:\s*\$?\s*(\d[\d,]*(?:\.\d{1,2})?)?`),
		Boilerplate: []string{
			"financing available",
			"special financing",
			"ask about financing",
			"free shipping",
			"free delivery",
			"while supplies last",
			"see store for details",
			"prices subject to change",
			"in stock",
			"visit us at",
			"www.",
			"all rights reserved",
		},
		MinNameLength: 20,
	}
}

func (r *Rules) isCategory(line string) bool {
	return r.Category != nil && r.Category.MatchString(line)
}

func (r *Rules) isSKU(line string) bool {
	return r.SKU != nil && r.SKU.MatchString(line)
}

func (r *Rules) isAmount(line string) bool {
	return r.Amount != nil && r.Amount.MatchString(line)
}

func (r *Rules) isPriceLabel(line string) bool {
	return r.PriceLabel != nil && r.PriceLabel.MatchString(line)
}

func (r *Rules) isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range r.Boilerplate {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isMarker reports whether a line anchors any field.
func (r *Rules) isMarker(line string) bool {
	return r.isCategory(line) || r.isSKU(line) || r.isAmount(line) || r.isPriceLabel(line)
}

// excludedFromName reports whether a line between the SKU and price lines
// must be left out of the product name.
func (r *Rules) excludedFromName(line string) bool {
	return r.isMarker(line) || r.isBoilerplate(line)
}
