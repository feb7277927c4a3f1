package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when a price is not a positive amount.
var ErrInvalidPrice = errors.New("price must be a positive number")

// ParsePrice parses a price as entered by a person or found by OCR. A leading
// "$", thousands separators and surrounding whitespace are accepted.
func ParsePrice(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return d, nil
}

// CanonicalPrice validates s and returns it with exactly two decimals and no
// currency symbol, the form stored on edited records.
func CanonicalPrice(s string) (string, error) {
	d, err := ParsePrice(s)
	if err != nil {
		return "", err
	}
	return d.StringFixed(2), nil
}

// FormatPrice renders a stored price for a tag, e.g. "1299.5" -> "$1,299.50".
// Unparseable prices are returned unchanged behind the currency symbol.
func FormatPrice(s string) string {
	d, err := ParsePrice(s)
	if err != nil {
		return "$" + strings.TrimSpace(s)
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	sb.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	sb.WriteByte('.')
	sb.WriteString(frac)
	return sb.String()
}
