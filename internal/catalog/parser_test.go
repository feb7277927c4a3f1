package catalog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVendorTag(t *testing.T) {
	rec, ok := Parse("Hearth > Stoves\nModel #: ABC-123\nDeluxe Stove Model\n$499.99")
	require.True(t, ok)

	assert.Equal(t, "ABC-123", rec.SKU)
	assert.Equal(t, "Deluxe Stove Model", rec.ProductName)
	assert.Equal(t, "499.99", rec.Price)
	assert.Equal(t, "ABC123", rec.Barcode)
	assert.Equal(t, "Hearth > Stoves", rec.Description)
	assert.Empty(t, rec.Missing)
	assert.False(t, rec.Selected, "OCR-derived records start unselected")
}

func TestParseNoProduct(t *testing.T) {
	tests := map[string]string{
		"blank":       "",
		"whitespace":  "  \n\t\n   ",
		"boilerplate": "Special financing available on approved credit\nVisit us at www.example.com",
		"noise":       "~ ,. '' \n|||",
		"prose":       "This line is definitely longer than twenty characters",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := Parse(text)
			assert.False(t, ok)
		})
	}
}

func TestParseCategoryOnlyIsNone(t *testing.T) {
	_, ok := Parse("Hearth > Accessories\n\n")
	assert.False(t, ok, "a breadcrumb with nothing else is decorative")
}

func TestParseMultilineNameWithExclusions(t *testing.T) {
	text := `Hearth > Gas Inserts > Vent Free
Model #:   VF-36/LP  
Premium Vent-Free
  Gas   Insert with   Remote
Special Financing Available
Hearth > Extra
Regular Price: $1,799.00
$1,599.00`
	rec, ok := Parse(text)
	require.True(t, ok)

	assert.Equal(t, "VF-36/LP", rec.SKU)
	assert.Equal(t, "VF36LP", rec.Barcode)
	assert.Equal(t, "Premium Vent-Free Gas Insert with Remote", rec.ProductName)
	assert.Equal(t, "1599.00", rec.Price, "bare amounts win over labelled prices")
	assert.Equal(t, "Hearth > Gas Inserts > Vent Free", rec.Description)
}

func TestParseLabelledPriceFallback(t *testing.T) {
	rec, ok := Parse("Model #: WS-100\nWood Stove 100\nRegular Price: $899.50\nfooter")
	require.True(t, ok)
	assert.Equal(t, "899.50", rec.Price)
	assert.Equal(t, "Wood Stove 100", rec.ProductName)
	assert.Empty(t, rec.Missing)
}

func TestParseLabelWithoutAmount(t *testing.T) {
	rec, ok := Parse("Model #: WS-100\nCast Iron Wood Stove\nRegular Price: call")
	require.True(t, ok)
	assert.Equal(t, "Cast Iron Wood Stove", rec.ProductName)
	assert.Equal(t, "", rec.Price)
	assert.Equal(t, FieldSet{FieldPrice}, rec.Missing)
}

func TestParseFirstMarkerWins(t *testing.T) {
	rec, ok := Parse("Model #: FIRST-1\nGood Name Here\n$10.00\nModel #: SECOND-2\n$20.00")
	require.True(t, ok)
	assert.Equal(t, "FIRST-1", rec.SKU)
	assert.Equal(t, "10.00", rec.Price)
	assert.Equal(t, "Good Name Here", rec.ProductName)
}

func TestParsePriceBeforeSKUFallsBack(t *testing.T) {
	text := "$349.00\nShort\nModel #: GR-7\nPorcelain Grill Grate Replacement"
	rec, ok := Parse(text)
	require.True(t, ok)

	assert.Equal(t, "GR-7", rec.SKU)
	assert.Equal(t, "349.00", rec.Price)
	assert.Equal(t, "Porcelain Grill Grate Replacement", rec.ProductName,
		"name comes from the first long non-marker line")
}

func TestParseMissingName(t *testing.T) {
	rec, ok := Parse("Model #: Q-1\n$5")
	require.True(t, ok)
	assert.Equal(t, "", rec.ProductName)
	assert.Equal(t, FieldSet{FieldProductName}, rec.Missing)
}

func TestParsePartialRecordKept(t *testing.T) {
	rec, ok := Parse("Hearth > Stoves\nOak Finish Pellet Stove Deluxe\n$1,200")
	require.True(t, ok)
	assert.Equal(t, "Oak Finish Pellet Stove Deluxe", rec.ProductName)
	assert.Equal(t, "1200", rec.Price)
	assert.Equal(t, FieldSet{FieldSKU}, rec.Missing)
	assert.Equal(t, "", rec.Barcode)
}

func TestParseWindowsLineEndings(t *testing.T) {
	rec, ok := Parse("Model #: W-1\r\nWindows Stove\r\n$1.50\r\n")
	require.True(t, ok)
	assert.Equal(t, "W-1", rec.SKU)
	assert.Equal(t, "Windows Stove", rec.ProductName)
	assert.Equal(t, "1.50", rec.Price)
}

func TestCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.SKU = regexp.MustCompile(`(?i)item\s*no\.?\s*(.*)$`)
	rules.Category = regexp.MustCompile(`^Grills\s*/`)
	p := NewParser(rules)

	rec, ok := p.Parse("Grills / Charcoal\nItem No. 55-AB\nKettle Grill 22 in\n$129.00")
	require.True(t, ok)
	assert.Equal(t, "55-AB", rec.SKU)
	assert.Equal(t, "Kettle Grill 22 in", rec.ProductName)
	assert.Equal(t, "Grills / Charcoal", rec.Description)
}

func TestParseFallbackNameCountsCharacters(t *testing.T) {
	short := strings.Repeat("é", 20)
	rec, ok := Parse(short + "\n$5")
	require.True(t, ok)
	assert.Equal(t, "", rec.ProductName, "twenty accented letters are not long enough")

	long := strings.Repeat("é", 21)
	rec, ok = Parse(long + "\n$5")
	require.True(t, ok)
	assert.Equal(t, long, rec.ProductName)
}

func TestParseNilPatterns(t *testing.T) {
	rules := DefaultRules()
	rules.SKU = nil
	rules.Amount = nil
	rules.PriceLabel = nil
	p := NewParser(rules)

	var (
		rec Record
		ok  bool
	)
	require.NotPanics(t, func() {
		rec, ok = p.Parse("Hearth > Stoves\nModel #: ABC-123\nDeluxe Pellet Stove With Blower\n$499.99")
	})
	require.True(t, ok, "the category line is still a marker")
	assert.Equal(t, "", rec.SKU)
	assert.Equal(t, "", rec.Price)
	assert.Equal(t, "Deluxe Pellet Stove With Blower", rec.ProductName)
}
