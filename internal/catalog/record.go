// Package catalog turns OCR text from vendor catalog tags into product records
// and decides which records are fit for printing.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Field names a ProductRecord field. The string values double as the JSON and
// CSV column names.
type Field string

const (
	FieldProductName Field = "productName"
	FieldPrice       Field = "price"
	FieldSKU         Field = "sku"
	FieldBarcode     Field = "barcode"
	FieldDescription Field = "description"
)

// fieldOrder is the canonical order used when reporting missing fields.
var fieldOrder = []Field{FieldProductName, FieldSKU, FieldPrice, FieldBarcode}

var (
	// ErrUnknownField is returned for edits to a field that does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrBarcodeDerived is returned for direct barcode edits; the barcode
	// always follows the SKU.
	ErrBarcodeDerived = errors.New("barcode is derived from the sku and cannot be edited")
)

// ParseField resolves a user-supplied field name. Short aliases used by the
// command line ("name", "desc") are accepted.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "productname", "name", "product":
		return FieldProductName, nil
	case "price":
		return FieldPrice, nil
	case "sku", "model":
		return FieldSKU, nil
	case "barcode":
		return FieldBarcode, nil
	case "description", "desc", "category":
		return FieldDescription, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// FieldSet is an ordered set of fields, always kept in canonical order.
type FieldSet []Field

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	for _, v := range s {
		if v == f {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no members.
func (s FieldSet) Empty() bool { return len(s) == 0 }

func (s FieldSet) String() string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Origin locates the catalog region an OCR-derived record came from.
type Origin struct {
	Page   int `json:"page"`
	Region int `json:"region"`
}

func (o Origin) String() string {
	return fmt.Sprintf("page %d region %d", o.Page+1, o.Region+1)
}

// Record is the unit of work: one product tag.
type Record struct {
	ProductName string   `json:"productName" csv:"productName"`
	Price       string   `json:"price" csv:"price"`
	SKU         string   `json:"sku" csv:"sku"`
	Barcode     string   `json:"barcode" csv:"barcode"`
	Description string   `json:"description,omitempty" csv:"description,omitempty"`
	Missing     FieldSet `json:"missingFields,omitempty" csv:"-"`
	Selected    bool     `json:"selectedForPrint" csv:"selected"`
	Origin      *Origin  `json:"origin,omitempty" csv:"-"`
}

// Complete reports whether no required field is missing.
func (r *Record) Complete() bool { return r.Missing.Empty() }

// Label returns a short human readable identifier for logs and listings.
func (r *Record) Label() string {
	name := r.ProductName
	if name == "" {
		name = "(no name)"
	}
	if r.SKU == "" {
		return name
	}
	return fmt.Sprintf("%s [%s]", name, r.SKU)
}

// Barcode derives the barcode payload for a SKU: every character that is not
// a letter or a digit is dropped.
func Barcode(sku string) string {
	var sb strings.Builder
	sb.Grow(len(sku))
	for _, r := range sku {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Normalize trims fields, regenerates the barcode from the SKU and recomputes
// the missing-field set from scratch. It never fails and is idempotent.
func Normalize(r *Record) {
	r.ProductName = collapseSpaces(r.ProductName)
	r.Price = strings.TrimSpace(r.Price)
	r.SKU = strings.TrimSpace(r.SKU)
	r.Description = strings.TrimSpace(r.Description)
	r.Barcode = Barcode(r.SKU)

	var missing FieldSet
	for _, f := range fieldOrder {
		switch f {
		case FieldProductName:
			if r.ProductName == "" {
				missing = append(missing, f)
			}
		case FieldSKU:
			if r.SKU == "" {
				missing = append(missing, f)
			}
		case FieldPrice:
			if r.Price == "" {
				missing = append(missing, f)
			}
		case FieldBarcode:
			// Only meaningful once there is a SKU to derive it from,
			// e.g. a SKU made of punctuation alone.
			if r.SKU != "" && r.Barcode == "" {
				missing = append(missing, f)
			}
		}
	}
	r.Missing = missing
}

// Set applies a single field edit and renormalizes. Price edits must parse as
// a positive amount; on failure the previous price is kept and an error
// wrapping ErrInvalidPrice is returned.
func (r *Record) Set(f Field, value string) error {
	switch f {
	case FieldProductName:
		r.ProductName = value
	case FieldPrice:
		price, err := CanonicalPrice(value)
		if err != nil {
			return err
		}
		r.Price = price
	case FieldSKU:
		r.SKU = value
	case FieldDescription:
		r.Description = value
	case FieldBarcode:
		return ErrBarcodeDerived
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	Normalize(r)
	return nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
