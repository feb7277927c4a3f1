package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrEmptyBatch is returned when no selected record is complete enough to print.
var ErrEmptyBatch = errors.New("no complete records selected for printing")

// Blocked describes a selected record that cannot be printed.
type Blocked struct {
	Index   int
	Label   string
	Missing FieldSet
	Reason  string
}

func (b Blocked) String() string {
	return fmt.Sprintf("#%d %s: %s", b.Index+1, b.Label, b.Reason)
}

// BlockedError reports an empty print batch caused by selected records that
// are incomplete. It unwraps to ErrEmptyBatch.
type BlockedError struct {
	Blocked []Blocked
}

func (e *BlockedError) Error() string {
	parts := make([]string, len(e.Blocked))
	for i, b := range e.Blocked {
		parts[i] = b.String()
	}
	return fmt.Sprintf("%s; %d selected record(s) blocked: %s",
		ErrEmptyBatch, len(e.Blocked), strings.Join(parts, "; "))
}

func (e *BlockedError) Unwrap() error { return ErrEmptyBatch }

// Batch is the printable subset of a record collection, in collection order.
type Batch struct {
	Records []Record
	// Indexes maps each batch record back to its position in the collection.
	Indexes []int
	// Blocked lists selected records left out of the batch.
	Blocked []Blocked
}

// AssembleBatch filters records to those selected for print with no missing
// field, a printable price and a barcode Code128 can carry. Selected records that fail are reported in
// Blocked rather than dropped. An empty batch is an error.
func AssembleBatch(records []Record) (Batch, error) {
	var b Batch
	for i := range records {
		rec := records[i]
		if !rec.Selected {
			continue
		}
		// Never trust a stale missing set.
		Normalize(&rec)
		if !rec.Complete() {
			b.Blocked = append(b.Blocked, Blocked{
				Index:   i,
				Label:   rec.Label(),
				Missing: rec.Missing,
				Reason:  "missing " + rec.Missing.String(),
			})
			continue
		}
		if _, err := ParsePrice(rec.Price); err != nil {
			b.Blocked = append(b.Blocked, Blocked{
				Index:   i,
				Label:   rec.Label(),
				Missing: FieldSet{FieldPrice},
				Reason:  fmt.Sprintf("price %q is not a positive number", rec.Price),
			})
			continue
		}
		if !code128Safe(rec.Barcode) {
			b.Blocked = append(b.Blocked, Blocked{
				Index:   i,
				Label:   rec.Label(),
				Missing: FieldSet{FieldBarcode},
				Reason:  fmt.Sprintf("barcode %q cannot be encoded as Code128", rec.Barcode),
			})
			continue
		}
		b.Records = append(b.Records, rec)
		b.Indexes = append(b.Indexes, i)
	}

	if len(b.Records) == 0 {
		if len(b.Blocked) > 0 {
			return b, &BlockedError{Blocked: b.Blocked}
		}
		return b, ErrEmptyBatch
	}
	return b, nil
}

// code128Safe reports whether every rune of s is in Code128's ASCII range.
func code128Safe(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
