// Package render lays out print batches as tag sheets and writes them as PDF.
// Planning is pure geometry; the PDF writer only replays draw operations.
package render

import (
	"fmt"

	"pricetag/internal/catalog"
	"pricetag/internal/layout"
	"pricetag/pkg/geometry"
)

// Sheet describes the label stock in inches.
type Sheet struct {
	PageWidth  float64
	PageHeight float64
	TagWidth   float64
	TagHeight  float64
	Gap        float64 // vertical space between tags
	Padding    float64 // inner margin of a tag
	PerPage    int

	BorderWidth float64 // points
	AccentBar   float64 // height of the bottom bar

	PriceSize float64
	SKUSize   float64
}

// DefaultSheet is letter paper with one column of six 4x1.5in tags.
func DefaultSheet() Sheet {
	return Sheet{
		PageWidth:   8.5,
		PageHeight:  11,
		TagWidth:    4,
		TagHeight:   1.5,
		Gap:         0.2,
		Padding:     0.2,
		PerPage:     6,
		BorderWidth: 1,
		AccentBar:   0.12,
		PriceSize:   22,
		SKUSize:     8,
	}
}

// Validate checks that the tags fit on the page.
func (s Sheet) Validate() error {
	if s.PerPage < 1 {
		return fmt.Errorf("tags per page must be positive, got %d", s.PerPage)
	}
	if s.TagWidth <= 2*s.Padding || s.TagHeight <= 0 {
		return fmt.Errorf("tag %.2fx%.2fin too small for padding %.2fin", s.TagWidth, s.TagHeight, s.Padding)
	}
	if s.TagWidth > s.PageWidth || s.columnHeight() > s.PageHeight {
		return fmt.Errorf("%d tags of %.2fx%.2fin do not fit a %.2fx%.2fin page",
			s.PerPage, s.TagWidth, s.TagHeight, s.PageWidth, s.PageHeight)
	}
	return nil
}

// MaxTextWidth is the printable name width in points.
func (s Sheet) MaxTextWidth() float64 {
	return (s.TagWidth - 2*s.Padding) * layout.Inch
}

func (s Sheet) columnHeight() float64 {
	return float64(s.PerPage)*s.TagHeight + float64(s.PerPage-1)*s.Gap
}

// Slot returns the bounds of the i-th tag on a page, centered on the page.
func (s Sheet) Slot(i int) geometry.Rect {
	left := (s.PageWidth - s.TagWidth) / 2
	top := (s.PageHeight - s.columnHeight()) / 2
	return geometry.NewRect(left, top+float64(i)*(s.TagHeight+s.Gap), s.TagWidth, s.TagHeight)
}

// OpKind identifies a draw operation.
type OpKind int

const (
	OpBorder OpKind = iota
	OpFill
	OpText
	OpBarcode
)

func (k OpKind) String() string {
	switch k {
	case OpBorder:
		return "border"
	case OpFill:
		return "fill"
	case OpText:
		return "text"
	case OpBarcode:
		return "barcode"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one draw instruction. Coordinates are inches from the page's top
// left; text positions are baselines.
type Op struct {
	Kind      OpKind
	Rect      geometry.Rect // border, fill, barcode
	X, Y      float64       // text
	Text      string        // text content or barcode value
	FontSize  float64       // points
	LineWidth float64       // points
	Bars      []Bar         // barcode
	Modules   int           // barcode width in modules
}

// Tag is one planned label.
type Tag struct {
	Record catalog.Record
	Bounds geometry.Rect
	Layout layout.Layout
	Ops    []Op
}

// Page is one sheet of tags.
type Page struct {
	Tags []Tag
}

// Plan lays out records onto sheets in order. Records are expected to be a
// validated batch; a record whose barcode cannot be encoded is an error.
func Plan(records []catalog.Record, fitter *layout.Fitter, sheet Sheet) ([]Page, error) {
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	var pages []Page
	for i, rec := range records {
		slot := i % sheet.PerPage
		if slot == 0 {
			pages = append(pages, Page{})
		}
		tag, err := planTag(rec, fitter, sheet, sheet.Slot(slot))
		if err != nil {
			return nil, fmt.Errorf("tag %d (%s): %w", i+1, rec.Label(), err)
		}
		p := &pages[len(pages)-1]
		p.Tags = append(p.Tags, tag)
	}
	return pages, nil
}

func planTag(rec catalog.Record, fitter *layout.Fitter, sheet Sheet, b geometry.Rect) (Tag, error) {
	lay := fitter.Fit(rec.ProductName, sheet.MaxTextWidth())
	tag := Tag{Record: rec, Bounds: b, Layout: lay}

	tag.Ops = append(tag.Ops,
		Op{Kind: OpBorder, Rect: b, LineWidth: sheet.BorderWidth},
		Op{Kind: OpFill, Rect: geometry.NewRect(b.X, b.Bottom()-sheet.AccentBar, b.Width, sheet.AccentBar)},
	)

	// Name lines from the top padding, 1.15 leading.
	x := b.X + sheet.Padding
	size := float64(lay.FontSize)
	y := b.Y + sheet.Padding + size/layout.Inch
	for _, line := range lay.Lines {
		if line != "" {
			tag.Ops = append(tag.Ops, Op{Kind: OpText, X: x, Y: y, Text: line, FontSize: size})
		}
		y += size * 1.15 / layout.Inch
	}

	tag.Ops = append(tag.Ops,
		Op{Kind: OpText, X: x, Y: b.Y + 1.05, Text: catalog.FormatPrice(rec.Price), FontSize: sheet.PriceSize},
		Op{Kind: OpText, X: x, Y: b.Y + 1.28, Text: "SKU: " + rec.SKU, FontSize: sheet.SKUSize},
	)

	if rec.Barcode != "" {
		bars, modules, err := Code128(rec.Barcode)
		if err != nil {
			return Tag{}, err
		}
		box := geometry.NewRect(b.X+2.2, b.Y+0.8, b.Width-2.2-sheet.Padding, 0.45)
		tag.Ops = append(tag.Ops, Op{Kind: OpBarcode, Rect: box, Text: rec.Barcode, Bars: bars, Modules: modules})
	}
	return tag, nil
}

// BarRects converts a barcode op into filled rectangles inside its box.
func BarRects(op Op) []geometry.Rect {
	if op.Modules == 0 {
		return nil
	}
	module := op.Rect.Width / float64(op.Modules)
	rects := make([]geometry.Rect, len(op.Bars))
	for i, bar := range op.Bars {
		rects[i] = geometry.NewRect(op.Rect.X+float64(bar.Start)*module, op.Rect.Y, float64(bar.Width)*module, op.Rect.Height)
	}
	return rects
}
