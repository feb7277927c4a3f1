package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"

	"pricetag/internal/layout"
)

const fontFamily = "gobold"

// Accent bar color.
var accent = [3]int{0xC0, 0x39, 0x2B}

// PDF replays planned pages onto a PDF document and writes it to w. The Go
// Bold face is embedded so drawn glyphs match the fit metric.
func PDF(w io.Writer, pages []Page, sheet Sheet) error {
	if len(pages) == 0 {
		return fmt.Errorf("nothing to render")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: sheet.PageWidth, Ht: sheet.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("pricetag", true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", gobold.TTF)

	for _, page := range pages {
		pdf.AddPage()
		for _, tag := range page.Tags {
			for _, op := range tag.Ops {
				draw(pdf, op)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func draw(pdf *fpdf.Fpdf, op Op) {
	switch op.Kind {
	case OpBorder:
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(op.LineWidth / layout.Inch)
		pdf.Rect(op.Rect.X, op.Rect.Y, op.Rect.Width, op.Rect.Height, "D")
	case OpFill:
		pdf.SetFillColor(accent[0], accent[1], accent[2])
		pdf.Rect(op.Rect.X, op.Rect.Y, op.Rect.Width, op.Rect.Height, "F")
	case OpText:
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(fontFamily, "", op.FontSize)
		pdf.Text(op.X, op.Y, op.Text)
	case OpBarcode:
		pdf.SetFillColor(0, 0, 0)
		for _, r := range BarRects(op) {
			pdf.Rect(r.X, r.Y, r.Width, r.Height, "F")
		}
	}
}
