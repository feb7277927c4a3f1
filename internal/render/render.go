package render

import (
	"io"

	"go.uber.org/zap"

	"pricetag/internal/catalog"
	"pricetag/internal/layout"
)

// Report summarizes a rendered batch.
type Report struct {
	Pages   int
	Printed int
	// Overflow counts tags whose name was forced at the floor font size.
	Overflow int
	Blocked  []catalog.Blocked
}

// Renderer turns a record collection into a tag PDF.
type Renderer struct {
	Fitter *layout.Fitter
	Sheet  Sheet
	Logger *zap.Logger
}

// NewRenderer returns a Renderer for the default sheet and Go Bold metrics.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		Fitter: layout.NewFitter(layout.GoBold()),
		Sheet:  DefaultSheet(),
		Logger: logger,
	}
}

// Render assembles the print batch from records and writes it to w. Nothing
// is written when the batch is empty; the returned error then unwraps to
// catalog.ErrEmptyBatch and the report still lists blocked records.
func (r *Renderer) Render(w io.Writer, records []catalog.Record) (Report, error) {
	batch, err := catalog.AssembleBatch(records)
	report := Report{Blocked: batch.Blocked}
	for _, b := range batch.Blocked {
		r.Logger.Warn("record blocked from print", zap.Int("index", b.Index+1), zap.String("label", b.Label), zap.String("reason", b.Reason))
	}
	if err != nil {
		return report, err
	}

	pages, err := Plan(batch.Records, r.Fitter, r.Sheet)
	if err != nil {
		return report, err
	}
	if err := PDF(w, pages, r.Sheet); err != nil {
		return report, err
	}

	report.Pages = len(pages)
	report.Printed = len(batch.Records)
	for _, p := range pages {
		for _, t := range p.Tags {
			if t.Layout.Overflow {
				report.Overflow++
				r.Logger.Warn("name overflows tag", zap.String("label", t.Record.Label()), zap.Int("size", t.Layout.FontSize))
			}
		}
	}
	r.Logger.Info("batch rendered", zap.Int("pages", report.Pages), zap.Int("tags", report.Printed), zap.Int("blocked", len(report.Blocked)))
	return report, nil
}
