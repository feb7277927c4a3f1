// Package extract runs an uploaded catalog through rasterization,
// segmentation, OCR and parsing, producing normalized product records.
package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pricetag/internal/catalog"
	"pricetag/internal/segment"
)

// ErrNoPages is returned when the document yields no page images.
var ErrNoPages = errors.New("document contains no pages")

// Rasterizer renders a PDF file to page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]image.Image, error)
}

// Recognizer turns a region image into raw text.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// RecordParser extracts a candidate record from raw text.
type RecordParser interface {
	Parse(text string) (catalog.Record, bool)
}

// Extractor wires the pipeline stages together. A nil Parser uses the
// default catalog rules.
type Extractor struct {
	Rasterizer Rasterizer
	OCR        Recognizer
	Parser     RecordParser
	Mode       segment.Mode

	// SkipBlank drops regions whose luminance deviation is below
	// BlankStdDev before OCR.
	SkipBlank   bool
	BlankStdDev float64

	// TempDir is the parent for spooled uploads; empty uses os.TempDir.
	TempDir string

	Logger *zap.Logger
}

// Result summarizes one extraction run.
type Result struct {
	Records []catalog.Record
	Pages   int
	Regions int
	Blank   int
	Failed  int
	Empty   int
}

func (e *Extractor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Extractor) parser() RecordParser {
	if e.Parser == nil {
		return catalog.NewParser(catalog.DefaultRules())
	}
	return e.Parser
}

// ExtractReader spools an uploaded document to a private temp directory,
// extracts it, and removes the directory on every exit path.
func (e *Extractor) ExtractReader(ctx context.Context, r io.Reader) (*Result, error) {
	dir, err := os.MkdirTemp(e.TempDir, "pricetag-upload-")
	if err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			e.logger().Warn("failed to remove upload dir", zap.String("dir", dir), zap.Error(err))
		}
	}()

	path := filepath.Join(dir, "catalog.pdf")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	return e.ExtractFile(ctx, path)
}

// ExtractFile rasterizes the PDF at path and extracts its pages.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Result, error) {
	if e.Rasterizer == nil {
		return nil, fmt.Errorf("no rasterizer configured")
	}
	e.logger().Info("rasterizing catalog", zap.String("path", path))

	pages, err := e.Rasterizer.Rasterize(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	return e.ExtractPages(ctx, pages)
}

// ExtractPages processes page images in order, region by region in
// row-major order. A failing region contributes no record and never stops
// its siblings; only cancellation or a segmentation error aborts the run.
func (e *Extractor) ExtractPages(ctx context.Context, pages []image.Image) (*Result, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if e.OCR == nil {
		return nil, fmt.Errorf("no OCR engine configured")
	}
	log := e.logger()
	res := &Result{Pages: len(pages)}

	for p, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		regions, err := segment.Split(page, e.Mode)
		if err != nil {
			return nil, fmt.Errorf("segment page %d: %w", p+1, err)
		}
		log.Info("processing page", zap.Int("page", p+1), zap.Int("regions", len(regions)), zap.Stringer("mode", e.Mode))

		for _, region := range regions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res.Regions++
			origin := catalog.Origin{Page: p, Region: region.Index}
			rlog := log.With(zap.Stringer("origin", origin))

			if e.SkipBlank && segment.IsBlank(region.Image, e.BlankStdDev) {
				res.Blank++
				rlog.Debug("skipping blank region")
				continue
			}

			rec, ok, err := e.region(ctx, region.Image)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				res.Failed++
				rlog.Warn("region failed", zap.Error(err))
			case !ok:
				res.Empty++
				rlog.Info("no product in region")
			default:
				rec.Origin = &origin
				res.Records = append(res.Records, rec)
				rlog.Info("extracted record",
					zap.String("sku", rec.SKU),
					zap.Stringer("missing", rec.Missing))
			}
		}
	}

	log.Info("extraction finished",
		zap.Int("pages", res.Pages),
		zap.Int("regions", res.Regions),
		zap.Int("records", len(res.Records)),
		zap.Int("failed", res.Failed))
	return res, nil
}

// region runs OCR and parsing for one region, converting panics from either
// stage into errors.
func (e *Extractor) region(ctx context.Context, img image.Image) (rec catalog.Record, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	text, err := e.OCR.Recognize(ctx, img)
	if err != nil {
		return catalog.Record{}, false, fmt.Errorf("ocr: %w", err)
	}
	e.logger().Debug("ocr text", zap.String("text", text))

	rec, ok = e.parser().Parse(text)
	if !ok {
		return catalog.Record{}, false, nil
	}
	catalog.Normalize(&rec)
	rec.Selected = false
	return rec, true, nil
}
