// Command regiondump segments one catalog page, runs OCR on each region and
// prints the raw text next to the parsed record. It is the tool for tuning
// segmentation mode and parser rules against a new catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"pricetag/internal/catalog"
	"pricetag/internal/ocr"
	"pricetag/internal/raster"
	"pricetag/internal/segment"
)

func main() {
	imagePath := flag.String("image", "", "Path to a page image (TIFF, PNG, or JPEG)")
	pdfPath := flag.String("pdf", "", "Path to a catalog PDF")
	page := flag.Int("page", 1, "PDF page to dump (1-based)")
	dpi := flag.Float64("dpi", raster.DefaultDPI, "Rasterization DPI")
	modeName := flag.String("mode", "quarters", "Segmentation mode: whole, halves or quarters")
	runOCR := flag.Bool("ocr", true, "Run OCR on each region")
	saveDir := flag.String("save", "", "Write each region as PNG into this directory")
	flag.Parse()

	if (*imagePath == "") == (*pdfPath == "") {
		fmt.Println("Usage: regiondump (-image <path> | -pdf <path> [-page 1] [-dpi 300]) [-mode quarters] [-ocr=false] [-save dir]")
		os.Exit(1)
	}

	mode, err := segment.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	img, pageDPI, err := loadPage(*imagePath, *pdfPath, *page, *dpi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load page: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Page: %dx%d pixels at %.0f DPI, mode %s\n", bounds.Dx(), bounds.Dy(), pageDPI, mode)

	regions, err := segment.Split(img, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Segmentation failed: %v\n", err)
		os.Exit(1)
	}

	var engine *ocr.Tesseract
	if *runOCR {
		engine, err = ocr.NewTesseract(ocr.NewParams(ocr.WithDPI(int(pageDPI))))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start OCR: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()
		fmt.Printf("OCR: tesseract %s\n", engine.Version())
	}

	ctx := context.Background()
	for _, r := range regions {
		mean, sd := segment.Luminance(r.Image)
		fmt.Printf("\n=== Region %d  x=%d y=%d %dx%d  luminance mean=%.1f sd=%.1f ===\n",
			r.Index+1, r.Bounds.X, r.Bounds.Y, r.Bounds.Width, r.Bounds.Height, mean, sd)

		if *saveDir != "" {
			path := filepath.Join(*saveDir, fmt.Sprintf("region-%d.png", r.Index+1))
			if err := savePNG(path, r.Image); err != nil {
				fmt.Fprintf(os.Stderr, "  save failed: %v\n", err)
			} else {
				fmt.Printf("Saved %s\n", path)
			}
		}

		if engine == nil {
			continue
		}
		text, err := engine.Recognize(ctx, r.Image)
		if err != nil {
			fmt.Printf("OCR error: %v\n", err)
			continue
		}
		fmt.Println("--- text ---")
		fmt.Println(text)

		rec, ok := catalog.Parse(text)
		fmt.Println("--- record ---")
		if !ok {
			fmt.Println("(no product)")
			continue
		}
		fmt.Printf("  name:        %s\n", rec.ProductName)
		fmt.Printf("  price:       %s\n", rec.Price)
		fmt.Printf("  sku:         %s\n", rec.SKU)
		fmt.Printf("  barcode:     %s\n", rec.Barcode)
		fmt.Printf("  description: %s\n", rec.Description)
		if !rec.Complete() {
			fmt.Printf("  missing:     %s\n", rec.Missing)
		}
	}
}

// loadPage returns the page image and its resolution.
func loadPage(imagePath, pdfPath string, page int, dpi float64) (image.Image, float64, error) {
	if imagePath != "" {
		p, err := raster.LoadImage(imagePath)
		if err != nil {
			return nil, 0, err
		}
		if p.DPI > 0 {
			dpi = p.DPI
		}
		return p.Image, dpi, nil
	}

	if strings.ToLower(filepath.Ext(pdfPath)) != ".pdf" {
		fmt.Fprintf(os.Stderr, "Warning: %s does not look like a PDF\n", pdfPath)
	}
	n, err := raster.PageCount(pdfPath)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 || page > n {
		return nil, 0, fmt.Errorf("page %d out of range (document has %d)", page, n)
	}
	pages, err := raster.New(dpi).Rasterize(context.Background(), pdfPath)
	if err != nil {
		return nil, 0, err
	}
	return pages[page-1], dpi, nil
}

func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
