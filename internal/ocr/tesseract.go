package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Tesseract provides OCR using a gosseract client. A Tesseract is not safe for
// concurrent use; the client is reused across calls.
type Tesseract struct {
	client *gosseract.Client
	params Params
}

// NewTesseract creates a Tesseract engine.
func NewTesseract(params Params) (*Tesseract, error) {
	client := gosseract.NewClient()

	langs := params.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	for k, v := range params.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR variable %s: %w", k, err)
		}
	}

	return &Tesseract{client: client, params: params}, nil
}

// Name implements Engine.
func (e *Tesseract) Name() string { return "tesseract" }

// Version reports the linked Tesseract version.
func (e *Tesseract) Version() string { return e.client.Version() }

// Close releases OCR resources.
func (e *Tesseract) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize performs OCR on an image and returns its text with line breaks
// preserved. Field extraction downstream is line oriented.
func (e *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("empty image")
	}

	data, err := e.encode(img)
	if err != nil {
		return "", err
	}

	psm := e.params.PSMMode
	if psm == 0 {
		psm = int(gosseract.PSM_SINGLE_BLOCK)
	}
	if err := e.client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if e.params.DPI > 0 {
		if err := e.client.SetVariable("user_defined_dpi", strconv.Itoa(e.params.DPI)); err != nil {
			return "", fmt.Errorf("failed to set DPI: %w", err)
		}
	}

	if err := e.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// encode produces the PNG bytes handed to Tesseract.
func (e *Tesseract) encode(img image.Image) ([]byte, error) {
	if !e.params.Preprocess {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		return buf.Bytes(), nil
	}

	mat, err := toMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	processed := preprocessForOCR(mat, e.params)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory released by Close.
	return append([]byte(nil), buf.GetBytes()...), nil
}
