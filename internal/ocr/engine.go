// Package ocr turns region images into raw text. The Engine contract is the
// only thing the rest of the tool depends on; Tesseract is the default
// implementation.
package ocr

import (
	"context"
	"image"
)

// Engine recognizes the text in one image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Params holds tunable recognition and preprocessing parameters.
type Params struct {
	// Tesseract language codes, e.g. "eng"
	Languages []string `json:"languages,omitempty"`

	// Page segmentation mode; 6 = assume a single uniform block of text
	PSMMode int `json:"psm_mode,omitempty"`

	// Effective resolution of the input, passed as user_defined_dpi; 0 = unknown
	DPI int `json:"dpi,omitempty"`

	// Grayscale + threshold the image before recognition
	Preprocess bool `json:"preprocess"`

	// Scaling: minimum dimension target for upscaling small regions
	MinScaleDim int `json:"min_scale_dim,omitempty"`

	// CLAHE contrast limit; 0 disables contrast equalization
	CLAHEClipLimit float64 `json:"clahe_clip,omitempty"`

	// Extra Tesseract variables
	Variables map[string]string `json:"variables,omitempty"`
}

// DefaultParams matches the settings the catalog was tuned with: English,
// single block, 300 DPI scans, Otsu thresholding.
func DefaultParams() Params {
	return Params{
		Languages:   []string{"eng"},
		PSMMode:     6,
		DPI:         300,
		Preprocess:  true,
		MinScaleDim: 150,
	}
}

// Option mutates Params.
type Option func(*Params)

// WithLanguages sets the recognition languages.
func WithLanguages(langs ...string) Option {
	return func(p *Params) { p.Languages = append([]string(nil), langs...) }
}

// WithPSM sets the Tesseract page segmentation mode.
func WithPSM(mode int) Option {
	return func(p *Params) { p.PSMMode = mode }
}

// WithDPI sets the effective input resolution.
func WithDPI(dpi int) Option {
	return func(p *Params) { p.DPI = dpi }
}

// WithPreprocess enables or disables image preprocessing.
func WithPreprocess(enabled bool) Option {
	return func(p *Params) { p.Preprocess = enabled }
}

// WithVariable sets a raw Tesseract variable.
func WithVariable(key, value string) Option {
	return func(p *Params) {
		if p.Variables == nil {
			p.Variables = make(map[string]string)
		}
		p.Variables[key] = value
	}
}

// NewParams applies opts on top of DefaultParams.
func NewParams(opts ...Option) Params {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
