// Package config provides the typed tool configuration: built-in defaults,
// an optional JSON file, then PRICETAG_* environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pricetag/internal/layout"
	"pricetag/internal/ocr"
	"pricetag/internal/render"
	"pricetag/internal/segment"
)

const configFile = "config.json"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable of the pipeline.
type Config struct {
	DPI  int          `json:"dpi"`
	Mode segment.Mode `json:"mode"`

	OCR OCRConfig `json:"ocr"`

	// Regions whose luminance deviation is under BlankStdDev skip OCR.
	SkipBlank   bool    `json:"skip_blank"`
	BlankStdDev float64 `json:"blank_stddev"`

	Font FontConfig `json:"font"`

	// Parent directory for spooled uploads; empty = system temp dir
	TempDir string `json:"temp_dir,omitempty"`
}

// OCRConfig configures Tesseract.
type OCRConfig struct {
	Languages  []string          `json:"languages"`
	PSM        int               `json:"psm"`
	Preprocess bool              `json:"preprocess"`
	Variables  map[string]string `json:"variables,omitempty"` // raw Tesseract variables
}

// FontConfig holds tag font sizes (points) and fit allowances.
type FontConfig struct {
	Base  int `json:"base"`
	Floor int `json:"floor"`
	Price int `json:"price"`
	SKU   int `json:"sku"`

	FirstAllowance  float64 `json:"first_allowance"`
	SecondAllowance float64 `json:"second_allowance"`
	SingleAllowance float64 `json:"single_allowance"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DPI:  300,
		Mode: segment.ModeQuarters,
		OCR: OCRConfig{
			Languages:  []string{"eng"},
			PSM:        6,
			Preprocess: true,
		},
		SkipBlank:   true,
		BlankStdDev: 6,
		Font: FontConfig{
			Base:            14,
			Floor:           9,
			Price:           22,
			SKU:             8,
			FirstAllowance:  1.5,
			SecondAllowance: 1.2,
			SingleAllowance: 1.0,
		},
	}
}

// DefaultPath returns ~/.config/pricetag/config.json (or the XDG equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "pricetag", configFile)
}

// Load builds the configuration. An explicit path must exist; with an empty
// path the default location is read if present. Environment overrides are
// applied last and the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Save writes the configuration as indented JSON, creating parent dirs.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var problems []string
	if c.DPI <= 0 {
		problems = append(problems, fmt.Sprintf("dpi must be positive, got %d", c.DPI))
	}
	if _, err := segment.ParseMode(c.Mode.String()); err != nil {
		problems = append(problems, err.Error())
	}
	if len(c.OCR.Languages) == 0 {
		problems = append(problems, "at least one OCR language is required")
	}
	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		problems = append(problems, fmt.Sprintf("psm must be 0-13, got %d", c.OCR.PSM))
	}
	if c.BlankStdDev < 0 {
		problems = append(problems, "blank_stddev must not be negative")
	}
	f := c.Font
	if f.Floor <= 0 || f.Base <= 0 || f.Price <= 0 || f.SKU <= 0 {
		problems = append(problems, "font sizes must be positive")
	}
	if f.Floor > f.Base {
		problems = append(problems, fmt.Sprintf("floor font size %d above base size %d", f.Floor, f.Base))
	}
	if f.FirstAllowance <= 0 || f.SecondAllowance <= 0 || f.SingleAllowance <= 0 {
		problems = append(problems, "fit allowances must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// applyEnv overrides fields from PRICETAG_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	integer("PRICETAG_DPI", &c.DPI)
	if v, ok := lookup("PRICETAG_MODE"); ok {
		m, err := segment.ParseMode(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PRICETAG_MODE: %w", err))
		} else {
			c.Mode = m
		}
	}
	if v, ok := lookup("PRICETAG_LANGS"); ok {
		var langs []string
		for _, l := range strings.Split(v, ",") {
			if l = strings.TrimSpace(l); l != "" {
				langs = append(langs, l)
			}
		}
		c.OCR.Languages = langs
	}
	integer("PRICETAG_PSM", &c.OCR.PSM)
	boolean("PRICETAG_PREPROCESS", &c.OCR.Preprocess)
	boolean("PRICETAG_SKIP_BLANK", &c.SkipBlank)
	float("PRICETAG_BLANK_STDDEV", &c.BlankStdDev)
	integer("PRICETAG_FONT_SIZE", &c.Font.Base)
	integer("PRICETAG_FONT_FLOOR", &c.Font.Floor)
	str("PRICETAG_TEMP_DIR", &c.TempDir)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// OCRParams converts the OCR settings for the Tesseract engine.
func (c *Config) OCRParams() ocr.Params {
	opts := []ocr.Option{
		ocr.WithLanguages(c.OCR.Languages...),
		ocr.WithPSM(c.OCR.PSM),
		ocr.WithDPI(c.DPI),
		ocr.WithPreprocess(c.OCR.Preprocess),
	}
	for k, v := range c.OCR.Variables {
		opts = append(opts, ocr.WithVariable(k, v))
	}
	return ocr.NewParams(opts...)
}

// Fitter returns a text fitter using m and the configured sizes.
func (c *Config) Fitter(m layout.Measurer) *layout.Fitter {
	f := layout.NewFitter(m)
	f.BaseSize = c.Font.Base
	f.MinSize = c.Font.Floor
	f.FirstAllowance = c.Font.FirstAllowance
	f.SecondAllowance = c.Font.SecondAllowance
	f.SingleAllowance = c.Font.SingleAllowance
	return f
}

// Sheet returns the tag sheet with the configured price and SKU sizes.
func (c *Config) Sheet() render.Sheet {
	s := render.DefaultSheet()
	s.PriceSize = float64(c.Font.Price)
	s.SKUSize = float64(c.Font.SKU)
	return s
}
