package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricetag/internal/segment"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, segment.ModeQuarters, cfg.Mode)
	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, 9, cfg.Font.Floor)
}

func TestLoadFileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dpi": 200, "mode": "halves", "font": {"base": 16, "floor": 10, "price": 20, "sku": 8, "first_allowance": 1.5, "second_allowance": 1.2, "single_allowance": 1}}`), 0o644))

	t.Setenv("PRICETAG_DPI", "150")
	t.Setenv("PRICETAG_LANGS", "eng, fra")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.DPI)
	assert.Equal(t, segment.ModeHalves, cfg.Mode)
	assert.Equal(t, 16, cfg.Font.Base)
	assert.Equal(t, []string{"eng", "fra"}, cfg.OCR.Languages)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 6, cfg.OCR.PSM)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PRICETAG_DPI", "lots")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv("PRICETAG_DPI", "300")
	t.Setenv("PRICETAG_MODE", "thirds")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dpi", func(c *Config) { c.DPI = 0 }},
		{"floor above base", func(c *Config) { c.Font.Floor = 20 }},
		{"no languages", func(c *Config) { c.OCR.Languages = nil }},
		{"bad psm", func(c *Config) { c.OCR.PSM = 42 }},
		{"zero allowance", func(c *Config) { c.Font.SecondAllowance = 0 }},
		{"unknown mode", func(c *Config) { c.Mode = segment.Mode(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	cfg := Default()
	cfg.Mode = segment.ModeWhole
	cfg.BlankStdDev = 4.5
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PRICETAG_TEST_DOTENV=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PRICETAG_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "absent.env")))
	assert.Equal(t, "from-file", os.Getenv("PRICETAG_TEST_DOTENV"))
}

func TestDerivedSettings(t *testing.T) {
	cfg := Default()
	cfg.Font.Base = 12

	p := cfg.OCRParams()
	assert.Equal(t, 300, p.DPI)
	assert.Equal(t, 6, p.PSMMode)
	assert.Empty(t, p.Variables)

	cfg.OCR.Variables = map[string]string{"tessedit_char_whitelist": "0123456789$.,"}
	p = cfg.OCRParams()
	assert.Equal(t, "0123456789$.,", p.Variables["tessedit_char_whitelist"])

	f := cfg.Fitter(nil)
	assert.Equal(t, 12, f.BaseSize)
	assert.Equal(t, 9, f.MinSize)

	assert.Equal(t, 22.0, cfg.Sheet().PriceSize)
}
