// Package cli implements the pricetag command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pricetag/internal/app"
	"pricetag/internal/config"
	"pricetag/internal/extract"
	"pricetag/internal/logger"
	"pricetag/internal/ocr"
	"pricetag/internal/project"
	"pricetag/internal/raster"
	"pricetag/internal/render"
	"pricetag/internal/trail"
)

// ExtractorFactory builds the upload pipeline for a configuration. The
// returned close function releases engine resources.
type ExtractorFactory func(cfg *config.Config, log *zap.Logger) (app.Extractor, func(), error)

// options is shared by every subcommand of one command tree.
type options struct {
	sessionPath string
	configPath  string
	verbose     bool

	cfg   *config.Config
	log   *zap.Logger
	trail *trail.Trail

	newExtractor ExtractorFactory
}

// NewRootCmd builds the command tree. A nil factory selects Tesseract OCR
// over MuPDF rasterization.
func NewRootCmd(factory ExtractorFactory) *cobra.Command {
	o := &options{newExtractor: factory}
	if o.newExtractor == nil {
		o.newExtractor = tesseractExtractor
	}

	root := &cobra.Command{
		Use:   "pricetag",
		Short: "Turn catalog PDFs into printable price tags",
		Long: `pricetag reads a scanned product catalog PDF, extracts product records
(name, price, SKU) with OCR, lets you review and correct them, and prints
4x1.5in price tags with Code128 barcodes onto letter paper.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.init,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Close(o.log) },
	}
	root.PersistentFlags().StringVarP(&o.sessionPath, "session", "s", "tags.json", "Session file holding the reviewed records")
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "Configuration file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newScanCmd(o),
		newListCmd(o),
		newAddCmd(o),
		newEditCmd(o),
		newRemoveCmd(o),
		newSelectCmd(o),
		newPrintCmd(o),
		newFitCmd(o),
		newExportCmd(o),
		newImportCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) init(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	o.trail = trail.New()
	log, err := logger.New(o.verbose, o.trail.Core(zapcore.DebugLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.log = log
	return nil
}

// openSession loads the session file into a fresh State.
func (o *options) openSession() (*app.State, *project.File, error) {
	f, err := project.LoadOrNew(o.sessionPath)
	if err != nil {
		return nil, nil, err
	}
	s := app.NewState(nil, o.renderer(), o.log)
	s.LoadProject(f)
	return s, f, nil
}

func (o *options) saveSession(s *app.State, f *project.File) error {
	if !s.Modified {
		return nil
	}
	return s.SaveProject(f, o.sessionPath)
}

func (o *options) renderer() *render.Renderer {
	r := render.NewRenderer(o.log)
	r.Fitter = o.cfg.Fitter(r.Fitter.Measurer)
	r.Sheet = o.cfg.Sheet()
	return r
}

func tesseractExtractor(cfg *config.Config, log *zap.Logger) (app.Extractor, func(), error) {
	engine, err := ocr.NewTesseract(cfg.OCRParams())
	if err != nil {
		return nil, nil, err
	}
	log.Debug("ocr engine ready", zap.String("engine", engine.Name()), zap.String("version", engine.Version()))

	ex := &extract.Extractor{
		Rasterizer:  raster.New(float64(cfg.DPI)),
		OCR:         engine,
		Mode:        cfg.Mode,
		SkipBlank:   cfg.SkipBlank,
		BlankStdDev: cfg.BlankStdDev,
		TempDir:     cfg.TempDir,
		Logger:      log,
	}
	return ex, func() { engine.Close() }, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
