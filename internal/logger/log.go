package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar selects the logger flavour; "production" gives JSON output.
const EnvVar = "PRICETAG_ENV"

// New builds the process logger. Production mode is selected by
// PRICETAG_ENV=production; verbose lowers the level to debug. Extra cores
// (e.g. a diagnostic trail) receive every entry the main logger sees.
func New(verbose bool, extra ...zapcore.Core) (*zap.Logger, error) {
	var cfg zap.Config
	if os.Getenv(EnvVar) == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	// Logs go to stderr so stdout stays clean for command output.
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return logger, nil
	}
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(append([]zapcore.Core{c}, extra...)...)
	})), nil
}

// Close flushes buffered entries. Sync errors on terminals are ignored.
func Close(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
