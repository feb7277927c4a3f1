// Package trail keeps an append-only, in-memory record of processing events
// for one session. It is fed through a zap core so every component logs the
// usual way and the operator can download the result as plain text.
package trail

import (
	"bytes"
	"io"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Trail is safe for concurrent use.
type Trail struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	lines int
}

// New returns an empty trail.
func New() *Trail { return &Trail{} }

// Write appends p. It implements zapcore.WriteSyncer together with Sync.
func (t *Trail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines += bytes.Count(p, []byte{'\n'})
	return t.buf.Write(p)
}

// Sync is a no-op.
func (t *Trail) Sync() error { return nil }

// Len reports the number of complete lines recorded.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lines
}

// Text returns a copy of the trail contents.
func (t *Trail) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

func (t *Trail) String() string { return t.Text() }

// WriteTo writes the trail contents to w.
func (t *Trail) WriteTo(w io.Writer) (int64, error) {
	t.mu.Lock()
	data := append([]byte(nil), t.buf.Bytes()...)
	t.mu.Unlock()
	n, err := w.Write(data)
	return int64(n), err
}

// Core returns a zap core that records entries at or above level as
// human readable lines: time, level, message, then fields.
func (t *Trail) Core(level zapcore.LevelEnabler) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), t, level)
}
