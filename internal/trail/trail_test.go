package trail

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTrailRecordsLogEntries(t *testing.T) {
	tr := New()
	log := zap.New(tr.Core(zapcore.DebugLevel))

	log.Info("processing page", zap.Int("page", 1))
	log.Warn("region failed", zap.Int("region", 3), zap.String("reason", "empty text"))

	text := tr.Text()
	assert.Equal(t, 2, tr.Len())
	assert.Contains(t, text, "INFO processing page")
	assert.Contains(t, text, `"page": 1`)
	assert.Contains(t, text, "WARN region failed")
	assert.Contains(t, text, "empty text")
}

func TestTrailRespectsLevel(t *testing.T) {
	tr := New()
	log := zap.New(tr.Core(zapcore.InfoLevel))
	log.Debug("hidden")
	assert.Empty(t, tr.String())
}

func TestTrailAppendOnly(t *testing.T) {
	tr := New()
	_, err := tr.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = tr.Write([]byte("second\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tr.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("first\nsecond\n")), n)
	assert.Equal(t, []string{"first", "second"}, strings.Fields(buf.String()))
}
