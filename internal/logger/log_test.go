package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewTeesExtraCores(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	log, err := New(false, core)
	require.NoError(t, err)
	defer Close(log)

	log.Info("page rendered", zap.Int("page", 1))
	log.Debug("suppressed by main core but seen by observer")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "page rendered", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["page"])
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	log, err := New(true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewProduction(t *testing.T) {
	t.Setenv(EnvVar, "production")
	log, err := New(false)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
