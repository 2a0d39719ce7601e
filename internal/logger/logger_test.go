package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	l, err := New(Options{Level: "warn", Stderr: true})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_EnvWins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	l, err := New(Options{Level: "error", Stderr: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_Development(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	l, err := New(Options{Development: true, Stderr: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
