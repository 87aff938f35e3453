package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuild(t *testing.T) {
	l, _, err := build("", "")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel), "development logs debug")

	l, _, err = build("production", "")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l, lvl, err := build("production", "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	lvl.SetLevel(zapcore.InfoLevel)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel), "the level stays adjustable")

	_, _, err = build("", "loud")
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	l := GetLogger()
	assert.Same(t, l, GetLogger())

	require.NoError(t, SetLevel("error"))
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))
	require.NoError(t, SetLevel("debug"))
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, SetLevel("loud"))
}
