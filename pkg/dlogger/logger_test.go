package dlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetLogger(t *testing.T) {
	for level, enabled := range map[string]zapcore.Level{
		LogLevelDebug: zapcore.DebugLevel,
		LogLevelInfo:  zapcore.InfoLevel,
		LogLevelWarn:  zapcore.WarnLevel,
		LogLevelError: zapcore.ErrorLevel,
	} {
		l, err := GetLogger(level)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(enabled))
		assert.False(t, l.Core().Enabled(enabled-1))
	}

	l := MustGetLogger(LogLevelNone)
	assert.False(t, l.Core().Enabled(zapcore.FatalLevel))

	_, err := GetLogger("chatty")
	require.Error(t, err)
	assert.Panics(t, func() { _ = MustGetLogger("chatty") })
}
