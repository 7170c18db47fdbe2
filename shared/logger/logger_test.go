package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelOf(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, levelOf(in), in)
	}
}

func TestNew(t *testing.T) {
	t.Run("json output respects level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, "warn", true)
		l.Info("dropped")
		l.Warn("kept", "board", 1)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "kept", rec["msg"])
		assert.EqualValues(t, 1, rec["board"])
	})

	t.Run("text output", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "debug", false).Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}
