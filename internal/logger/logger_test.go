package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel(slog.LevelWarn))

	log.Info("hidden")
	log.Warn("history write failed", "path", "/tmp/a.zip")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "history write failed")
	assert.Contains(t, out, "path=/tmp/a.zip")
}

func TestNewJSONWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithFormat(FormatJSON)).With("component", "app")

	log.Info("opened", "entries", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "opened", record["msg"])
	assert.Equal(t, "app", record["component"])
	assert.EqualValues(t, 3, record["entries"])
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Error("dropped")
		log.With("k", "v").Debug("dropped too")
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
