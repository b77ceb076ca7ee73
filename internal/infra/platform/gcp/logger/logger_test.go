package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CloudLoggingKeys(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Warn("song store slow", slog.Int("ms", 120))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARNING", entry["severity"])
	assert.Equal(t, "song store slow", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "logging.googleapis.com/sourceLocation")
	assert.EqualValues(t, 120, entry["ms"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelWarn).Info("dropped")
	assert.Zero(t, buf.Len())
}
