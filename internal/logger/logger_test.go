package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Production(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false, "")

	slog.Debug("hidden")
	slog.Info("goal created", "goal_id", "g1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "goal created", record["msg"])
	assert.Equal(t, "g1", record["goal_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestInit_Development(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true, "")

	slog.Debug("verbose", "key", "value")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "key=value")
}

func TestInitQuiet(t *testing.T) {
	var buf bytes.Buffer
	InitQuiet(&buf)

	slog.Info("skipped")
	slog.Warn("kept")

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "kept")
}

func TestInit_InvalidSentryDSN(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true, "not-a-valid-dsn")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "sentry disabled")

	buf.Reset()
	slog.Info("still logging")
	assert.Contains(t, buf.String(), "still logging")
}
