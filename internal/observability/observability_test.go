package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(config.LoggerConfig{Level: "info", Format: "json"}, &buf)

		logger.Debug("hidden")
		logger.Info("dataset loaded", "records", 5)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "dataset loaded", entry["msg"])
		assert.EqualValues(t, 5, entry["records"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(config.LoggerConfig{Level: "warn", Format: "text"}, &buf)

		logger.Info("hidden")
		logger.Warn("slow request")

		assert.Contains(t, buf.String(), "msg=\"slow request\"")
		assert.NotContains(t, buf.String(), "hidden")
	})
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, "req-42", GetRequestID(WithRequestID(ctx, "req-42")))
}

func TestSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggerConfig{Level: "debug", Format: "json"}, &buf)

	ctx, parent := StartSpan(context.Background(), "GET /api/report")
	assert.Same(t, parent, GetSpan(ctx))

	_, child := StartSpan(ctx, "report.filter")
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)

	child.SetTag("rows_out", "3")
	child.SetError(errors.New("boom"))
	child.Finish(logger)

	assert.Equal(t, SpanStatusError, child.Status)
	assert.Contains(t, buf.String(), `"operation":"report.filter"`)
	assert.Contains(t, buf.String(), `"rows_out":"3"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)

	assert.Nil(t, GetSpan(context.Background()))
	parent.Finish(nil)
	assert.GreaterOrEqual(t, int64(parent.Duration), int64(0))
}
