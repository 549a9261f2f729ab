package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.Info("fetch complete", "endpoint", "/status")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "fetch complete", record["msg"])
	assert.Equal(t, "/status", record["endpoint"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestParseLevelAcceptsBackendSpelling(t *testing.T) {
	var buf bytes.Buffer
	// The backend uses "warning"; accept it alongside slog's "warn".
	logger := New(Config{Level: "warning", Format: "text", Output: &buf})
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSanitizerRedactsRegisteredKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "text", Output: &buf})
	logger.RedactKey("super-secret-key-123")

	logger.Info("request failed", "detail", "auth header was super-secret-key-123")

	out := buf.String()
	assert.NotContains(t, out, "super-secret-key-123")
	assert.Contains(t, out, "[REDACTED]")
}

func TestSanitizerRedactsHeaderDumps(t *testing.T) {
	s := NewSanitizer()
	out := s.Sanitize(`headers: X-API-Key: deadbeefcafe1234`)
	assert.NotContains(t, out, "deadbeefcafe1234")
}

func TestSanitizerIgnoresShortLiterals(t *testing.T) {
	s := NewSanitizer()
	s.AddLiteral("ok")
	assert.Equal(t, "ok then", s.Sanitize("ok then"))
}

func TestWithHelpersCarrySanitizer(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "text", Output: &buf})
	logger.RedactKey("carried-secret-value")

	derived := logger.WithPage("settings").WithEndpoint("/settings")
	derived.Info("saving", "key", "carried-secret-value")

	out := buf.String()
	assert.Contains(t, out, "page=settings")
	assert.Contains(t, out, "endpoint=/settings")
	assert.NotContains(t, out, "carried-secret-value")
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must accept the full API surface.
	logger.WithProfile("p1").Info("noop")
}

func TestPrettyHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, slog.LevelInfo))

	logger.Info("line", "k", "v")

	out := buf.String()
	assert.True(t, strings.Contains(out, "INF"))
	assert.True(t, strings.Contains(out, "k=v"))
}
