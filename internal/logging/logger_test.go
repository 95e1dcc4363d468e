package logging

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelWarn, Output: &buf})
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, nil, "warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Info(context.Background(), "hello", "slug", "home")

	assert.Contains(t, buf.String(), `"slug":"home"`)
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelInfo, Output: &buf}).WithComponent("composer")

	logger.Info(context.Background(), "composed")

	assert.Contains(t, buf.String(), "composer")
}

func TestLogger_ErrorFieldAttached(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelInfo, Output: &buf})

	logger.Error(context.Background(), fmt.Errorf("boom"), "failed")

	assert.Contains(t, buf.String(), "boom")
}

func TestLogger_WithFieldsPersist(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelInfo, Output: &buf}).With("request_id", "r1")

	logger.Info(context.Background(), "first")
	logger.Info(context.Background(), "second")

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("r1")))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelInfo, ParseLevel("anything"))
}

func TestSanitizeForLog(t *testing.T) {
	assert.Equal(t, "[REDACTED]", SanitizeForLog("my secret value"))
	assert.Equal(t, "plain output", SanitizeForLog("plain output"))
}
