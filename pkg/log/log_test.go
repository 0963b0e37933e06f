package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/insurevn/tetadvisor/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerSetup(t *testing.T) {
	var buf bytes.Buffer

	// Test text format
	textCfg := Config{
		Level:  InfoLevel,
		Format: TextFormat,
	}
	logger := SetupWithOutput(textCfg, &buf)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	output := buf.String()

	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")

	// Test JSON format
	buf.Reset()
	jsonCfg := Config{
		Level:  InfoLevel,
		Format: JSONFormat,
	}
	logger = SetupWithOutput(jsonCfg, &buf)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	output = buf.String()

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(output), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	cfg := Config{
		Level:  DebugLevel,
		Format: TextFormat,
	}
	logger := SetupWithOutput(cfg, &buf)
	require.NotNil(t, logger)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")

	// Info level filters debug out
	buf.Reset()
	cfg.Level = InfoLevel
	logger = SetupWithOutput(cfg, &buf)

	logger.Debug("debug message")
	logger.Info("info message")

	output = buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Config{
		Level:  DebugLevel,
		Format: TextFormat,
	}
	logger := SetupWithOutput(cfg, &buf)

	ctx := WithLogger(context.Background(), logger)

	loggerFromCtx := FromContext(ctx)
	loggerFromCtx.Info("context logger test")

	output := buf.String()
	assert.Contains(t, output, "context logger test")

	// Session fields are attached to every line
	buf.Reset()
	sessionCtx := session.NewContext("test-session", "test-customer")
	loggerWithSession := WithSessionContext(logger, sessionCtx)

	loggerWithSession.Info("session context test")

	output = buf.String()
	assert.Contains(t, output, "session context test")
	assert.Contains(t, output, "session_id=test-session")
	assert.Contains(t, output, "customer_id=test-customer")
}

func TestContextHelperFunctions(t *testing.T) {
	var buf bytes.Buffer

	cfg := Config{
		Level:  DebugLevel,
		Format: TextFormat,
	}
	logger := SetupWithOutput(cfg, &buf)

	ctx := WithLogger(context.Background(), logger)

	DebugContext(ctx, "debug context")
	output := buf.String()
	assert.Contains(t, output, "debug context")

	buf.Reset()
	InfoContext(ctx, "info context")
	output = buf.String()
	assert.Contains(t, output, "info context")

	buf.Reset()
	WarnContext(ctx, "warn context")
	output = buf.String()
	assert.Contains(t, output, "warn context")

	buf.Reset()
	ErrorContext(ctx, "error context")
	output = buf.String()
	assert.Contains(t, output, "error context")
}
