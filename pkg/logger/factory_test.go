package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tickjwt/pkg/logger"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to json at info", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("scheduler started", logger.Component("scheduler"))
		entry := decodeEntry(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "scheduler started", entry["msg"])
		assert.Equal(t, "scheduler", entry["component"])
	})

	t.Run("text formatter", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())

		log.Info("token rejected", logger.Algorithm("RS256"))
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "alg=RS256")
	})

	t.Run("last formatter wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())

		log.Info("msg")
		assert.Equal(t, "msg", decodeEntry(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("command", "decode")))

		log.Info("msg")
		assert.Equal(t, "decode", decodeEntry(t, buf)["command"])
	})

	t.Run("nil output is ignored", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, logger.New(logger.WithOutput(nil)))
	})
}

func TestWithLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelError))

	log.Warn("hidden")
	assert.Zero(t, buf.Len())
	log.Error("shown")
	assert.Equal(t, "ERROR", decodeEntry(t, buf)["level"])
}

func TestWithLevelName(t *testing.T) {
	t.Parallel()

	t.Run("parses level", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("hidden")
		assert.Empty(t, buf.String())
		log.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("ignores unknown names", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("loud"))
		log.Info("kept default")
		assert.Contains(t, buf.String(), "kept default")
	})

	t.Run("applies after environment defaults", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithEnvironment("production", "tickjwt"),
			logger.WithLevelName("debug"),
		)
		log.Debug("verbose")
		assert.Contains(t, buf.String(), "verbose")
	})
}

func TestEnvironmentShortcuts(t *testing.T) {
	t.Parallel()

	for name, opt := range map[string]logger.Option{
		"development": logger.WithDevelopment("tickjwt"),
		"staging":     logger.WithStaging("tickjwt"),
		"production":  logger.WithProduction("tickjwt"),
	} {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), opt, logger.WithJSONFormatter())
		log.Info("msg")
		assert.Equal(t, name, decodeEntry(t, buf)["env"], name)
	}

	buf := &bytes.Buffer{}
	logger.New(logger.WithOutput(buf), logger.WithProduction("")).Debug("hidden")
	assert.Zero(t, buf.Len(), "empty service keeps defaults")
}
