package log

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_LevelParsing(t *testing.T) {
	logger := Setup("debug")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = Setup("error")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))

	// Unknown levels fall back to info.
	logger = Setup("verbose")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestWithModule(t *testing.T) {
	Setup("info")

	assert.NotNil(t, WithModule("registry"))
}
