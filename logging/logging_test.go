package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"interview-scheduler/logging"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestContextLogger(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		logger := slog.New(slog.DiscardHandler)
		ctx := logging.ContextWithLogger(context.Background(), logger)
		assert.Same(t, logger, logging.FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), logging.FromContext(context.Background()))
	})

	t.Run("nil logger leaves context untouched", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, logging.ContextWithLogger(ctx, nil))
	})
}
