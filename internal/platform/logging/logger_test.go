package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID_Roundtrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc12345")
	id, ok := RequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc12345", id)
}

func TestRequestID_Missing(t *testing.T) {
	id, ok := RequestID(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)

	// An empty ID counts as absent.
	id, ok = RequestID(WithRequestID(context.Background(), ""))
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(&requestIDHandler{inner: inner})

	ctx := WithRequestID(context.Background(), "req1234")
	logger.InfoContext(ctx, "frame published", "session_id", "s1")

	output := buf.String()
	assert.Contains(t, output, "request_id=req1234")
	assert.Contains(t, output, "session_id=s1")
	assert.Contains(t, output, "frame published")
}

func TestHandler_NoRequestID_WhenMissing(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(&requestIDHandler{inner: inner})

	logger.InfoContext(context.Background(), "no id here")
	assert.NotContains(t, buf.String(), "request_id")
}
