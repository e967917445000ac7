package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {

	var buf bytes.Buffer
	logger := NewText(&buf, slog.LevelInfo).With("backend", "zp")

	ctx := context.Background()
	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "search done", "index", 2)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "search done")
	require.Contains(t, out, "backend=zp")
	require.Contains(t, out, "index=2")

	Discard().Error(ctx, "dropped")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}
