package timing

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/liphe/logging"
)

func TestTimer(t *testing.T) {

	var buf bytes.Buffer
	timer := NewTimer(logging.NewText(&buf, slog.LevelInfo))

	for _, d := range []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond} {
		timer.Record("eval", d)
	}

	s, ok := timer.Summary("eval")
	require.True(t, ok)
	require.Equal(t, 3, s.Count)
	require.InDelta(t, 6, s.Total, 1e-9)
	require.InDelta(t, 2, s.Mean, 1e-9)
	require.InDelta(t, 2, s.Median, 1e-9)
	require.InDelta(t, 3, s.Max, 1e-9)

	_, ok = timer.Summary("missing")
	require.False(t, ok)

	errBoom := errors.New("boom")
	require.ErrorIs(t, timer.Time(context.Background(), "keygen", func() error { return errBoom }), errBoom)
	require.Equal(t, []string{"eval", "keygen"}, timer.Sections())

	timer.Report(context.Background())
	require.Contains(t, buf.String(), "section=eval")
	require.Contains(t, buf.String(), "section=keygen")
}
