// Package timing measures wall-clock sections of a computation and reports them
// through a logging.Logger.
package timing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/tuneinsight/liphe/logging"
)

// Summary aggregates the durations recorded for a section, in milliseconds.
type Summary struct {
	Count  int
	Total  float64
	Mean   float64
	Median float64
	StdDev float64
	Max    float64
}

// Timer records the durations of named sections. It is safe for concurrent use.
type Timer struct {
	logger logging.Logger

	mu       sync.Mutex
	sections map[string][]float64
}

// NewTimer returns a new [Timer]. A nil logger discards the records.
func NewTimer(logger logging.Logger) *Timer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Timer{logger: logger, sections: map[string][]float64{}}
}

// Start starts timing the section name and returns the function stopping it.
// The stop function logs and records the elapsed time, and returns it.
//
//	stop := timer.Start(ctx, "first-non-zero")
//	defer stop()
func (t *Timer) Start(ctx context.Context, name string) (stop func() time.Duration) {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		t.Record(name, elapsed)
		t.logger.Debug(ctx, "section done", "section", name, "elapsed", elapsed)
		return elapsed
	}
}

// Time runs f as the section name.
func (t *Timer) Time(ctx context.Context, name string, f func() error) error {
	stop := t.Start(ctx, name)
	defer stop()
	return f()
}

// Record adds a duration to the section name.
func (t *Timer) Record(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sections[name] = append(t.sections[name], float64(d.Nanoseconds())/1e6)
}

// Sections returns the names of the recorded sections, sorted.
func (t *Timer) Sections() (names []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name := range t.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Summary returns the statistics of the section name. ok is false if nothing was recorded.
func (t *Timer) Summary(name string) (s Summary, ok bool) {

	t.mu.Lock()
	values := append([]float64(nil), t.sections[name]...)
	t.mu.Unlock()

	if len(values) == 0 {
		return s, false
	}

	data := stats.Float64Data(values)

	s.Count = len(values)
	s.Total, _ = data.Sum()
	s.Mean, _ = data.Mean()
	s.Median, _ = data.Median()
	s.StdDev, _ = data.StandardDeviation()
	s.Max, _ = data.Max()

	return s, true
}

// Report logs the summary of every section at the info level.
func (t *Timer) Report(ctx context.Context) {
	for _, name := range t.Sections() {
		s, _ := t.Summary(name)
		t.logger.Info(ctx, "timing",
			"section", name,
			"count", s.Count,
			"mean_ms", s.Mean,
			"median_ms", s.Median,
			"stddev_ms", s.StdDev,
			"max_ms", s.Max,
		)
	}
}
