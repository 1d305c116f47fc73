package spkmeans

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordIteration is called after each refinement iteration.
	RecordIteration(iteration int, quality, delta float64, duration time.Duration)

	// RecordRun is called once per Run. iterations and converged are zero
	// values when err is non-nil.
	RecordRun(k, iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, float64, float64, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, int, bool, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunsConverged       atomic.Int64
	RunTotalNanos       atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64

	mu          sync.Mutex
	lastQuality float64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ int, quality, _ float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.mu.Lock()
	b.lastQuality = quality
	b.mu.Unlock()
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_, _ int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	if converged {
		b.RunsConverged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	q := b.lastQuality
	b.mu.Unlock()

	return BasicMetricsStats{
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunsConverged:     b.RunsConverged.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		LastQuality:       q,
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount          int64
	RunErrors         int64
	RunsConverged     int64
	RunAvgNanos       int64
	IterationCount    int64
	IterationAvgNanos int64
	LastQuality       float64
}
