// Package prometheus exports clustering metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	collector := promspk.NewCollector(reg)
//	res, err := spkmeans.Run(ctx, m, k, spkmeans.WithMetricsCollector(collector))
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/spkmeans"
)

const namespace = "spkmeans"

// Run outcomes used as the status label of RunsTotal.
const (
	StatusConverged = "converged"
	StatusCapped    = "capped"
	StatusError     = "error"
)

// Collector implements spkmeans.MetricsCollector on Prometheus metrics.
type Collector struct {
	// RunsTotal counts runs by status.
	RunsTotal *prometheus.CounterVec
	// RunDuration observes run wall time.
	RunDuration prometheus.Histogram
	// RunIterations observes how many iterations a successful run took.
	RunIterations prometheus.Histogram
	// IterationsTotal counts refinement iterations.
	IterationsTotal prometheus.Counter
	// IterationDuration observes iteration wall time.
	IterationDuration prometheus.Histogram
	// Quality is the total quality after the latest iteration.
	Quality prometheus.Gauge
	// QualityDelta is the quality change of the latest iteration.
	QualityDelta prometheus.Gauge
	// K is the partition count of the latest run.
	K prometheus.Gauge
}

var _ spkmeans.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total clustering runs",
			},
			[]string{"status"}, // converged/capped/error
		),
		RunDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Clustering run latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RunIterations: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_iterations",
				Help:      "Refinement iterations per successful run",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		IterationsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "iterations_total",
				Help:      "Total refinement iterations",
			},
		),
		IterationDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "iteration_duration_seconds",
				Help:      "Refinement iteration latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		Quality: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "quality",
				Help:      "Total partition quality after the latest iteration",
			},
		),
		QualityDelta: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "quality_delta",
				Help:      "Quality change of the latest iteration",
			},
		),
		K: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "partitions",
				Help:      "Partition count of the latest run",
			},
		),
	}
}

// RecordIteration implements spkmeans.MetricsCollector.
func (c *Collector) RecordIteration(_ int, quality, delta float64, duration time.Duration) {
	c.IterationsTotal.Inc()
	c.IterationDuration.Observe(duration.Seconds())
	c.Quality.Set(quality)
	c.QualityDelta.Set(delta)
}

// RecordRun implements spkmeans.MetricsCollector.
func (c *Collector) RecordRun(k, iterations int, converged bool, duration time.Duration, err error) {
	c.RunDuration.Observe(duration.Seconds())
	c.K.Set(float64(k))

	switch {
	case err != nil:
		c.RunsTotal.WithLabelValues(StatusError).Inc()
		return
	case converged:
		c.RunsTotal.WithLabelValues(StatusConverged).Inc()
	default:
		c.RunsTotal.WithLabelValues(StatusCapped).Inc()
	}
	c.RunIterations.Observe(float64(iterations))
}
