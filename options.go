package spkmeans

import (
	"log/slog"

	"github.com/hupe1980/spkmeans/internal/engine"
)

// StopPolicy decides how the loop treats a quality delta at or below the
// convergence threshold.
type StopPolicy = engine.StopPolicy

const (
	// StopOnNonImprovement stops whenever the delta is at or below the
	// threshold, including negative deltas. This is the default.
	StopOnNonImprovement = engine.StopOnNonImprovement
	// FailOnRegression returns a *QualityRegressionError for a negative delta.
	FailOnRegression = engine.FailOnRegression
)

// EmptyPolicy decides what happens when a partition loses all its members.
type EmptyPolicy = engine.EmptyPolicy

const (
	// RejectEmpty aborts the run with a *DegenerateClusterError. This is the default.
	RejectEmpty = engine.RejectEmpty
	// KeepPreviousConcept keeps the partition's previous concept vector.
	KeepPreviousConcept = engine.KeepPreviousConcept
)

const (
	// DefaultConvergenceThreshold is the default threshold on the quality delta.
	DefaultConvergenceThreshold = engine.DefaultThreshold

	// Unbounded disables the iteration limit.
	Unbounded = engine.Unbounded
)

type options struct {
	threshold        float64
	maxIterations    int
	stop             StopPolicy
	empty            EmptyPolicy
	strict           bool
	workers          int
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		threshold:        DefaultConvergenceThreshold,
		maxIterations:    Unbounded,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a clustering run.
type Option func(*options)

// WithConvergenceThreshold sets the threshold on the quality delta below
// which the loop stops. Defaults to 0.001.
func WithConvergenceThreshold(t float64) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithMaxIterations caps the number of refinement iterations.
//
// 0 returns the initial partitioning with its baseline quality. A negative
// value (Unbounded) removes the cap, which is the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithStopPolicy selects the convergence policy.
func WithStopPolicy(p StopPolicy) Option {
	return func(o *options) {
		o.stop = p
	}
}

// WithEmptyPolicy selects the empty-partition policy.
func WithEmptyPolicy(p EmptyPolicy) Option {
	return func(o *options) {
		o.empty = p
	}
}

// WithStrictConvergence makes Run fail with a *NonConvergenceError when the
// iteration limit is reached before convergence. Without it the capped result
// is returned with Converged set to false.
func WithStrictConvergence() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithWorkers bounds the goroutines used per stage.
// Values <= 0 use runtime.GOMAXPROCS(0), which is the default.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := spkmeans.NewJSONLogger(slog.LevelInfo)
//	res, _ := spkmeans.Run(ctx, m, 8, spkmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &spkmeans.BasicMetricsCollector{}
//	res, _ := spkmeans.Run(ctx, m, 8, spkmeans.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
