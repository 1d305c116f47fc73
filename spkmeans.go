package spkmeans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/spkmeans/internal/engine"
	"github.com/hupe1980/spkmeans/internal/kmeans"
	"github.com/hupe1980/spkmeans/matrix"
)

// Result is the outcome of a clustering run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// K is the number of partitions.
	K int
	// Partitions holds the member document indices of each partition in
	// ascending order. A partition can only be empty under KeepPreviousConcept.
	Partitions [][]int
	// Concepts holds the unit-length concept vector of each partition.
	Concepts [][]float64
	// Quality is the final total quality.
	Quality float64
	// Iterations is the number of refinement iterations performed.
	Iterations int
	// Converged is false when the iteration limit stopped the loop.
	Converged bool
	// Regressed is true when the last iteration lowered the quality.
	Regressed bool
	// QualityHistory holds the baseline quality followed by the quality after
	// every iteration.
	QualityHistory []float64
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Sizes returns the member count of every partition.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Partitions))
	for i, p := range r.Partitions {
		sizes[i] = len(p)
	}
	return sizes
}

// Labels returns, for every document, the index of its partition.
func (r *Result) Labels() []int {
	n := 0
	for _, p := range r.Partitions {
		n += len(p)
	}
	labels := make([]int, n)
	for i, p := range r.Partitions {
		for _, doc := range p {
			labels[doc] = i
		}
	}
	return labels
}

// Run clusters the documents of m into k partitions.
//
// The rows of m are normalized to unit length in place. Configuration and
// input errors are reported before any clustering work starts.
func Run(ctx context.Context, m *matrix.Dense, k int, optFns ...Option) (*Result, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	runID := uuid.NewString()
	log := opts.logger.WithRunID(runID).WithK(k)
	if m != nil {
		log = log.WithDimensions(m.Docs(), m.Words())
	}

	cfg := engine.Config{
		K:             k,
		Threshold:     opts.threshold,
		MaxIterations: opts.maxIterations,
		Stop:          opts.stop,
		Empty:         opts.empty,
		Strict:        opts.strict,
		Workers:       opts.workers,
		Logger:        log.Logger,
		Observer:      &observer{ctx: ctx, log: log, metrics: opts.metricsCollector},
	}

	eng := engine.New(cfg)
	log.LogRunStart(ctx, cfg.Threshold, cfg.MaxIterations, eng.Workers())

	start := time.Now()
	out, err := eng.Run(ctx, m)
	duration := time.Since(start)

	if err != nil {
		opts.metricsCollector.RecordRun(k, 0, false, duration, err)
		log.LogRun(ctx, nil, duration, err)
		return nil, err
	}

	res := newResult(runID, out, duration)
	opts.metricsCollector.RecordRun(k, res.Iterations, res.Converged, duration, nil)
	log.LogRun(ctx, res, duration, nil)
	return res, nil
}

func newResult(runID string, out *engine.Outcome, duration time.Duration) *Result {
	st := out.State
	parts := make([][]int, len(st.Partitions))
	for i, p := range st.Partitions {
		parts[i] = p.Members()
	}
	return &Result{
		RunID:          runID,
		K:              st.K,
		Partitions:     parts,
		Concepts:       st.Concepts,
		Quality:        st.Quality,
		Iterations:     st.Iteration,
		Converged:      out.Converged,
		Regressed:      out.Regressed,
		QualityHistory: out.History,
		Duration:       duration,
	}
}

// observer forwards engine iterations to the logger and metrics collector.
type observer struct {
	ctx     context.Context
	log     *Logger
	metrics MetricsCollector
}

func (o *observer) OnIteration(s engine.IterationStats) {
	o.log.LogIteration(o.ctx, s.Iteration, s.Quality, s.Delta)
	o.metrics.RecordIteration(s.Iteration, s.Quality, s.Delta, s.Duration)
}

// InitialPartitions returns the contiguous initial partitioning Run starts
// from: with split = docs/k, partition i < k-1 holds [i*split, (i+1)*split)
// and the last partition holds [(k-1)*split, docs).
func InitialPartitions(docs, k int) ([][]int, error) {
	if k < 1 || k > docs {
		return nil, &ConfigError{K: k, Docs: docs}
	}
	parts := kmeans.InitialPartitions(docs, k)
	out := make([][]int, k)
	for i, p := range parts {
		out[i] = p.Members()
	}
	return out, nil
}
