package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/hupe1980/spkmeans/internal/kmeans"
	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/vecmath"
)

type noopObserver struct{}

func (noopObserver) OnIteration(IterationStats) {}

// Engine runs spherical k-means over a document matrix.
// An Engine holds no state between runs and may be reused sequentially.
type Engine struct {
	cfg     Config
	workers int
	log     *slog.Logger
	obs     Observer
	phase   Phase

	score func(*matrix.Dense, []kmeans.Partition, [][]float64) float64
}

// New creates an engine with the given configuration.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	obs := cfg.Observer
	if obs == nil {
		obs = noopObserver{}
	}
	return &Engine{
		cfg:     cfg,
		workers: cfg.workers(),
		log:     log,
		obs:     obs,
		score:   kmeans.TotalQuality,
	}
}

// Workers returns the number of goroutines used per stage.
func (e *Engine) Workers() int {
	return e.workers
}

// Phase returns the phase the last run reached.
func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) enter(ctx context.Context, p Phase, iteration int) {
	e.phase = p
	e.log.DebugContext(ctx, "phase", "phase", p.String(), "iteration", iteration)
}

// Validate checks the configuration against m without touching it.
func (e *Engine) Validate(m *matrix.Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	if e.cfg.K < 1 || e.cfg.K > m.Docs() {
		return &ConfigError{K: e.cfg.K, Docs: m.Docs()}
	}
	return nil
}

// Preprocess normalizes every document of m to unit length in place.
// If any document has a zero or non-finite norm, m is left unchanged and a
// *ZeroDocumentError or *NonFiniteDocumentError names the first such document.
func Preprocess(m *matrix.Dense) error {
	for i := range m.Docs() {
		n := vecmath.Norm(m.Row(i))
		switch {
		case n == 0:
			return &ZeroDocumentError{Doc: i}
		case math.IsNaN(n) || math.IsInf(n, 0):
			return &NonFiniteDocumentError{Doc: i}
		}
	}
	for i := range m.Docs() {
		vecmath.Normalize(m.Row(i))
	}
	return nil
}

// Run clusters m. The rows of m are normalized in place before clustering.
func (e *Engine) Run(ctx context.Context, m *matrix.Dense) (*Outcome, error) {
	e.phase = PhaseInitializing

	if err := e.Validate(m); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &IterationError{Iteration: 0, Err: err}
	}
	if err := Preprocess(m); err != nil {
		return nil, err
	}

	k := e.cfg.K

	parts := kmeans.InitialPartitions(m.Docs(), k)
	e.enter(ctx, PhasePartitioned, 0)

	concepts, err := kmeans.Concepts(m, parts, nil, e.workers)
	if err != nil {
		return nil, &IterationError{Iteration: 0, Err: err}
	}
	e.enter(ctx, PhaseConceptsComputed, 0)

	state := &State{
		K:          k,
		Partitions: parts,
		Concepts:   concepts,
		Quality:    e.score(m, parts, concepts),
	}
	e.enter(ctx, PhaseQualityScored, 0)

	history := []float64{state.Quality}
	e.log.DebugContext(ctx, "initial partitioning",
		"sizes", kmeans.Sizes(parts),
		"quality", state.Quality,
	)

	out := &Outcome{}
	for it := 1; ; it++ {
		if e.cfg.MaxIterations >= 0 && it > e.cfg.MaxIterations {
			if e.cfg.Strict {
				return nil, &NonConvergenceError{
					MaxIterations: e.cfg.MaxIterations,
					History:       history,
					State:         state,
				}
			}
			e.log.DebugContext(ctx, "iteration limit reached", "max_iterations", e.cfg.MaxIterations)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, &IterationError{Iteration: state.Iteration, History: history, Err: err}
		}

		next, err := e.iterate(ctx, m, state, it)
		if err != nil {
			return nil, e.iterationFailure(err, it, history)
		}
		history = append(history, next.stats.Quality)
		state = next.state
		e.obs.OnIteration(next.stats)

		e.enter(ctx, PhaseConvergenceCheck, it)
		v := e.cfg.verdict(next.stats.Delta)
		if v == continueLoop {
			continue
		}
		if v == stopRegressed {
			out.Regressed = true
			if e.cfg.Stop == FailOnRegression {
				return nil, &QualityRegressionError{Iteration: it, Delta: next.stats.Delta, History: history}
			}
		}
		out.Converged = true
		break
	}

	e.enter(ctx, PhaseConverged, state.Iteration)
	out.State = state
	out.History = history
	return out, nil
}

type step struct {
	state *State
	stats IterationStats
}

// iterate performs one reassign, recompute, rescore round against prev.
func (e *Engine) iterate(ctx context.Context, m *matrix.Dense, prev *State, it int) (step, error) {
	start := time.Now()

	parts := kmeans.Reassign(m, prev.Concepts, e.workers)
	e.enter(ctx, PhaseReassigned, it)

	var fallback [][]float64
	if e.cfg.Empty == KeepPreviousConcept {
		fallback = prev.Concepts
	}
	concepts, err := kmeans.Concepts(m, parts, fallback, e.workers)
	if err != nil {
		return step{}, err
	}
	e.enter(ctx, PhaseConceptsComputed, it)

	q := e.score(m, parts, concepts)
	e.enter(ctx, PhaseQualityScored, it)

	stats := IterationStats{
		Iteration: it,
		Quality:   q,
		Delta:     q - prev.Quality,
		Sizes:     kmeans.Sizes(parts),
		Duration:  time.Since(start),
	}
	e.log.DebugContext(ctx, "iteration completed",
		"iteration", it,
		"quality", q,
		"delta", stats.Delta,
		"sizes", stats.Sizes,
	)

	return step{
		state: &State{
			K:          prev.K,
			Partitions: parts,
			Concepts:   concepts,
			Quality:    q,
			Iteration:  it,
		},
		stats: stats,
	}, nil
}

func (e *Engine) iterationFailure(err error, it int, history []float64) error {
	var pe *kmeans.PartitionError
	if errors.As(err, &pe) && errors.Is(err, kmeans.ErrEmptyPartition) {
		return &DegenerateClusterError{Partition: pe.Partition, Iteration: it, History: history}
	}
	return &IterationError{Iteration: it, History: history, Err: err}
}
