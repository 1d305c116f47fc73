package engine

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// DefaultThreshold is the default convergence threshold on the quality delta.
const DefaultThreshold = 0.001

// Unbounded disables the iteration limit.
const Unbounded = -1

// StopPolicy decides how the loop treats a quality delta at or below the
// threshold.
type StopPolicy int

const (
	// StopOnNonImprovement stops whenever dQ <= threshold, including when the
	// quality decreased. Converged and regressed runs end the same way.
	StopOnNonImprovement StopPolicy = iota
	// FailOnRegression stops like StopOnNonImprovement but fails with a
	// *QualityRegressionError when dQ < 0.
	FailOnRegression
)

func (p StopPolicy) String() string {
	switch p {
	case StopOnNonImprovement:
		return "stop-on-non-improvement"
	case FailOnRegression:
		return "fail-on-regression"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// EmptyPolicy decides what happens when reassignment leaves a partition empty.
type EmptyPolicy int

const (
	// RejectEmpty aborts the run with a *DegenerateClusterError.
	RejectEmpty EmptyPolicy = iota
	// KeepPreviousConcept keeps the empty partition's previous concept vector.
	// The partition contributes zero quality until it regains members.
	KeepPreviousConcept
)

func (p EmptyPolicy) String() string {
	switch p {
	case RejectEmpty:
		return "reject"
	case KeepPreviousConcept:
		return "keep-previous-concept"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// IterationStats describes one completed refinement iteration.
type IterationStats struct {
	Iteration int
	Quality   float64
	Delta     float64
	Sizes     []int
	Duration  time.Duration
}

// Observer receives a callback after every completed iteration.
type Observer interface {
	OnIteration(IterationStats)
}

// Config configures an Engine.
type Config struct {
	// K is the number of clusters, 1 <= K <= documents.
	K int

	// Threshold is the convergence threshold on the quality delta.
	Threshold float64

	// MaxIterations caps the refinement loop. Unbounded (any negative value)
	// disables the cap; 0 returns the initial partitioning.
	MaxIterations int

	// Stop is the convergence policy.
	Stop StopPolicy

	// Empty is the empty partition policy.
	Empty EmptyPolicy

	// Strict turns reaching MaxIterations without convergence into a
	// *NonConvergenceError.
	Strict bool

	// Workers bounds the goroutines used per stage.
	// Values <= 0 use runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives phase and iteration logs. Nil discards them.
	Logger *slog.Logger

	// Observer is notified after each iteration. May be nil.
	Observer Observer
}

// DefaultConfig returns the reference configuration for k clusters:
// threshold 0.001, no iteration cap, StopOnNonImprovement, RejectEmpty.
func DefaultConfig(k int) Config {
	return Config{
		K:             k,
		Threshold:     DefaultThreshold,
		MaxIterations: Unbounded,
	}
}

type verdict int

const (
	continueLoop verdict = iota
	stopConverged
	stopRegressed
)

// verdict applies the stop test dQ <= Threshold. A negative delta that passes
// the test is reported separately; it still ends the loop.
func (c Config) verdict(dQ float64) verdict {
	if dQ > c.Threshold {
		return continueLoop
	}
	if dQ < 0 {
		return stopRegressed
	}
	return stopConverged
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}
