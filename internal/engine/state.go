package engine

import (
	"fmt"

	"github.com/hupe1980/spkmeans/internal/kmeans"
)

// Phase is a step of the clustering state machine.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhasePartitioned
	PhaseConceptsComputed
	PhaseQualityScored
	PhaseReassigned
	PhaseConvergenceCheck
	PhaseConverged
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhasePartitioned:
		return "partitioned"
	case PhaseConceptsComputed:
		return "concepts_computed"
	case PhaseQualityScored:
		return "quality_scored"
	case PhaseReassigned:
		return "reassigned"
	case PhaseConvergenceCheck:
		return "convergence_check"
	case PhaseConverged:
		return "converged"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// State is one clustering state. A new State is built at every iteration
// boundary and never modified afterwards.
type State struct {
	K          int
	Partitions []kmeans.Partition
	Concepts   [][]float64
	Quality    float64
	Iteration  int
}

// Outcome is the result of a completed run.
type Outcome struct {
	// State is the terminal state.
	State *State
	// History holds the baseline quality followed by the quality after every
	// iteration.
	History []float64
	// Converged is true when the loop stopped on the convergence test rather
	// than on the iteration limit.
	Converged bool
	// Regressed is true when the final quality delta was negative.
	Regressed bool
}
