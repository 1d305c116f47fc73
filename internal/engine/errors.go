package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is outside [1, documents].
	ErrInvalidK = errors.New("k must be between 1 and the document count")

	// ErrNilMatrix is returned when no document matrix is given.
	ErrNilMatrix = errors.New("document matrix is nil")

	// ErrZeroDocument is the sentinel wrapped by ZeroDocumentError.
	ErrZeroDocument = errors.New("document vector has zero norm")

	// ErrNonFiniteDocument is the sentinel wrapped by NonFiniteDocumentError.
	ErrNonFiniteDocument = errors.New("document vector has a non-finite norm")

	// ErrDegenerateCluster is the sentinel wrapped by DegenerateClusterError.
	ErrDegenerateCluster = errors.New("partition became empty")

	// ErrQualityRegression is the sentinel wrapped by QualityRegressionError.
	ErrQualityRegression = errors.New("quality decreased")

	// ErrNonConvergence is the sentinel wrapped by NonConvergenceError.
	ErrNonConvergence = errors.New("did not converge within the iteration limit")
)

// ConfigError reports an invalid cluster count for the given matrix.
type ConfigError struct {
	K    int
	Docs int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: k=%d with %d documents", e.K, e.Docs)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidK }

// ZeroDocumentError reports an input document with all-zero weights.
// Cosine similarity against such a document is undefined.
type ZeroDocumentError struct {
	Doc int
}

func (e *ZeroDocumentError) Error() string {
	return fmt.Sprintf("document %d: %v", e.Doc, ErrZeroDocument)
}

func (e *ZeroDocumentError) Unwrap() error { return ErrZeroDocument }

// NonFiniteDocumentError reports an input document whose norm is NaN or
// infinite, for example because a weight is NaN or Inf.
type NonFiniteDocumentError struct {
	Doc int
}

func (e *NonFiniteDocumentError) Error() string {
	return fmt.Sprintf("document %d: %v", e.Doc, ErrNonFiniteDocument)
}

func (e *NonFiniteDocumentError) Unwrap() error { return ErrNonFiniteDocument }

// DegenerateClusterError reports a partition left without members after
// reassignment. History holds the quality of every completed iteration,
// starting with the baseline.
type DegenerateClusterError struct {
	Partition int
	Iteration int
	History   []float64
}

func (e *DegenerateClusterError) Error() string {
	return fmt.Sprintf("iteration %d: partition %d: %v", e.Iteration, e.Partition, ErrDegenerateCluster)
}

func (e *DegenerateClusterError) Unwrap() error { return ErrDegenerateCluster }

// QualityRegressionError is returned under the FailOnRegression policy when
// an iteration lowers the quality.
type QualityRegressionError struct {
	Iteration int
	Delta     float64
	History   []float64
}

func (e *QualityRegressionError) Error() string {
	return fmt.Sprintf("iteration %d: %v by %g", e.Iteration, ErrQualityRegression, -e.Delta)
}

func (e *QualityRegressionError) Unwrap() error { return ErrQualityRegression }

// NonConvergenceError is returned in strict mode when the iteration limit is
// reached before the convergence test passes. State is the last state reached.
type NonConvergenceError struct {
	MaxIterations int
	History       []float64
	State         *State
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v (%d iterations)", ErrNonConvergence, e.MaxIterations)
}

func (e *NonConvergenceError) Unwrap() error { return ErrNonConvergence }

// IterationError wraps a failure that aborted the loop, such as cancellation,
// with the diagnostic state accumulated so far.
type IterationError struct {
	Iteration int
	History   []float64
	Err       error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("iteration %d: %v", e.Iteration, e.Err)
}

func (e *IterationError) Unwrap() error { return e.Err }
