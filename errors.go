package spkmeans

import (
	"github.com/hupe1980/spkmeans/internal/engine"
)

var (
	// ErrInvalidK is returned when k is outside [1, documents].
	ErrInvalidK = engine.ErrInvalidK

	// ErrNilMatrix is returned when Run is called without a matrix.
	ErrNilMatrix = engine.ErrNilMatrix

	// ErrZeroDocument matches every *ZeroDocumentError.
	ErrZeroDocument = engine.ErrZeroDocument

	// ErrNonFiniteDocument matches every *NonFiniteDocumentError.
	ErrNonFiniteDocument = engine.ErrNonFiniteDocument

	// ErrDegenerateCluster matches every *DegenerateClusterError.
	ErrDegenerateCluster = engine.ErrDegenerateCluster

	// ErrQualityRegression matches every *QualityRegressionError.
	ErrQualityRegression = engine.ErrQualityRegression

	// ErrNonConvergence matches every *NonConvergenceError.
	ErrNonConvergence = engine.ErrNonConvergence
)

// ConfigError reports a cluster count that does not fit the matrix.
// It matches ErrInvalidK.
type ConfigError = engine.ConfigError

// ZeroDocumentError reports an input document whose weights are all zero.
type ZeroDocumentError = engine.ZeroDocumentError

// NonFiniteDocumentError reports an input document with a NaN or infinite norm.
type NonFiniteDocumentError = engine.NonFiniteDocumentError

// DegenerateClusterError reports a partition that became empty after
// reassignment, with the iteration and quality history up to that point.
type DegenerateClusterError = engine.DegenerateClusterError

// QualityRegressionError reports a quality decrease under FailOnRegression.
type QualityRegressionError = engine.QualityRegressionError

// NonConvergenceError reports an exhausted iteration limit in strict mode.
type NonConvergenceError = engine.NonConvergenceError

// IterationError wraps an error that aborted the loop, most often
// context cancellation, with the iteration and quality history.
type IterationError = engine.IterationError
