package spkmeans

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/testutil"
	"github.com/hupe1980/spkmeans/vecmath"
)

func exampleMatrix(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows([][]float64{
		{1, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)
	return m
}

func TestRun(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		res, err := Run(context.Background(), exampleMatrix(t), 2)
		require.NoError(t, err)

		assert.Equal(t, 2, res.K)
		assert.Equal(t, [][]int{{0, 1}, {2, 3}}, res.Partitions)
		assert.Equal(t, 1, res.Iterations)
		assert.True(t, res.Converged)
		assert.False(t, res.Regressed)
		assert.InDelta(t, 2+math.Sqrt2, res.Quality, 1e-12)
		assert.Len(t, res.QualityHistory, 2)
		assert.NotEmpty(t, res.RunID)
		assert.Equal(t, []int{2, 2}, res.Sizes())
		assert.Equal(t, []int{0, 0, 1, 1}, res.Labels())

		for _, c := range res.Concepts {
			assert.InDelta(t, 1.0, vecmath.Norm(c), 1e-12)
		}
	})

	t.Run("MaxIterationsZero", func(t *testing.T) {
		c := testutil.NewRNG(1).TopicCorpus([]int{6, 12, 12}, 8, 0)

		res, err := Run(context.Background(), c.Matrix, 3, WithMaxIterations(0))
		require.NoError(t, err)
		assert.Equal(t, 0, res.Iterations)
		assert.False(t, res.Converged)
		assert.Equal(t, []int{10, 10, 10}, res.Sizes())
		assert.Equal(t, []float64{res.Quality}, res.QualityHistory)
	})

	t.Run("StrictConvergence", func(t *testing.T) {
		c := testutil.NewRNG(1).TopicCorpus([]int{6, 12, 12}, 8, 0)

		_, err := Run(context.Background(), c.Matrix, 3, WithMaxIterations(0), WithStrictConvergence())
		var nc *NonConvergenceError
		require.True(t, errors.As(err, &nc))
		assert.ErrorIs(t, err, ErrNonConvergence)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := Run(context.Background(), exampleMatrix(t), 5)
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("ZeroDocument", func(t *testing.T) {
		m, err := matrix.FromRows([][]float64{{1, 1}, {0, 0}})
		require.NoError(t, err)

		_, err = Run(context.Background(), m, 1)
		assert.ErrorIs(t, err, ErrZeroDocument)
	})

	t.Run("EmptyPolicy", func(t *testing.T) {
		rows := [][]float64{{1, 0}, {1, 0}, {1, 0}}

		m, err := matrix.FromRows(rows)
		require.NoError(t, err)
		_, err = Run(context.Background(), m, 3)
		assert.ErrorIs(t, err, ErrDegenerateCluster)

		m, err = matrix.FromRows(rows)
		require.NoError(t, err)
		res, err := Run(context.Background(), m, 3, WithEmptyPolicy(KeepPreviousConcept))
		require.NoError(t, err)
		assert.Equal(t, []int{3, 0, 0}, res.Sizes())
		assert.Equal(t, []int{0, 0, 0}, res.Labels())
	})

	t.Run("WorkersAndPolicy", func(t *testing.T) {
		c := testutil.NewRNG(8).TopicCorpus([]int{5, 11, 9}, 6, 0)

		res, err := Run(context.Background(), c.Matrix, 3,
			WithWorkers(3),
			WithStopPolicy(FailOnRegression),
			WithConvergenceThreshold(1e-6),
		)
		require.NoError(t, err)
		assert.True(t, res.Converged)
		assert.Equal(t, c.Labels, res.Labels())
	})
}

func TestRun_MetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	c := testutil.NewRNG(3).TopicCorpus([]int{6, 12, 12}, 8, 0)
	res, err := Run(context.Background(), c.Matrix, 3,
		WithLogger(logger),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunsConverged)
	assert.Equal(t, int64(0), stats.RunErrors)
	assert.Equal(t, int64(res.Iterations), stats.IterationCount)
	assert.Equal(t, res.Quality, stats.LastQuality)

	out := buf.String()
	assert.Contains(t, out, `"msg":"clustering completed"`)
	assert.Contains(t, out, `"run_id":"`+res.RunID+`"`)
	assert.Contains(t, out, `"msg":"iteration completed"`)
	assert.Contains(t, out, `"workers":`+strconv.Itoa(runtime.GOMAXPROCS(0)))

	_, err = Run(context.Background(), nil, 1, WithMetricsCollector(metrics))
	assert.ErrorIs(t, err, ErrNilMatrix)
	assert.Equal(t, int64(1), metrics.GetStats().RunErrors)
}

func TestRun_LogsConfiguredWorkers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, nil))

	_, err := Run(context.Background(), exampleMatrix(t), 2, WithLogger(logger), WithWorkers(3))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"workers":3`)
}

func TestRun_NonFiniteWeight(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, 0}, {math.NaN(), 0}, {0, 1}})
	require.NoError(t, err)

	_, err = Run(context.Background(), m, 2)
	var nf *NonFiniteDocumentError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 1, nf.Doc)
	assert.ErrorIs(t, err, ErrNonFiniteDocument)
}

func TestWithNilOptions(t *testing.T) {
	res, err := Run(context.Background(), exampleMatrix(t), 2, WithLogger(nil), WithMetricsCollector(nil))
	require.NoError(t, err)
	assert.True(t, res.Converged)
}

func TestInitialPartitions(t *testing.T) {
	parts, err := InitialPartitions(10, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8, 9}}, parts)

	_, err = InitialPartitions(3, 0)
	assert.ErrorIs(t, err, ErrInvalidK)
}
