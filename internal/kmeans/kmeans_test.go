package kmeans

import (
	"errors"
	"math"
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

func TestConcept(t *testing.T) {
	m := exampleMatrix(t)

	c0, err := Concept(m, NewPartition(0, 1))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, c0, 1e-12)

	c1, err := Concept(m, NewPartition(2, 3))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, math.Sqrt2 / 2, math.Sqrt2 / 2}, c1, 1e-12)
}

func TestConcept_UnitNorm(t *testing.T) {
	rng := testutil.NewRNG(7)
	m := testutil.NormalizedMatrix(rng, 50, 20)

	for size := 1; size <= 50; size += 7 {
		c, err := Concept(m, RangePartition(0, size))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, vecmath.Norm(c), 1e-9)
	}
}

func TestConcept_Empty(t *testing.T) {
	m := exampleMatrix(t)
	_, err := Concept(m, NewPartition())
	assert.ErrorIs(t, err, ErrEmptyPartition)
}

func TestConcept_ZeroSum(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, 0}, {-1, 0}})
	require.NoError(t, err)

	_, err = Concept(m, NewPartition(0, 1))
	assert.ErrorIs(t, err, ErrZeroConcept)
}

func TestConcepts(t *testing.T) {
	m := exampleMatrix(t)
	parts := []Partition{NewPartition(0, 1), NewPartition(), NewPartition(2, 3)}

	t.Run("EmptyRejected", func(t *testing.T) {
		_, err := Concepts(m, parts, nil, 4)
		var pe *PartitionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 1, pe.Partition)
		assert.ErrorIs(t, err, ErrEmptyPartition)
	})

	t.Run("EmptyTakesPrevious", func(t *testing.T) {
		prev := [][]float64{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}
		got, err := Concepts(m, parts, prev, 2)
		require.NoError(t, err)
		assert.Equal(t, prev[1], got[1])
		assert.InDeltaSlice(t, []float64{1, 0, 0}, got[0], 1e-12)
	})

	t.Run("WorkerCountInvariant", func(t *testing.T) {
		rng := testutil.NewRNG(3)
		big := testutil.NormalizedMatrix(rng, 200, 30)
		ps := InitialPartitions(200, 7)

		one, err := Concepts(big, ps, nil, 1)
		require.NoError(t, err)
		many, err := Concepts(big, ps, nil, 8)
		require.NoError(t, err)
		assert.Equal(t, one, many)
	})
}

func TestAssign_TiesGoToLowestIndex(t *testing.T) {
	doc := []float64{1, 0}
	concepts := [][]float64{{0, 1}, {1, 0}, {1, 0}}
	assert.Equal(t, 1, Assign(doc, concepts))

	same := [][]float64{{1, 0}, {1, 0}}
	assert.Equal(t, 0, Assign(doc, same))
}

func TestAssignAll(t *testing.T) {
	m := exampleMatrix(t)
	concepts := [][]float64{{1, 0, 0}, {0, math.Sqrt2 / 2, math.Sqrt2 / 2}}

	for _, workers := range []int{0, 1, 3, 16} {
		assert.Equal(t, []int{0, 0, 1, 1}, AssignAll(m, concepts, workers), "workers=%d", workers)
	}

	parts := Reassign(m, concepts, 2)
	assert.Equal(t, []int{0, 1}, parts[0].Members())
	assert.Equal(t, []int{2, 3}, parts[1].Members())
}

func TestQuality(t *testing.T) {
	m := exampleMatrix(t)
	parts := InitialPartitions(4, 2)
	concepts, err := Concepts(m, parts, nil, 1)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, PartitionQuality(m, parts[0], concepts[0]), 1e-12)
	assert.InDelta(t, math.Sqrt2, PartitionQuality(m, parts[1], concepts[1]), 1e-12)
	assert.InDelta(t, 2+math.Sqrt2, TotalQuality(m, parts, concepts), 1e-12)

	assert.Equal(t, 0.0, PartitionQuality(m, NewPartition(), concepts[0]))
}
