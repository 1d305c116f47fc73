package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1, 2}, []float64{1, 1, -2}, -4},
		{"Empty", []float64{}, []float64{}, 0},
		{"Single", []float64{2}, []float64{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-12)
		})
	}
}

func TestDot_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Dot([]float64{1, 2}, []float64{1}) })
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float64{3, 4}), 1e-12)
	assert.Equal(t, 0.0, Norm([]float64{0, 0, 0}))
}

func TestSum(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 0}, Sum(3))
	})

	t.Run("Elementwise", func(t *testing.T) {
		a := []float64{1, 0, 2}
		b := []float64{0, 3, 1}
		got := Sum(3, a, b)
		assert.Equal(t, []float64{1, 3, 3}, got)
		// inputs are not modified
		assert.Equal(t, []float64{1, 0, 2}, a)
	})
}

func TestScale(t *testing.T) {
	v := []float64{1, 2, 4}
	Scale(v, 0.5)
	assert.Equal(t, []float64{0.5, 1, 2}, v)
}

func TestNormalize(t *testing.T) {
	v := []float64{3, 0, 4}
	Normalize(v)
	assert.InDelta(t, 1.0, Norm(v), 1e-12)
	assert.InDelta(t, 0.6, v[0], 1e-12)

	zero := []float64{0, 0}
	Normalize(zero)
	assert.True(t, math.IsNaN(zero[0]))
}

func TestNormalizeChecked(t *testing.T) {
	v := []float64{0, 1, 1}
	require.True(t, NormalizeChecked(v))
	assert.InDelta(t, math.Sqrt2/2, v[1], 1e-12)
	assert.InDelta(t, math.Sqrt2/2, v[2], 1e-12)

	zero := []float64{0, 0, 0}
	assert.False(t, NormalizeChecked(zero))
	assert.Equal(t, []float64{0, 0, 0}, zero)

	assert.False(t, NormalizeChecked(nil))
}

func TestCosine(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{0.3, 7, 2},
		{5, 5, 5, 5},
		{1e-3, 2e-3},
	}
	for _, v := range vectors {
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-12)
	}

	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.True(t, math.IsNaN(Cosine([]float64{0, 0}, []float64{1, 0})))
}
