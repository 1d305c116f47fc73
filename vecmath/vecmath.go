package vecmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Dot calculates the dot product of two vectors.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Norm returns the L2 norm of v, computed as sqrt(Dot(v, v)).
func Norm(v []float64) float64 {
	return math.Sqrt(floats.Dot(v, v))
}

// Sum returns the elementwise sum of vectors as a newly allocated vector of
// length dim. The sum of no vectors is the zero vector.
func Sum(dim int, vectors ...[]float64) []float64 {
	dst := make([]float64, dim)
	for _, v := range vectors {
		floats.Add(dst, v)
	}
	return dst
}

// AddTo adds v to dst elementwise in place.
func AddTo(dst, v []float64) {
	floats.Add(dst, v)
}

// Scale multiplies every element of v by c in place.
func Scale(v []float64, c float64) {
	floats.Scale(c, v)
}

// Normalize divides every element of v by Norm(v) in place.
// A zero vector yields NaN elements; use NormalizeChecked to avoid that.
func Normalize(v []float64) {
	n := Norm(v)
	for i := range v {
		v[i] /= n
	}
}

// NormalizeChecked L2-normalizes v in place.
// Returns false and leaves v untouched if v has zero (or non-finite) norm.
func NormalizeChecked(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	n := Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	for i := range v {
		v[i] /= n
	}
	return true
}

// Cosine returns the cosine similarity of a and b.
// The result is NaN if either vector has zero norm.
func Cosine(a, b []float64) float64 {
	return Dot(a, b) / (Norm(a) * Norm(b))
}
