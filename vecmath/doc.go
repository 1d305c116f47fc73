// Package vecmath provides the dense float64 vector primitives used by the
// clustering engine.
//
// The reductions are backed by gonum's floats package. All functions that take
// two vectors require them to have the same length and panic otherwise.
//
// # Usage
//
//	sim := vecmath.Cosine(doc, concept)
//	sum := vecmath.Sum(dim, a, b, c)
//	ok := vecmath.NormalizeChecked(sum)
package vecmath
