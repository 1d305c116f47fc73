// Package testutil provides testing utilities for spkmeans.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and generators for synthetic
// document-term matrices.
//
// # Random Corpora
//
//	rng := testutil.NewRNG(seed)
//	m := testutil.NormalizedMatrix(rng, 100, 32)       // unit-length rows
//	c := rng.TopicCorpus([]int{6, 12, 12}, 8, 0.05)    // well separated topics
package testutil
