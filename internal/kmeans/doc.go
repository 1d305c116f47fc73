// Package kmeans implements the building blocks of spherical k-means:
// partitions over document indices, concept vectors, cosine-similarity
// assignment and partition quality.
//
// All functions operate on an already normalized matrix.Dense and never
// copy or mutate it.
package kmeans
