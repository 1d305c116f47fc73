package kmeans

import (
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/vecmath"
)

// Assign returns the index of the concept vector with the highest cosine
// similarity to doc. Concepts are scanned in index order and only a strictly
// greater similarity replaces the current best, so ties go to the lowest index.
func Assign(doc []float64, concepts [][]float64) int {
	best := 0
	bestVal := vecmath.Cosine(doc, concepts[0])
	for j := 1; j < len(concepts); j++ {
		v := vecmath.Cosine(doc, concepts[j])
		if v > bestVal {
			bestVal = v
			best = j
		}
	}
	return best
}

// AssignAll labels every document of m with its closest concept.
//
// Documents are split into contiguous chunks processed by at most workers
// goroutines. Each goroutine only writes the label slots of its own chunk, and
// the concept set is read-only for the duration of the call.
func AssignAll(m *matrix.Dense, concepts [][]float64, workers int) []int {
	n := m.Docs()
	labels := make([]int, n)

	workers = max(workers, 1)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				labels[i] = Assign(m.Row(i), concepts)
			}
			return nil
		})
	}
	_ = g.Wait()

	return labels
}

// Reassign computes a brand-new partitioning of m against concepts.
func Reassign(m *matrix.Dense, concepts [][]float64, workers int) []Partition {
	return Partitions(AssignAll(m, concepts, workers), len(concepts))
}
