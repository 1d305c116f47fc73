package kmeans

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/vecmath"
)

var (
	// ErrEmptyPartition is returned when a concept vector is requested for a
	// partition with no members.
	ErrEmptyPartition = errors.New("kmeans: empty partition has no concept vector")

	// ErrZeroConcept is returned when the member sum of a partition has zero norm.
	ErrZeroConcept = errors.New("kmeans: concept vector has zero norm")
)

// PartitionError reports a failure tied to one partition.
type PartitionError struct {
	Partition int
	Err       error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %d: %v", e.Partition, e.Err)
}

func (e *PartitionError) Unwrap() error { return e.Err }

// SumMembers returns the elementwise sum of the partition's document vectors,
// accumulated in ascending document order.
func SumMembers(m *matrix.Dense, p Partition) []float64 {
	sum := make([]float64, m.Words())
	p.Each(func(doc int) {
		vecmath.AddTo(sum, m.Row(doc))
	})
	return sum
}

// Concept computes the concept vector of p: the member sum scaled by 1/words
// and normalized to unit length.
func Concept(m *matrix.Dense, p Partition) ([]float64, error) {
	if p.IsEmpty() {
		return nil, ErrEmptyPartition
	}
	cv := SumMembers(m, p)
	vecmath.Scale(cv, 1.0/float64(m.Words()))
	if !vecmath.NormalizeChecked(cv) {
		return nil, ErrZeroConcept
	}
	return cv, nil
}

// Concepts computes the concept vector of every partition, one partition per
// goroutine with at most workers running at once.
//
// An empty partition i takes prev[i] when prev is non-nil. Otherwise the call
// fails with a *PartitionError for the lowest failing partition index.
func Concepts(m *matrix.Dense, parts []Partition, prev [][]float64, workers int) ([][]float64, error) {
	concepts := make([][]float64, len(parts))
	errs := make([]error, len(parts))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for i, p := range parts {
		if p.IsEmpty() && prev != nil {
			concepts[i] = prev[i]
			continue
		}
		g.Go(func() error {
			concepts[i], errs[i] = Concept(m, p)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &PartitionError{Partition: i, Err: err}
		}
	}
	return concepts, nil
}
