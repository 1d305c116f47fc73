package kmeans

import (
	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/vecmath"
)

// PartitionQuality returns the dot product of the partition's member sum with
// its concept vector. An empty partition scores zero.
func PartitionQuality(m *matrix.Dense, p Partition, concept []float64) float64 {
	if p.IsEmpty() {
		return 0
	}
	return vecmath.Dot(SumMembers(m, p), concept)
}

// TotalQuality sums PartitionQuality over all partitions in index order.
func TotalQuality(m *matrix.Dense, parts []Partition, concepts [][]float64) float64 {
	var q float64
	for i, p := range parts {
		q += PartitionQuality(m, p, concepts[i])
	}
	return q
}
