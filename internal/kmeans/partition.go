package kmeans

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Partition is an immutable set of document indices.
// Members are always visited in ascending index order.
type Partition struct {
	rb *roaring.Bitmap
}

// NewPartition creates a partition holding the given document indices.
func NewPartition(docs ...int) Partition {
	rb := roaring.New()
	for _, d := range docs {
		rb.Add(uint32(d))
	}
	return Partition{rb: rb}
}

// RangePartition creates a partition holding the indices [start, end).
func RangePartition(start, end int) Partition {
	rb := roaring.New()
	if end > start {
		rb.AddRange(uint64(start), uint64(end))
	}
	return Partition{rb: rb}
}

// Len returns the number of members.
func (p Partition) Len() int {
	if p.rb == nil {
		return 0
	}
	return int(p.rb.GetCardinality())
}

// IsEmpty reports whether the partition has no members.
func (p Partition) IsEmpty() bool {
	return p.rb == nil || p.rb.IsEmpty()
}

// Contains reports whether document doc is a member.
func (p Partition) Contains(doc int) bool {
	return p.rb != nil && doc >= 0 && p.rb.Contains(uint32(doc))
}

// Each calls fn for every member in ascending order.
func (p Partition) Each(fn func(doc int)) {
	if p.rb == nil {
		return
	}
	it := p.rb.Iterator()
	for it.HasNext() {
		fn(int(it.Next()))
	}
}

// Members returns the member indices in ascending order.
func (p Partition) Members() []int {
	out := make([]int, 0, p.Len())
	p.Each(func(doc int) { out = append(out, doc) })
	return out
}

// Equal reports whether both partitions hold the same members.
func (p Partition) Equal(o Partition) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return p.IsEmpty() == o.IsEmpty()
	}
	return p.rb.Equals(o.rb)
}

// InitialPartitions splits docs documents into k contiguous partitions.
//
// With split = docs / k, partition i < k-1 holds [i*split, (i+1)*split) and
// the last partition also absorbs the remainder, holding [(k-1)*split, docs).
// Callers must ensure 1 <= k <= docs.
func InitialPartitions(docs, k int) []Partition {
	split := docs / k
	parts := make([]Partition, k)
	for i := 0; i < k; i++ {
		start := i * split
		end := start + split
		if i == k-1 {
			end = docs
		}
		parts[i] = RangePartition(start, end)
	}
	return parts
}

// Partitions groups documents by label. labels[doc] is the partition index of
// doc and must lie in [0, k).
func Partitions(labels []int, k int) []Partition {
	bms := make([]*roaring.Bitmap, k)
	for i := range bms {
		bms[i] = roaring.New()
	}
	for doc, l := range labels {
		bms[l].Add(uint32(doc))
	}
	parts := make([]Partition, k)
	for i, rb := range bms {
		parts[i] = Partition{rb: rb}
	}
	return parts
}

// Sizes returns the member count of every partition.
func Sizes(parts []Partition) []int {
	sizes := make([]int, len(parts))
	for i, p := range parts {
		sizes[i] = p.Len()
	}
	return sizes
}

// SamePartitioning reports whether a and b assign every document identically.
func SamePartitioning(a, b []Partition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
