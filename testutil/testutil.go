package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/vecmath"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformRows generates num rows of length words with values in (0, 1].
// Values are strictly positive so every row has a non-zero norm.
func (r *RNG) UniformRows(num, words int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*words)
	rows := make([][]float64, num)
	for i := range num {
		row := data[i*words : (i+1)*words]
		for j := range row {
			row[j] = 1 - r.rand.Float64()
		}
		rows[i] = row
	}
	return rows
}

// NormalizedMatrix returns a docs x words matrix of random positive weights
// whose rows are normalized to unit length.
func NormalizedMatrix(r *RNG, docs, words int) *matrix.Dense {
	m, err := matrix.FromRows(r.UniformRows(docs, words))
	if err != nil {
		panic(err)
	}
	for i := range docs {
		vecmath.Normalize(m.Row(i))
	}
	return m
}

// Corpus is a synthetic document-term matrix with known topic labels.
type Corpus struct {
	Matrix *matrix.Dense
	Labels []int // Labels[doc] is the generating topic of doc
	Topics int
}

// TopicCorpus generates one block of documents per entry of sizes, topic t
// contributing sizes[t] consecutive documents. The vocabulary has
// len(sizes)*wordsPerTopic words and topic t owns the word block
// [t*wordsPerTopic, (t+1)*wordsPerTopic). Documents draw counts in [1, 5] from
// their topic's block; with probability noise each foreign word gets a count
// of 1.
//
// Uneven sizes make the contiguous initial split straddle topic boundaries.
func (r *RNG) TopicCorpus(sizes []int, wordsPerTopic int, noise float64) *Corpus {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := 0
	for _, n := range sizes {
		docs += n
	}
	words := len(sizes) * wordsPerTopic

	m, err := matrix.New(docs, words)
	if err != nil {
		panic(err)
	}
	labels := make([]int, 0, docs)
	for topic, n := range sizes {
		for range n {
			labels = append(labels, topic)
		}
	}

	for i, topic := range labels {
		row := m.Row(i)
		for w := range row {
			if w/wordsPerTopic == topic {
				row[w] = float64(1 + r.rand.Intn(5))
			} else if r.rand.Float64() < noise {
				row[w] = 1
			}
		}
	}

	return &Corpus{Matrix: m, Labels: labels, Topics: len(sizes)}
}
