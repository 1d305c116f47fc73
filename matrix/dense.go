package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty is returned when a matrix would have no documents or no words.
	ErrEmpty = errors.New("matrix: document and word counts must be positive")

	// ErrRaggedRows is returned by FromRows when rows differ in length.
	ErrRaggedRows = errors.New("matrix: rows have different lengths")
)

// ErrOutOfRange indicates a document or word index outside the matrix bounds.
type ErrOutOfRange struct {
	Doc, Word   int
	Docs, Words int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("matrix: entry (%d, %d) out of range for %dx%d matrix", e.Doc, e.Word, e.Docs, e.Words)
}

// Dense is a docs x words matrix of non-negative term weights.
// Each row is one document vector.
//
// Row returns views into the backing storage, so callers that mutate a row
// mutate the matrix.
type Dense struct {
	m *mat.Dense
}

// New allocates a zero-filled docs x words matrix.
func New(docs, words int) (*Dense, error) {
	if docs <= 0 || words <= 0 {
		return nil, ErrEmpty
	}
	return &Dense{m: mat.NewDense(docs, words, nil)}, nil
}

// FromRows builds a matrix by copying rows.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	words := len(rows[0])
	data := make([]float64, 0, len(rows)*words)
	for _, r := range rows {
		if len(r) != words {
			return nil, ErrRaggedRows
		}
		data = append(data, r...)
	}
	return &Dense{m: mat.NewDense(len(rows), words, data)}, nil
}

// SizeBytes returns the number of bytes a docs x words matrix occupies.
func SizeBytes(docs, words int) int64 {
	return int64(docs) * int64(words) * 8
}

// Docs returns the number of documents (rows).
func (d *Dense) Docs() int {
	r, _ := d.m.Dims()
	return r
}

// Words returns the vocabulary size (columns).
func (d *Dense) Words() int {
	_, c := d.m.Dims()
	return c
}

// Row returns a view of document i. The slice aliases the matrix storage.
func (d *Dense) Row(i int) []float64 {
	return d.m.RawRowView(i)
}

// At returns the weight of word j in document i.
func (d *Dense) At(i, j int) float64 {
	return d.m.At(i, j)
}

// Set sets the weight of word j in document i.
func (d *Dense) Set(i, j int, v float64) error {
	if i < 0 || j < 0 || i >= d.Docs() || j >= d.Words() {
		return &ErrOutOfRange{Doc: i, Word: j, Docs: d.Docs(), Words: d.Words()}
	}
	d.m.Set(i, j, v)
	return nil
}

// Rows returns row views for every document in index order.
func (d *Dense) Rows() [][]float64 {
	rows := make([][]float64, d.Docs())
	for i := range rows {
		rows[i] = d.m.RawRowView(i)
	}
	return rows
}
