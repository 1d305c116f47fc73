package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrBadHeader is returned when the three header values are missing or invalid.
	ErrBadHeader = errors.New("matrix: invalid header")

	// ErrNegativeWeight is returned for triples with a negative count.
	ErrNegativeWeight = errors.New("matrix: negative weight")

	// ErrNonFiniteWeight is returned for triples whose count is NaN or infinite.
	ErrNonFiniteWeight = errors.New("matrix: non-finite weight")
)

const maxLineSize = 1 << 20

// Header holds the three leading values of the triple format.
type Header struct {
	Docs    int
	Words   int
	NonZero int // informational only
}

// Decoder reads a matrix in the sparse triple format.
//
// The header can be read on its own first, so callers can reserve memory for
// the dense matrix before it is allocated.
type Decoder struct {
	sc     *bufio.Scanner
	header *Header
	line   int

	// rest holds the fields that followed the header on its last line.
	rest []string
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Decoder{sc: sc}
}

// Header reads and returns the header. It is safe to call more than once.
func (d *Decoder) Header() (Header, error) {
	if d.header != nil {
		return *d.header, nil
	}

	var vals []int
	for len(vals) < 3 && d.sc.Scan() {
		d.line++
		fields := strings.Fields(d.sc.Text())
		for j, f := range fields {
			if len(vals) == 3 {
				d.rest = fields[j:]
				break
			}
			n, err := strconv.Atoi(f)
			if err != nil {
				return Header{}, fmt.Errorf("%w: line %d: %q", ErrBadHeader, d.line, f)
			}
			vals = append(vals, n)
		}
	}
	if err := d.sc.Err(); err != nil {
		return Header{}, err
	}
	if len(vals) < 3 {
		return Header{}, fmt.Errorf("%w: expected 3 values, got %d", ErrBadHeader, len(vals))
	}

	h := Header{Docs: vals[0], Words: vals[1], NonZero: vals[2]}
	if h.Docs <= 0 || h.Words <= 0 {
		return Header{}, fmt.Errorf("%w: %d documents, %d words", ErrBadHeader, h.Docs, h.Words)
	}
	d.header = &h
	return h, nil
}

// Decode reads the remaining triples into a dense matrix.
func (d *Decoder) Decode() (*Dense, error) {
	h, err := d.Header()
	if err != nil {
		return nil, err
	}

	m, err := New(h.Docs, h.Words)
	if err != nil {
		return nil, err
	}

	if len(d.rest) > 0 {
		rest := d.rest
		d.rest = nil
		if err := d.apply(m, rest); err != nil {
			return nil, err
		}
	}
	for d.sc.Scan() {
		d.line++
		if err := d.apply(m, strings.Fields(d.sc.Text())); err != nil {
			return nil, err
		}
	}
	if err := d.sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// apply stores one triple. Lines that do not parse as a triple are skipped.
func (d *Decoder) apply(m *Dense, fields []string) error {
	doc, word, count, ok := parseTriple(fields)
	if !ok {
		return nil
	}
	if math.IsNaN(count) || math.IsInf(count, 0) {
		return fmt.Errorf("%w: line %d", ErrNonFiniteWeight, d.line)
	}
	if count < 0 {
		return fmt.Errorf("%w: line %d", ErrNegativeWeight, d.line)
	}
	if err := m.Set(doc-1, word-1, count); err != nil {
		return fmt.Errorf("line %d: %w", d.line, err)
	}
	return nil
}

// Decode reads a whole matrix from r.
func Decode(r io.Reader) (*Dense, error) {
	return NewDecoder(r).Decode()
}

func parseTriple(f []string) (doc, word int, count float64, ok bool) {
	if len(f) < 3 {
		return 0, 0, 0, false
	}
	doc, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, 0, false
	}
	word, err = strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, 0, false
	}
	count, err = strconv.ParseFloat(f[2], 64)
	if err != nil {
		return 0, 0, 0, false
	}
	return doc, word, count, true
}
