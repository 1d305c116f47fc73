package report

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/hupe1980/spkmeans"
	"github.com/hupe1980/spkmeans/codec"
	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/vecmath"
)

// DefaultTopWords is the number of words listed per partition.
const DefaultTopWords = 10

// Vocabulary maps a word index to its label. *corpus.Corpus implements it.
type Vocabulary interface {
	Word(i int) string
}

// WordWeight is one word of a partition summary.
type WordWeight struct {
	Index  int     `json:"index"`
	Word   string  `json:"word,omitempty"`
	Weight float64 `json:"weight"`
}

// Partition summarizes one cluster.
type Partition struct {
	Index    int          `json:"index"`
	Size     int          `json:"size"`
	Quality  float64      `json:"quality"`
	Members  []int        `json:"members"`
	TopWords []WordWeight `json:"top_words"`
}

// Report is the serializable form of a run.
type Report struct {
	RunID          string      `json:"run_id"`
	K              int         `json:"k"`
	Quality        float64     `json:"quality"`
	Iterations     int         `json:"iterations"`
	Converged      bool        `json:"converged"`
	Regressed      bool        `json:"regressed"`
	QualityHistory []float64   `json:"quality_history"`
	DurationMillis int64       `json:"duration_ms"`
	Codec          string      `json:"codec"`
	Partitions     []Partition `json:"partitions"`
}

// TopWords sums the member rows of m and returns the n heaviest words.
// n is clamped to the word count. Equal weights rank the higher index first.
func TopWords(m *matrix.Dense, members []int, n int) []WordWeight {
	return topWords(memberSum(m, members), n)
}

func memberSum(m *matrix.Dense, members []int) []float64 {
	sum := make([]float64, m.Words())
	for _, doc := range members {
		vecmath.AddTo(sum, m.Row(doc))
	}
	return sum
}

func topWords(sum []float64, n int) []WordWeight {
	n = min(max(n, 0), len(sum))

	ranked := make([]WordWeight, len(sum))
	for i, w := range sum {
		ranked[i] = WordWeight{Index: i, Weight: w}
	}
	slices.SortFunc(ranked, func(a, b WordWeight) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(b.Index, a.Index)
	})
	return ranked[:n]
}

// Summarize builds one Partition per cluster of res. vocab may be nil.
func Summarize(m *matrix.Dense, res *spkmeans.Result, vocab Vocabulary, n int) []Partition {
	out := make([]Partition, len(res.Partitions))
	for i, members := range res.Partitions {
		sum := memberSum(m, members)
		p := Partition{
			Index:    i,
			Size:     len(members),
			Members:  members,
			TopWords: topWords(sum, n),
		}
		if i < len(res.Concepts) {
			p.Quality = vecmath.Dot(sum, res.Concepts[i])
		}
		if vocab != nil {
			for j := range p.TopWords {
				p.TopWords[j].Word = vocab.Word(p.TopWords[j].Index)
			}
		}
		out[i] = p
	}
	return out
}

// New assembles a Report for res.
func New(m *matrix.Dense, res *spkmeans.Result, vocab Vocabulary, n int) *Report {
	return &Report{
		RunID:          res.RunID,
		K:              res.K,
		Quality:        res.Quality,
		Iterations:     res.Iterations,
		Converged:      res.Converged,
		Regressed:      res.Regressed,
		QualityHistory: res.QualityHistory,
		DurationMillis: res.Duration.Milliseconds(),
		Partitions:     Summarize(m, res, vocab, n),
	}
}

// WriteText prints every partition header followed by its top words, one
// per indented line. Words without a label print as their 1-based index.
func WriteText(w io.Writer, parts []Partition) error {
	bw := bufio.NewWriter(w)
	for _, p := range parts {
		fmt.Fprintf(bw, "Partition #%d:\n", p.Index+1)
		for _, ww := range p.TopWords {
			word := ww.Word
			if word == "" {
				word = fmt.Sprintf("word#%d", ww.Index+1)
			}
			fmt.Fprintf(bw, "   %s\n", word)
		}
	}
	return bw.Flush()
}

// WriteJSON encodes rep with c, indented when the codec supports it.
// A nil codec selects codec.Default.
func WriteJSON(w io.Writer, c codec.Codec, rep *Report) error {
	if c == nil {
		c = codec.Default
	}
	rep.Codec = c.Name()

	var (
		b   []byte
		err error
	)
	if ind, ok := c.(codec.Indenter); ok {
		b, err = ind.MarshalIndent(rep, "", "  ")
	} else {
		b, err = c.Marshal(rep)
	}
	if err != nil {
		return fmt.Errorf("report: encode with %s: %w", c.Name(), err)
	}

	_, err = w.Write(append(b, '\n'))
	return err
}
