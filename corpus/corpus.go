package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/spkmeans/blobstore"
	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/resource"
	"golang.org/x/sync/errgroup"
)

// DefaultMatrixName is the blob read when Options.MatrixName is empty.
const DefaultMatrixName = "matrix"

// Options configures Load.
type Options struct {
	// MatrixName is the blob holding the triple-format matrix.
	MatrixName string
	// VocabName is the blob holding one word per line. Empty skips it.
	VocabName string
	// Controller bounds memory and IO. Nil means unlimited.
	Controller *resource.Controller
	// Logger receives load events. Nil discards them.
	Logger *slog.Logger
}

// Corpus is a loaded matrix with its optional vocabulary.
type Corpus struct {
	Header     matrix.Header
	Matrix     *matrix.Dense
	Vocabulary []string

	rc       *resource.Controller
	reserved int64
}

// Word returns the vocabulary entry for word index i, or a placeholder
// naming the 1-based index when the vocabulary is shorter.
func (c *Corpus) Word(i int) string {
	if i >= 0 && i < len(c.Vocabulary) {
		return c.Vocabulary[i]
	}
	return fmt.Sprintf("word#%d", i+1)
}

// Release returns the matrix memory reservation. It is safe to call twice.
func (c *Corpus) Release() {
	if c == nil || c.reserved == 0 {
		return
	}
	c.rc.ReleaseMemory(c.reserved)
	c.reserved = 0
}

// Load reads the matrix and, if named, the vocabulary concurrently.
// The vocabulary is cut to the matrix word count.
func Load(ctx context.Context, store blobstore.BlobStore, opts Options) (*Corpus, error) {
	if opts.MatrixName == "" {
		opts.MatrixName = DefaultMatrixName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Corpus{rc: opts.Controller}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, m, reserved, err := loadMatrix(gctx, store, opts.MatrixName, opts.Controller)
		if err != nil {
			return fmt.Errorf("corpus: load matrix %q: %w", opts.MatrixName, err)
		}
		c.Header, c.Matrix, c.reserved = h, m, reserved
		return nil
	})
	if opts.VocabName != "" {
		g.Go(func() error {
			words, err := LoadVocabulary(gctx, store, opts.VocabName, 0, opts.Controller)
			if err != nil {
				return fmt.Errorf("corpus: load vocabulary %q: %w", opts.VocabName, err)
			}
			c.Vocabulary = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.Release()
		return nil, err
	}

	if len(c.Vocabulary) > c.Header.Words {
		c.Vocabulary = c.Vocabulary[:c.Header.Words]
	}
	if opts.VocabName != "" && len(c.Vocabulary) < c.Header.Words {
		logger.Warn("vocabulary shorter than matrix",
			slog.Int("words", c.Header.Words), slog.Int("vocabulary", len(c.Vocabulary)))
	}

	logger.Info("corpus loaded",
		slog.String("matrix", opts.MatrixName),
		slog.Int("docs", c.Header.Docs),
		slog.Int("words", c.Header.Words),
		slog.Int("nonzero", c.Header.NonZero),
		slog.Int64("reserved_bytes", c.reserved))

	return c, nil
}

func loadMatrix(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (matrix.Header, *matrix.Dense, int64, error) {
	if err := rc.AcquireLoad(ctx); err != nil {
		return matrix.Header{}, nil, 0, err
	}
	defer rc.ReleaseLoad()

	r, err := open(ctx, store, name, rc)
	if err != nil {
		return matrix.Header{}, nil, 0, err
	}
	defer r.Close()

	dec := matrix.NewDecoder(r)
	h, err := dec.Header()
	if err != nil {
		return matrix.Header{}, nil, 0, err
	}

	size := matrix.SizeBytes(h.Docs, h.Words)
	if err := rc.AcquireMemory(ctx, size); err != nil {
		return matrix.Header{}, nil, 0, err
	}

	m, err := dec.Decode()
	if err != nil {
		rc.ReleaseMemory(size)
		return matrix.Header{}, nil, 0, err
	}
	return h, m, size, nil
}

// LoadVocabulary reads a vocabulary blob, keeping at most limit words.
// A limit of 0 or less keeps every line.
func LoadVocabulary(ctx context.Context, store blobstore.BlobStore, name string, limit int, rc *resource.Controller) ([]string, error) {
	if err := rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseLoad()

	r, err := open(ctx, store, name, rc)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ReadVocabulary(r, limit)
}

// ReadVocabulary reads one word per line. Line order is word index order.
// Trailing whitespace and carriage returns are trimmed.
func ReadVocabulary(r io.Reader, limit int) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if limit > 0 && len(words) == limit {
			break
		}
		words = append(words, strings.TrimRight(sc.Text(), " \t\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func open(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (io.ReadCloser, error) {
	return blobstore.OpenReaderWith(ctx, store, name, func(r io.Reader) io.Reader {
		return resource.NewRateLimitedReader(ctx, r, rc)
	})
}
