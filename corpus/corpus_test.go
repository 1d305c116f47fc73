package corpus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/spkmeans/blobstore"
	"github.com/hupe1980/spkmeans/matrix"
	"github.com/hupe1980/spkmeans/resource"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixText = "4 3 4\n1 1 1\n2 1 1\n3 2 1\n4 3 1\n"

func newStore(t *testing.T, blobs map[string]string) *blobstore.MemoryStore {
	t.Helper()
	store := blobstore.NewMemoryStore()
	for name, data := range blobs {
		require.NoError(t, store.Put(context.Background(), name, []byte(data)))
	}
	return store
}

func TestLoad(t *testing.T) {
	store := newStore(t, map[string]string{
		"matrix":     matrixText,
		"vocabulary": "apple\nbanana\ncherry\ndate\n",
	})

	rc := resource.NewController(resource.Config{})
	c, err := Load(context.Background(), store, Options{VocabName: "vocabulary", Controller: rc})
	require.NoError(t, err)

	assert.Equal(t, matrix.Header{Docs: 4, Words: 3, NonZero: 4}, c.Header)
	assert.Equal(t, 4, c.Matrix.Docs())
	assert.Equal(t, 3, c.Matrix.Words())
	assert.Equal(t, []float64{0, 1, 0}, c.Matrix.Row(2))

	// Lines past the word count are dropped.
	assert.Equal(t, []string{"apple", "banana", "cherry"}, c.Vocabulary)
	assert.Equal(t, "banana", c.Word(1))

	assert.Equal(t, matrix.SizeBytes(4, 3), rc.MemoryUsage())
	c.Release()
	c.Release()
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestLoad_ShortVocabulary(t *testing.T) {
	store := newStore(t, map[string]string{
		"m":     matrixText,
		"words": "apple\r\n",
	})

	c, err := Load(context.Background(), store, Options{MatrixName: "m", VocabName: "words"})
	require.NoError(t, err)
	defer c.Release()

	assert.Equal(t, []string{"apple"}, c.Vocabulary)
	assert.Equal(t, "apple", c.Word(0))
	assert.Equal(t, "word#3", c.Word(2))
}

func TestLoad_Compressed(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(matrixText))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "matrix.zst", buf.Bytes()))

	c, err := Load(context.Background(), store, Options{MatrixName: "matrix.zst"})
	require.NoError(t, err)
	defer c.Release()

	assert.Equal(t, 4, c.Matrix.Docs())
	assert.Nil(t, c.Vocabulary)
}

func TestLoad_RateLimited(t *testing.T) {
	store := newStore(t, map[string]string{"matrix": matrixText})
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

	c, err := Load(context.Background(), store, Options{Controller: rc})
	require.NoError(t, err)
	defer c.Release()
	assert.Equal(t, 4, c.Matrix.Docs())
}

func TestLoad_MemoryLimit(t *testing.T) {
	store := newStore(t, map[string]string{"matrix": matrixText})
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 8})

	_, err := Load(context.Background(), store, Options{Controller: rc})
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrMemoryLimit)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("MissingMatrix", func(t *testing.T) {
		_, err := Load(context.Background(), blobstore.NewMemoryStore(), Options{})
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("MissingVocabulary", func(t *testing.T) {
		store := newStore(t, map[string]string{"matrix": matrixText})
		rc := resource.NewController(resource.Config{})
		_, err := Load(context.Background(), store, Options{VocabName: "nope", Controller: rc})
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
		assert.Equal(t, int64(0), rc.MemoryUsage())
	})

	t.Run("BadHeader", func(t *testing.T) {
		store := newStore(t, map[string]string{"matrix": "4 x\n"})
		_, err := Load(context.Background(), store, Options{})
		assert.ErrorIs(t, err, matrix.ErrBadHeader)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		store := newStore(t, map[string]string{"matrix": "2 2 1\n3 1 1\n"})
		_, err := Load(context.Background(), store, Options{})
		var oor *matrix.ErrOutOfRange
		assert.ErrorAs(t, err, &oor)
	})

	t.Run("Canceled", func(t *testing.T) {
		store := newStore(t, map[string]string{"matrix": matrixText})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1024})
		_, err := Load(ctx, store, Options{Controller: rc})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadVocabulary(t *testing.T) {
	words, err := ReadVocabulary(strings.NewReader("a\nb \nc\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, words)

	words, err = ReadVocabulary(strings.NewReader("a\nb\nc\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)

	words, err = ReadVocabulary(strings.NewReader(""), 3)
	require.NoError(t, err)
	assert.Empty(t, words)
}
