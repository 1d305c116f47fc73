package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a blob's bytes are encoded.
type Compression int

const (
	// CompressionNone is a plain blob.
	CompressionNone Compression = iota
	// CompressionZstd is a zstd stream (".zst").
	CompressionZstd
	// CompressionLZ4 is an LZ4 frame (".lz4").
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionOf infers the compression from a blob name's extension.
func CompressionOf(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Stream returns a sequential reader over the whole blob.
// Mappable blobs are read without copying.
func Stream(ctx context.Context, b Blob) (io.ReadCloser, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return b.ReadRange(ctx, 0, b.Size())
}

// Decompress wraps r with the decoder for c.
// Closing the returned reader releases the decoder but not r.
func Decompress(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// OpenReader opens the named blob and returns a reader over its
// decompressed contents. Closing the reader closes the blob.
func OpenReader(ctx context.Context, store BlobStore, name string) (io.ReadCloser, error) {
	return OpenReaderWith(ctx, store, name, nil)
}

// OpenReaderWith is like OpenReader but passes the raw stream through wrap
// before decompression. wrap may be nil.
func OpenReaderWith(ctx context.Context, store BlobStore, name string, wrap func(io.Reader) io.Reader) (io.ReadCloser, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	raw, err := Stream(ctx, b)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	var src io.Reader = raw
	if wrap != nil {
		src = wrap(raw)
	}

	dec, err := Decompress(CompressionOf(name), src)
	if err != nil {
		_ = raw.Close()
		_ = b.Close()
		return nil, err
	}

	return &blobReader{ReadCloser: dec, closers: []io.Closer{raw, b}}, nil
}

type blobReader struct {
	io.ReadCloser
	closers []io.Closer
}

func (r *blobReader) Close() error {
	errs := []error{r.ReadCloser.Close()}
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
