// Package blobstore abstracts where clustering inputs live.
//
// A BlobStore hands out read-only Blobs by name. The term-document matrix
// and the vocabulary are read through it, so the same loader works against
// the local file system, memory, MinIO or Amazon S3.
//
// # Built-in Implementations
//
//   - LocalStore: local file system with mmap support
//   - MemoryStore: in-memory blobs, mostly for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 with range reads
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs whose name ends in ".zst" or ".lz4" are decompressed transparently
// by OpenReader and Decompress.
package blobstore
