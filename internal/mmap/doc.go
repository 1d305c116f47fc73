// Package mmap maps input files read-only into memory.
//
// Term-document matrices are parsed straight out of the mapping, so a large
// corpus file never has to be copied into a heap buffer first.
//
//	m, err := mmap.Open("data/matrix")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) with madvise(2) hints. Windows uses
// CreateFileMapping/MapViewOfFile and ignores hints.
//
// A Mapping is safe for concurrent reads. Close is idempotent; callers must
// not touch the slice returned by Bytes after Close returns.
package mmap
