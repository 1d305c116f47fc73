// Package corpus loads a term-document matrix and its vocabulary from a
// blobstore.
//
// The matrix header is read first so the dense matrix can be reserved
// against a resource.Controller before it is allocated. Input bytes pass
// through the controller's IO limiter before decompression, so the limit
// applies to what is actually transferred.
//
//	store := blobstore.NewLocalStore("data")
//	c, err := corpus.Load(ctx, store, corpus.Options{VocabName: "vocabulary"})
//	if err != nil { ... }
//	defer c.Release()
package corpus
