// Package s3 reads clustering inputs from Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("corpora/news/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	c, err := corpus.Load(ctx, store, corpus.Options{})
//
// # Features
//
//   - Range reads for partial fetches
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints for S3-compatible services
package s3
