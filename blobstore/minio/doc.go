// Package minio reads clustering inputs from MinIO and other S3-compatible
// servers (Ceph, Garage, SeaweedFS) through the MinIO Go client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "corpora", "news/")
//	c, err := corpus.Load(ctx, store, corpus.Options{})
package minio
