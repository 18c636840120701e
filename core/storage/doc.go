// Package storage wraps the MinIO client used by the bucket document backend.
//
// The Client interface only carries the calls the backend needs: bucket checks,
// listing, reading and writing objects. It works against AWS S3 as well as a
// self-hosted MinIO, and core/storage/mocks provides a testify mock of it.
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
