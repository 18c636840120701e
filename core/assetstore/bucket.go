package assetstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"controller-cleaner/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketBackend stores documents as objects in an S3 compatible bucket.
type BucketBackend struct {
	client    storage.Client
	bucket    string
	prefix    string
	extension string
}

// NewBucketBackend returns a backend storing objects under prefix in bucket.
func NewBucketBackend(client storage.Client, bucket, prefix, extension string) *BucketBackend {
	if extension == "" {
		extension = DefaultExtension
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BucketBackend{client: client, bucket: bucket, prefix: prefix, extension: extension}
}

func (b *BucketBackend) Name() string { return "bucket" }

func (b *BucketBackend) objectName(key string) string {
	return b.prefix + key + b.extension
}

func (b *BucketBackend) List(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: b.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, b.extension) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(obj.Key, b.prefix), b.extension))
	}
	return keys, nil
}

func (b *BucketBackend) Read(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, b.readErr(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, b.readErr(key, err)
	}
	return data, nil
}

func (b *BucketBackend) readErr(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("failed to get %s: %w", key, err)
}

func (b *BucketBackend) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.objectName(key), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/yaml"})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (b *BucketBackend) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", b.bucket, err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
	}
	return nil
}
