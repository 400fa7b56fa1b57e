// Package s3 stores manifests as objects of an S3 compatible bucket, so that
// CI workers can share the state of a platform build.
package s3

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const objectName = ".assetgen.json"

type Backend struct {
	client *minio.Client
	bucket string
	prefix string
}

func (b *Backend) key(platform string) string {
	return path.Join(b.prefix, platform, objectName)
}

// Read implements cache.Backend.
func (b *Backend) Read(ctx context.Context, platform string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(platform), minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(err)
	}

	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateError(err)
	}

	return data, nil
}

// Write implements cache.Backend. A single PutObject replaces the previous
// manifest atomically from the point of view of readers.
func (b *Backend) Write(ctx context.Context, platform string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.key(platform), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func translateError(err error) error {
	errRes := minio.ToErrorResponse(err)
	if errRes.Code == "NoSuchKey" {
		return errors.WithStack(cache.ErrNotFound)
	}

	return errors.WithStack(err)
}

func NewBackend(client *minio.Client, bucket string, prefix string) *Backend {
	return &Backend{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

var _ cache.Backend = &Backend{}
