// Package redis stores manifests as keys of a Redis server.
package redis

import (
	"context"
	"path"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyName = "assetgen.json"

type Backend struct {
	client *redis.Client
	prefix string
}

func (b *Backend) key(platform string) string {
	return path.Join(b.prefix, platform, keyName)
}

// Read implements cache.Backend.
func (b *Backend) Read(ctx context.Context, platform string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(platform)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.WithStack(cache.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return data, nil
}

// Write implements cache.Backend. The manifest never expires.
func (b *Backend) Write(ctx context.Context, platform string, data []byte) error {
	if err := b.client.Set(ctx, b.key(platform), data, 0).Err(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Backend) Close() error {
	if err := b.client.Close(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewBackend(client *redis.Client, prefix string) *Backend {
	return &Backend{
		client: client,
		prefix: prefix,
	}
}

var _ cache.Backend = &Backend{}
