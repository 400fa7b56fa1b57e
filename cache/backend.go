package cache

import (
	"context"

	"github.com/pkg/errors"
)

// Backend stores serialized manifests, one per platform.
type Backend interface {
	// Read returns ErrNotFound when no manifest exists for platform
	Read(ctx context.Context, platform string) ([]byte, error)
	// Write replaces the whole manifest of platform in a single operation
	Write(ctx context.Context, platform string, data []byte) error
}

type Type string

type Factory func(options any) (Backend, error)

var factories = make(map[Type]Factory, 0)

func Register(backendType Type, factory Factory) {
	factories[backendType] = factory
}

func Registered() []Type {
	types := make([]Type, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	return types
}

func New(backendType Type, options any) (Backend, error) {
	factory, exists := factories[backendType]
	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "no cache backend associated with type '%s'", backendType)
	}

	backend, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return backend, nil
}
