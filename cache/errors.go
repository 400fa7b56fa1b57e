package cache

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by backends when no manifest has been written
	// yet for a platform.
	ErrNotFound      = errors.New("manifest not found")
	ErrNotRegistered = errors.New("not registered")
)

// ReadError reports a manifest which exists but could not be read or parsed.
type ReadError struct {
	Platform string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to retrieve images generator cache for platform '%s': %v", e.Platform, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a manifest which could not be persisted.
type WriteError struct {
	Platform string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to save images generator cache for platform '%s': %v", e.Platform, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
