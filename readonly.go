package assetgen

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

var ErrReadOnly = errors.New("read-only filesystem")

type Operation string

const (
	OperationMkdir  Operation = "mkdir"
	OperationWrite  Operation = "write"
	OperationRemove Operation = "remove"
	OperationRename Operation = "rename"
)

// ReadOnlyError reports a mutation attempted through a ReadOnlyFilesystem.
type ReadOnlyError struct {
	Operation Operation
	Name      string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("could not %s '%s': %s", e.Operation, e.Name, ErrReadOnly)
}

func (e *ReadOnlyError) Unwrap() error {
	return ErrReadOnly
}

// ReadOnlyFilesystem rejects every mutation. It guards the output tree while
// only checking whether generation is needed.
type ReadOnlyFilesystem struct {
	backend webdav.FileSystem
}

// Mkdir implements webdav.FileSystem.
func (fs *ReadOnlyFilesystem) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	return &ReadOnlyError{Operation: OperationMkdir, Name: name}
}

// OpenFile implements webdav.FileSystem.
func (fs *ReadOnlyFilesystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (webdav.File, error) {
	if flag&writeFlags != 0 {
		return nil, &ReadOnlyError{Operation: OperationWrite, Name: name}
	}

	return fs.backend.OpenFile(ctx, name, flag, perm)
}

// RemoveAll implements webdav.FileSystem.
func (fs *ReadOnlyFilesystem) RemoveAll(ctx context.Context, name string) error {
	return &ReadOnlyError{Operation: OperationRemove, Name: name}
}

// Rename implements webdav.FileSystem.
func (fs *ReadOnlyFilesystem) Rename(ctx context.Context, oldName string, newName string) error {
	return &ReadOnlyError{Operation: OperationRename, Name: oldName}
}

// Stat implements webdav.FileSystem.
func (fs *ReadOnlyFilesystem) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	return fs.backend.Stat(ctx, name)
}

func WithReadOnly(backend webdav.FileSystem) *ReadOnlyFilesystem {
	return &ReadOnlyFilesystem{backend: backend}
}

func ReadOnlyMiddleware() Middleware {
	return func(next webdav.FileSystem) webdav.FileSystem {
		return WithReadOnly(next)
	}
}

var _ webdav.FileSystem = &ReadOnlyFilesystem{}
