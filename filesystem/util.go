package filesystem

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

// MkdirAll creates name and every missing parent. Existing directories are
// not an error.
func MkdirAll(ctx context.Context, fs webdav.FileSystem, name string, perm os.FileMode) error {
	name = clean(name)
	if name == "/" {
		return nil
	}

	current := ""
	for _, segment := range strings.Split(strings.Trim(name, "/"), "/") {
		current += "/" + segment

		info, err := fs.Stat(ctx, current)
		if err == nil {
			if !info.IsDir() {
				return errors.Errorf("'%s' exists and is not a directory", current)
			}
			continue
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errors.WithStack(err)
		}

		if err := fs.Mkdir(ctx, current, perm); err != nil && !errors.Is(err, os.ErrExist) {
			return errors.WithStack(err)
		}
	}

	return nil
}

// WriteFile copies r into name through a sibling temporary file which is then
// renamed over the destination. Readers never observe a partial file.
func WriteFile(ctx context.Context, fs webdav.FileSystem, name string, r io.Reader, perm os.FileMode) (err error) {
	name = clean(name)
	tmp := path.Join(path.Dir(name), ".tmp-"+path.Base(name)+"-"+uuid.NewString())

	file, err := fs.OpenFile(ctx, tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			_ = fs.RemoveAll(ctx, tmp)
		}
	}()

	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		return errors.WithStack(err)
	}

	if err := file.Close(); err != nil {
		return errors.WithStack(err)
	}

	if err := fs.Rename(ctx, tmp, name); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// WriteBytes is a WriteFile shortcut for in-memory content.
func WriteBytes(ctx context.Context, fs webdav.FileSystem, name string, data []byte, perm os.FileMode) error {
	return WriteFile(ctx, fs, name, bytes.NewReader(data), perm)
}

// Remove deletes name. A missing file or parent directory counts as success.
func Remove(ctx context.Context, fs webdav.FileSystem, name string) error {
	if err := fs.RemoveAll(ctx, clean(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.WithStack(err)
	}

	return nil
}

// RemoveIfEmpty deletes the directory name when it has no children left. It
// reports whether the directory is gone.
func RemoveIfEmpty(ctx context.Context, fs webdav.FileSystem, name string) (bool, error) {
	name = clean(name)

	dir, err := fs.OpenFile(ctx, name, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, errors.WithStack(err)
	}

	children, err := dir.Readdir(0)
	closeErr := dir.Close()

	if err != nil && !errors.Is(err, io.EOF) {
		return false, errors.WithStack(err)
	}

	if closeErr != nil {
		return false, errors.WithStack(closeErr)
	}

	if len(children) > 0 {
		return false, nil
	}

	if err := Remove(ctx, fs, name); err != nil {
		return false, err
	}

	return true, nil
}

// Exists reports whether name can be stat'ed.
func Exists(ctx context.Context, fs webdav.FileSystem, name string) (bool, error) {
	_, err := fs.Stat(ctx, clean(name))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, errors.WithStack(err)
}

func clean(name string) string {
	if name == "" {
		return "/"
	}

	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))

	return name
}
