package testsuite

import (
	"context"
	"os"

	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

func DeleteFile(ctx context.Context, fs webdav.FileSystem) error {
	path := "drawable-hdpi/icon.png"

	if err := filesystem.MkdirAll(ctx, fs, "drawable-hdpi", os.ModePerm); err != nil {
		return errors.WithStack(err)
	}

	if err := filesystem.WriteBytes(ctx, fs, path, []byte("content to be deleted"), 0o644); err != nil {
		return errors.WithStack(err)
	}

	exists, err := filesystem.Exists(ctx, fs, path)
	if err != nil {
		return errors.WithStack(err)
	}

	if !exists {
		return errors.New("file should exist before deletion")
	}

	if err := filesystem.Remove(ctx, fs, path); err != nil {
		return errors.WithStack(err)
	}

	if _, err := fs.Stat(ctx, "/"+path); !errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("expected ErrNotExist, got: %v", err)
	}

	return nil
}

func RemoveMissingFile(ctx context.Context, fs webdav.FileSystem) error {
	if err := filesystem.Remove(ctx, fs, "missing/dir/file.png"); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
