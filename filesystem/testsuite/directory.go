package testsuite

import (
	"context"
	"os"

	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

func MkdirAll(ctx context.Context, fs webdav.FileSystem) error {
	if err := filesystem.MkdirAll(ctx, fs, "a/b/c", os.ModePerm); err != nil {
		return errors.WithStack(err)
	}

	// Second call on an existing tree must be a no-op
	if err := filesystem.MkdirAll(ctx, fs, "/a/b/c", os.ModePerm); err != nil {
		return errors.WithStack(err)
	}

	info, err := fs.Stat(ctx, "/a/b/c")
	if err != nil {
		return errors.WithStack(err)
	}

	if !info.IsDir() {
		return errors.New("expected a directory")
	}

	if err := filesystem.WriteBytes(ctx, fs, "a/file", []byte("x"), 0o644); err != nil {
		return errors.WithStack(err)
	}

	if err := filesystem.MkdirAll(ctx, fs, "a/file/sub", os.ModePerm); err == nil {
		return errors.New("expected an error when a parent is a regular file")
	}

	return nil
}

func ReadDir(ctx context.Context, fs webdav.FileSystem) error {
	dir := "/drawable-mdpi"

	if err := filesystem.MkdirAll(ctx, fs, dir+"/nested", os.ModePerm); err != nil {
		return errors.WithStack(err)
	}

	files := []string{
		"1.png",
		"2.png",
		"nested/3.png",
	}

	for _, n := range files {
		if err := filesystem.WriteBytes(ctx, fs, dir+"/"+n, []byte(n), 0o644); err != nil {
			return errors.WithStack(err)
		}
	}

	children, err := readDir(ctx, fs, dir)
	if err != nil {
		return errors.WithStack(err)
	}

	// Temporary files of atomic writes must not be left behind
	if e, g := 3, len(children); e != g {
		names := make([]string, 0, len(children))
		for _, c := range children {
			names = append(names, c.Name())
		}
		return errors.Errorf("len(children): expected '%d', got '%d' (%v)", e, g, names)
	}

	return nil
}

func RemoveIfEmpty(ctx context.Context, fs webdav.FileSystem) error {
	if err := filesystem.MkdirAll(ctx, fs, "logo.imageset", os.ModePerm); err != nil {
		return errors.WithStack(err)
	}

	if err := filesystem.WriteBytes(ctx, fs, "logo.imageset/notes.txt", []byte("keep"), 0o644); err != nil {
		return errors.WithStack(err)
	}

	removed, err := filesystem.RemoveIfEmpty(ctx, fs, "logo.imageset")
	if err != nil {
		return errors.WithStack(err)
	}

	if removed {
		return errors.New("non-empty directory should have been kept")
	}

	if err := filesystem.Remove(ctx, fs, "logo.imageset/notes.txt"); err != nil {
		return errors.WithStack(err)
	}

	removed, err = filesystem.RemoveIfEmpty(ctx, fs, "logo.imageset")
	if err != nil {
		return errors.WithStack(err)
	}

	if !removed {
		return errors.New("empty directory should have been removed")
	}

	exists, err := filesystem.Exists(ctx, fs, "logo.imageset")
	if err != nil {
		return errors.WithStack(err)
	}

	if exists {
		return errors.New("directory still exists")
	}

	// A missing directory counts as removed
	removed, err = filesystem.RemoveIfEmpty(ctx, fs, "missing.imageset")
	if err != nil {
		return errors.WithStack(err)
	}

	if !removed {
		return errors.New("missing directory should be reported as removed")
	}

	return nil
}
