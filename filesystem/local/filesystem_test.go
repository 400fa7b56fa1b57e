package local_test

import (
	"path/filepath"
	"testing"

	"github.com/bornholm/go-assetgen/filesystem/local"
	"github.com/bornholm/go-assetgen/filesystem/testsuite"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

func TestLocalFileSystem(t *testing.T) {
	testsuite.TestFileSystem(t, func(t *testing.T) webdav.FileSystem {
		// The factory creates missing resource tree roots
		fs, err := local.CreateFileSystemFromOptions(map[string]any{
			"dir": filepath.Join(t.TempDir(), "Android", "src", "main", "res"),
		})
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		return fs
	})
}
