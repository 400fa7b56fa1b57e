package testsuite

import (
	"bytes"
	"context"
	"crypto/rand"
	"strings"

	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

func WriteFile(ctx context.Context, fs webdav.FileSystem) error {
	content := "bar"

	if err := filesystem.WriteFile(ctx, fs, "foo.txt", strings.NewReader(content), 0o644); err != nil {
		return errors.WithStack(err)
	}

	data, err := readFile(ctx, fs, "/foo.txt")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := content, string(data); e != g {
		return errors.Errorf("data: expected '%s', got '%s'", e, g)
	}

	return nil
}

func WriteFileReplacesContent(ctx context.Context, fs webdav.FileSystem) error {
	if err := filesystem.WriteBytes(ctx, fs, "file.txt", []byte("a much longer first content"), 0o644); err != nil {
		return errors.WithStack(err)
	}

	if err := filesystem.WriteFile(ctx, fs, "file.txt", strings.NewReader("second"), 0o644); err != nil {
		return errors.WithStack(err)
	}

	data, err := readFile(ctx, fs, "/file.txt")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := "second", string(data); e != g {
		return errors.Errorf("content: expected '%s', got '%s'", e, g)
	}

	return nil
}

func LargeFileWrite(ctx context.Context, fs webdav.FileSystem) error {
	content := make([]byte, 8<<20)

	// Random header to ensure data unicity
	if _, err := rand.Read(content[:32]); err != nil {
		return errors.WithStack(err)
	}

	if err := filesystem.WriteFile(ctx, fs, "largefile.png", bytes.NewReader(content), 0o644); err != nil {
		return errors.WithStack(err)
	}

	info, err := fs.Stat(ctx, "/largefile.png")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := int64(len(content)), info.Size(); e != g {
		return errors.Errorf("info.Size(): expected '%d', got '%d'", e, g)
	}

	data, err := readFile(ctx, fs, "/largefile.png")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := digest(content), digest(data); e != g {
		return errors.Errorf("digest: expected '%s', got '%s'", e, g)
	}

	return nil
}
