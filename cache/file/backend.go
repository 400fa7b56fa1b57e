package file

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/bornholm/go-assetgen/filesystem/local"
	"github.com/pkg/errors"
)

const FileName = ".assetgen.json"

type Backend struct {
	dir string
}

// Path returns the manifest location of platform.
func (b *Backend) Path(platform string) string {
	return filepath.Join(b.dir, platform, FileName)
}

func (b *Backend) name(platform string) string {
	return path.Join("/", platform, FileName)
}

// Read implements cache.Backend.
func (b *Backend) Read(ctx context.Context, platform string) ([]byte, error) {
	fs := local.NewFileSystem(b.dir)

	file, err := fs.OpenFile(ctx, b.name(platform), os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithStack(cache.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// Write implements cache.Backend. The manifest replaces the previous one
// atomically.
func (b *Backend) Write(ctx context.Context, platform string, data []byte) error {
	fs, err := filesystem.New(local.Type, map[string]any{"dir": b.dir})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := filesystem.MkdirAll(ctx, fs, path.Join("/", platform), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory of platform '%s'", platform)
	}

	if err := filesystem.WriteBytes(ctx, fs, b.name(platform), data, 0o644); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewBackend(dir string) *Backend {
	return &Backend{dir: dir}
}

var _ cache.Backend = &Backend{}
