package testsuite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
	"golang.org/x/net/webdav"
)

func digest(data []byte) string {
	sum := xxh3.Hash128(data)

	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], sum.Hi)
	binary.BigEndian.PutUint64(buf[8:], sum.Lo)

	return hex.EncodeToString(buf[:])
}

func readFile(ctx context.Context, fs webdav.FileSystem, name string) ([]byte, error) {
	file, err := fs.OpenFile(ctx, name, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

func readDir(ctx context.Context, fs webdav.FileSystem, name string) ([]os.FileInfo, error) {
	dir, err := fs.OpenFile(ctx, name, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer dir.Close()

	children, err := dir.Readdir(-1)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithStack(err)
	}

	return children, nil
}
