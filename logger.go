package assetgen

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/net/webdav"
)

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_APPEND | os.O_CREATE | os.O_TRUNC

// LoggerFilesystem logs every mutation of the output tree at debug level.
// Reads are not logged, the cache integrity check stats every recorded output.
type LoggerFilesystem struct {
	logger  *slog.Logger
	backend webdav.FileSystem
}

// Mkdir implements webdav.FileSystem.
func (fs *LoggerFilesystem) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	fs.logger.DebugContext(ctx, "output operation", slog.String("operation", "mkdir"), slog.String("name", name), slog.Any("perm", perm))
	return fs.backend.Mkdir(ctx, name, perm)
}

// OpenFile implements webdav.FileSystem.
func (fs *LoggerFilesystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (webdav.File, error) {
	if flag&writeFlags != 0 {
		fs.logger.DebugContext(ctx, "output operation", slog.String("operation", "write"), slog.String("name", name), slog.Int("flag", flag), slog.Any("perm", perm))
	}
	return fs.backend.OpenFile(ctx, name, flag, perm)
}

// RemoveAll implements webdav.FileSystem.
func (fs *LoggerFilesystem) RemoveAll(ctx context.Context, name string) error {
	fs.logger.DebugContext(ctx, "output operation", slog.String("operation", "removeall"), slog.String("name", name))
	return fs.backend.RemoveAll(ctx, name)
}

// Rename implements webdav.FileSystem.
func (fs *LoggerFilesystem) Rename(ctx context.Context, oldName string, newName string) error {
	fs.logger.DebugContext(ctx, "output operation", slog.String("operation", "rename"), slog.String("oldName", oldName), slog.String("newName", newName))
	return fs.backend.Rename(ctx, oldName, newName)
}

// Stat implements webdav.FileSystem.
func (fs *LoggerFilesystem) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	return fs.backend.Stat(ctx, name)
}

func WithLogger(backend webdav.FileSystem, logger *slog.Logger) *LoggerFilesystem {
	return &LoggerFilesystem{
		backend: backend,
		logger:  logger,
	}
}

func LoggerMiddleware(logger *slog.Logger) Middleware {
	return func(next webdav.FileSystem) webdav.FileSystem {
		return WithLogger(next, logger)
	}
}

var _ webdav.FileSystem = &LoggerFilesystem{}
