// Package testsuite checks that a webdav.FileSystem supports every operation
// the generator performs on an output tree.
package testsuite

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/bornholm/go-assetgen"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

type filesystemTestCase struct {
	Name string
	Run  func(ctx context.Context, fs webdav.FileSystem) error
}

var filesystemTestCases = []filesystemTestCase{
	{
		Name: "MkdirAll",
		Run:  MkdirAll,
	},
	{
		Name: "WriteFile",
		Run:  WriteFile,
	},
	{
		Name: "WriteFileReplacesContent",
		Run:  WriteFileReplacesContent,
	},
	{
		Name: "LargeFileWrite",
		Run:  LargeFileWrite,
	},
	{
		Name: "ReadDir",
		Run:  ReadDir,
	},
	{
		Name: "DeleteFile",
		Run:  DeleteFile,
	},
	{
		Name: "RemoveMissingFile",
		Run:  RemoveMissingFile,
	},
	{
		Name: "RemoveIfEmpty",
		Run:  RemoveIfEmpty,
	},
}

// TestFileSystem runs every case against the filesystem returned by factory,
// each one on a fresh instance.
func TestFileSystem(t *testing.T, factory func(t *testing.T) webdav.FileSystem) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, tc := range filesystemTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			fs := assetgen.WithLogger(factory(t), slog.Default())

			if err := tc.Run(ctx, fs); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}
