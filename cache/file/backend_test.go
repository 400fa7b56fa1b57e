package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/cache/file"
	"github.com/pkg/errors"
)

func TestBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "platforms")
	backend := file.NewBackend(dir)

	if _, err := backend.Read(t.Context(), "ios"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected cache.ErrNotFound, got %v", err)
	}

	for _, content := range []string{`{"images":[]}`, `{"images":[],"output":{}}`} {
		if err := backend.Write(t.Context(), "ios", []byte(content)); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		data, err := backend.Read(t.Context(), "ios")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := content, string(data); e != g {
			t.Errorf("expected %q, got %q", e, g)
		}
	}

	entries, err := os.ReadDir(filepath.Join(dir, "ios"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(entries); e != g {
		t.Fatalf("expected %d entry, got %d", e, g)
	}

	if e, g := file.FileName, entries[0].Name(); e != g {
		t.Errorf("expected '%s', got '%s'", e, g)
	}

	if _, err := os.Stat(backend.Path("ios")); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}
}
