package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/pkg/errors"
)

func TestBackend(t *testing.T) {
	backend := NewBackend(filepath.Join(t.TempDir(), "cache.db"))
	defer func() {
		if err := backend.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	}()

	ctx := t.Context()

	if _, err := backend.Read(ctx, "ios"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected cache.ErrNotFound, got %+v", err)
	}

	if err := backend.Write(ctx, "ios", []byte(`{"images":[],"output":{}}`)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := backend.Write(ctx, "ios", []byte(`{"images":[],"output":{"a":["a.png"]}}`)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := backend.Read(ctx, "ios")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := `{"images":[],"output":{"a":["a.png"]}}`, string(data); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}

	if _, err := backend.Read(ctx, "android"); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("expected cache.ErrNotFound for another platform, got %+v", err)
	}
}
