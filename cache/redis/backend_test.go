package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bornholm/go-assetgen/cache"
	"github.com/pkg/errors"
)

func TestBackend(t *testing.T) {
	server := miniredis.RunT(t)

	backend, err := CreateBackendFromOptions(map[string]any{
		"address": server.Addr(),
		"prefix":  "project",
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer backend.(*Backend).Close()

	ctx := t.Context()

	if _, err := backend.Read(ctx, "ios"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected cache.ErrNotFound, got %+v", err)
	}

	manifest := []byte(`{"images":[],"output":{}}`)

	if err := backend.Write(ctx, "ios", manifest); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := backend.Read(ctx, "ios")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := string(manifest), string(data); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}

	if !server.Exists("project/ios/assetgen.json") {
		t.Errorf("expected key to be prefixed, got keys %v", server.Keys())
	}

	if _, err := backend.Read(ctx, "android"); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("platforms should not share manifests, got %+v", err)
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := CreateBackendFromOptions(map[string]any{}); err == nil {
		t.Error("expected missing address to be rejected")
	}
}
