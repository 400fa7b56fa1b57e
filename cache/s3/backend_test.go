package s3

import (
	"context"
	"testing"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	testminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a docker daemon")
	}

	backend, close := createBackend(t)
	defer close()

	ctx := t.Context()

	if _, err := backend.Read(ctx, "android"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected cache.ErrNotFound, got %+v", err)
	}

	manifest := []byte(`{"images":[],"output":{}}`)

	if err := backend.Write(ctx, "android", manifest); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := backend.Read(ctx, "android")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := string(manifest), string(data); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}
}

func createBackend(t testing.TB) (*Backend, func()) {
	ctx := context.Background()

	const (
		minioUsername = "miniousername"
		minioPassword = "miniopassword"
	)

	minioContainer, err := testminio.Run(
		ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		testminio.WithUsername(minioUsername),
		testminio.WithPassword(minioPassword),
	)
	if err != nil {
		t.Fatalf("failed to start container: %+v", errors.WithStack(err))
	}

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("could not retrieve connection string: %+v", errors.WithStack(err))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioUsername, minioPassword, ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %+v", errors.WithStack(err))
	}

	const bucketName = "assetgen"

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		t.Fatalf("failed to create minio bucket: %+v", errors.WithStack(err))
	}

	close := func() {
		if err := testcontainers.TerminateContainer(minioContainer); err != nil {
			t.Fatalf("failed to terminate container: %+v", errors.WithStack(err))
		}
	}

	return NewBackend(client, bucketName, "projects/demo"), close
}
