package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

func TestParseFilename(t *testing.T) {
	type testCase struct {
		Filename         string
		ExpectedBasename string
		ExpectedScale    int
	}

	testCases := []testCase{
		{Filename: "icon.png", ExpectedBasename: "icon", ExpectedScale: 1},
		{Filename: "icon@1x.png", ExpectedBasename: "icon", ExpectedScale: 1},
		{Filename: "icon@3x.png", ExpectedBasename: "icon", ExpectedScale: 3},
		{Filename: "icon@5x.PNG", ExpectedBasename: "icon", ExpectedScale: 5},
		{Filename: "icon@2.png", ExpectedBasename: "icon", ExpectedScale: 2},
		{Filename: "icon@7x.png", ExpectedBasename: "icon@7x", ExpectedScale: 1},
		{Filename: "icon@x.png", ExpectedBasename: "icon@x", ExpectedScale: 1},
		{Filename: "icon@.png", ExpectedBasename: "icon@", ExpectedScale: 1},
		{Filename: "@2x.png", ExpectedBasename: "@2x", ExpectedScale: 1},
		{Filename: "a@b@2x.png", ExpectedBasename: "a@b", ExpectedScale: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.Filename, func(t *testing.T) {
			basename, scale := ParseFilename(tc.Filename)

			if e, g := tc.ExpectedBasename, basename; e != g {
				t.Errorf("basename: expected '%s', got '%s'", e, g)
			}

			if e, g := tc.ExpectedScale, scale; e != g {
				t.Errorf("scale: expected %d, got %d", e, g)
			}
		})
	}
}

func TestScanKeepsHighestScale(t *testing.T) {
	dir := createImagesDir(t, map[string]string{
		"icon.png":    "low resolution",
		"icon@2x.png": "high resolution",
		"logo.png":    "logo",
	})

	fs := webdav.Dir(dir)

	images, err := Scan(t.Context(), fs, "/")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(images); e != g {
		t.Fatalf("len(images): expected %d, got %d", e, g)
	}

	icon := images[0]

	if e, g := "icon", icon.Basename; e != g {
		t.Errorf("images[0].Basename: expected '%s', got '%s'", e, g)
	}

	if e, g := 2, icon.Scale; e != g {
		t.Errorf("images[0].Scale: expected %d, got %d", e, g)
	}

	if e, g := "icon@2x.png", icon.Filename; e != g {
		t.Errorf("images[0].Filename: expected '%s', got '%s'", e, g)
	}

	expectedHash, err := Hash(t.Context(), fs, "icon@2x.png")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := expectedHash, icon.Hash; e != g {
		t.Errorf("images[0].Hash: expected '%s', got '%s'", e, g)
	}

	if e, g := "logo", images[1].Basename; e != g {
		t.Errorf("images[1].Basename: expected '%s', got '%s'", e, g)
	}
}

func TestScanTieBreaksOnFilename(t *testing.T) {
	dir := createImagesDir(t, map[string]string{
		"icon@2x.PNG": "upper",
		"icon@2x.png": "lower",
	})

	images, err := Scan(t.Context(), webdav.Dir(dir), "/")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(images); e != g {
		t.Fatalf("len(images): expected %d, got %d", e, g)
	}

	if e, g := "icon@2x.png", images[0].Filename; e != g {
		t.Errorf("images[0].Filename: expected '%s', got '%s'", e, g)
	}
}

func TestScanIgnoresUnsupportedEntries(t *testing.T) {
	dir := createImagesDir(t, map[string]string{
		"photo.jpg":  "jpeg",
		"notes.txt":  "text",
		"button.png": "png",
	})

	if err := os.Mkdir(filepath.Join(dir, "nested.png"), os.ModePerm); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	images, err := Scan(t.Context(), webdav.Dir(dir), "/")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(images); e != g {
		t.Fatalf("len(images): expected %d, got %d", e, g)
	}

	if e, g := "button", images[0].Basename; e != g {
		t.Errorf("images[0].Basename: expected '%s', got '%s'", e, g)
	}

	if e, g := "/button.png", images[0].Path; e != g {
		t.Errorf("images[0].Path: expected '%s', got '%s'", e, g)
	}
}

func TestScanHashIsContentAddressed(t *testing.T) {
	dir := createImagesDir(t, map[string]string{
		"a.png": "same content",
		"b.png": "same content",
		"c.png": "other content",
	})

	images, err := Scan(t.Context(), webdav.Dir(dir), "/", WithConcurrency(1))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(images); e != g {
		t.Fatalf("len(images): expected %d, got %d", e, g)
	}

	if images[0].Hash != images[1].Hash {
		t.Errorf("expected identical hashes for identical content, got '%s' and '%s'", images[0].Hash, images[1].Hash)
	}

	if images[0].Hash == images[2].Hash {
		t.Errorf("expected different hashes for different content")
	}

	if e, g := 32, len(images[0].Hash); e != g {
		t.Errorf("len(hash): expected %d, got %d", e, g)
	}
}

func TestScanFilter(t *testing.T) {
	dir := createImagesDir(t, map[string]string{
		"ic_home.png": "home",
		"splash.png":  "splash",
	})

	filter := WithFilter(func(img Image) (bool, error) {
		return img.Basename != "splash", nil
	})

	images, err := Scan(t.Context(), webdav.Dir(dir), "/", filter)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(images); e != g {
		t.Fatalf("len(images): expected %d, got %d", e, g)
	}

	if e, g := "ic_home", images[0].Basename; e != g {
		t.Errorf("images[0].Basename: expected '%s', got '%s'", e, g)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(t.Context(), webdav.Dir(t.TempDir()), "/images")
	if err == nil {
		t.Fatal("expected an error")
	}

	var explorationErr *ExplorationError
	if !errors.As(err, &explorationErr) {
		t.Fatalf("expected an *ExplorationError, got %T", err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected error to wrap os.ErrNotExist, got %+v", err)
	}
}

func createImagesDir(t *testing.T, files map[string]string) string {
	dir := t.TempDir()

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	return dir
}
