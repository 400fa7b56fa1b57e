package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	type testCase struct {
		Name     string
		Filename string
		Content  string
		Env      map[string]string
		Run      func(t *testing.T, conf *config, err error)
	}

	testCases := []testCase{
		{
			Name:     "MissingFileUsesDefaults",
			Filename: "missing.yaml",
			Run: func(t *testing.T, conf *config, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "file", conf.Cache.Type; e != g {
					t.Errorf("conf.Cache.Type: expected '%s', got '%s'", e, g)
				}

				options, ok := conf.cacheOptions().(map[string]any)
				if !ok {
					t.Fatalf("unexpected cache options type %T", conf.cacheOptions())
				}

				if e, g := "platforms", options["dir"]; e != g {
					t.Errorf("cache dir: expected '%s', got '%v'", e, g)
				}
			},
		},
		{
			Name:     "YAML",
			Filename: "assetgen.yaml",
			Content: `
project:
  appResourcesDir: src/App_Resources
  platformsDir: build
platforms: [ios]
cache:
  type: sqlite
  options:
    path: build/assetgen.db
resize:
  filter: box
  compression: best
filter: scale >= 2
`,
			Run: func(t *testing.T, conf *config, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "src/App_Resources", conf.Project.AppResourcesDir; e != g {
					t.Errorf("conf.Project.AppResourcesDir: expected '%s', got '%s'", e, g)
				}

				if e, g := 1, len(conf.Platforms); e != g {
					t.Errorf("len(conf.Platforms): expected %d, got %d", e, g)
				}

				options, ok := conf.cacheOptions().(map[string]any)
				if !ok {
					t.Fatalf("unexpected cache options type %T", conf.cacheOptions())
				}

				if e, g := "build/assetgen.db", options["path"]; e != g {
					t.Errorf("cache path: expected '%s', got '%v'", e, g)
				}

				if e, g := "scale >= 2", conf.Filter; e != g {
					t.Errorf("conf.Filter: expected '%s', got '%s'", e, g)
				}

				if _, err := pipelineOptions(conf); err != nil {
					t.Errorf("%+v", errors.WithStack(err))
				}
			},
		},
		{
			Name:     "JSONWithEnvOverride",
			Filename: "assetgen.json",
			Content:  `{"project":{"appResourcesDir":"res","platformsDir":"out"},"resize":{"filter":"linear","compression":"speed"}}`,
			Env: map[string]string{
				"ASSETGEN_PROJECT_PLATFORMS_DIR": "override",
				"ASSETGEN_PLATFORMS":             "android",
				"ASSETGEN_CONCURRENCY":           "2",
			},
			Run: func(t *testing.T, conf *config, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "res", conf.Project.AppResourcesDir; e != g {
					t.Errorf("conf.Project.AppResourcesDir: expected '%s', got '%s'", e, g)
				}

				if e, g := "override", conf.Project.PlatformsDir; e != g {
					t.Errorf("conf.Project.PlatformsDir: expected '%s', got '%s'", e, g)
				}

				if e, g := "android", conf.Platforms[0]; len(conf.Platforms) != 1 || e != g {
					t.Errorf("conf.Platforms: expected [%s], got %v", e, conf.Platforms)
				}

				if e, g := 2, conf.Concurrency; e != g {
					t.Errorf("conf.Concurrency: expected %d, got %d", e, g)
				}
			},
		},
		{
			Name:     "MemoryOutput",
			Filename: "assetgen.yaml",
			Content:  "output:\n  type: memory\n",
			Run: func(t *testing.T, conf *config, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if _, err := pipelineOptions(conf); err != nil {
					t.Errorf("%+v", errors.WithStack(err))
				}

				conf.Output.Type = "unknown"

				if _, err := pipelineOptions(conf); !errors.Is(err, filesystem.ErrNotRegistered) {
					t.Errorf("expected ErrNotRegistered, got %v", err)
				}
			},
		},
		{
			Name:     "InvalidCompression",
			Filename: "assetgen.json",
			Content:  `{"resize":{"compression":"ultra"}}`,
			Run: func(t *testing.T, conf *config, err error) {
				if err == nil {
					t.Fatal("expected a validation error")
				}
			},
		},
		{
			Name:     "UnknownFilter",
			Filename: "assetgen.yaml",
			Content:  "filter: 'scale +'\n",
			Run: func(t *testing.T, conf *config, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if _, err := pipelineOptions(conf); err == nil {
					t.Error("expected a filter compilation error")
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			for k, v := range tc.Env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), tc.Filename)

			if tc.Content != "" {
				if err := os.WriteFile(path, []byte(tc.Content), 0o644); err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}
			}

			conf, err := loadConfig(context.Background(), path)
			tc.Run(t, conf, err)
		})
	}
}
