package main

import (
	"context"
	"encoding"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const envPrefix = "ASSETGEN_"

type config struct {
	Project   projectConfig `json:"project" yaml:"project" envPrefix:"PROJECT_"`
	Platforms []string      `json:"platforms" yaml:"platforms" env:"PLATFORMS" validate:"min=1"`
	Cache     cacheConfig   `json:"cache" yaml:"cache" envPrefix:"CACHE_"`
	Output    outputConfig  `json:"output" yaml:"output" envPrefix:"OUTPUT_"`
	Resize    resizeConfig  `json:"resize" yaml:"resize" envPrefix:"RESIZE_"`
	// Filter is an expression selecting the source images to process
	Filter      string `json:"filter" yaml:"filter" env:"FILTER"`
	Concurrency int    `json:"concurrency" yaml:"concurrency" env:"CONCURRENCY" validate:"min=0"`
}

type projectConfig struct {
	AppResourcesDir string `json:"appResourcesDir" yaml:"appResourcesDir" env:"APP_RESOURCES_DIR,expand" validate:"required"`
	PlatformsDir    string `json:"platformsDir" yaml:"platformsDir" env:"PLATFORMS_DIR,expand" validate:"required"`
	ImagesDir       string `json:"imagesDir" yaml:"imagesDir" env:"IMAGES_DIR,expand"`
	OutputDir       string `json:"outputDir" yaml:"outputDir" env:"OUTPUT_DIR,expand"`
}

type cacheConfig struct {
	Type    string   `json:"type" yaml:"type" env:"TYPE" validate:"required"`
	Options *rawJSON `json:"options" yaml:"options" env:"OPTIONS,expand"`
}

// outputConfig replaces the platform resource tree of the project by a
// registered filesystem, shared by every platform.
type outputConfig struct {
	Type    string   `json:"type" yaml:"type" env:"TYPE"`
	Options *rawJSON `json:"options" yaml:"options" env:"OPTIONS,expand"`
}

type resizeConfig struct {
	Filter      string `json:"filter" yaml:"filter" env:"FILTER" validate:"required"`
	Compression string `json:"compression" yaml:"compression" env:"COMPRESSION" validate:"required,oneof=default none speed best"`
}

func defaultConfig() *config {
	return &config{
		Project: projectConfig{
			AppResourcesDir: "app/App_Resources",
			PlatformsDir:    "platforms",
		},
		Platforms: []string{"ios", "android"},
		Cache: cacheConfig{
			Type: "file",
		},
		Resize: resizeConfig{
			Filter:      "lanczos",
			Compression: "default",
		},
	}
}

// loadConfig reads the configuration file, if any, then applies environment
// overrides and validates the result.
func loadConfig(ctx context.Context, path string) (*config, error) {
	conf := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "could not read configuration file '%s'", path)
	}

	if data != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, conf); err != nil {
				return nil, errors.Wrapf(err, "could not parse configuration file '%s'", path)
			}
		default:
			if err := json.Unmarshal(data, conf); err != nil {
				return nil, errors.Wrapf(err, "could not parse configuration file '%s'", path)
			}
		}
	}

	if err := env.ParseWithOptions(conf, env.Options{Prefix: envPrefix}); err != nil {
		return nil, errors.Wrap(err, "could not parse environment variables")
	}

	validate := validator.New()
	if err := validate.StructCtx(ctx, conf); err != nil {
		return nil, errors.Wrap(err, "could not validate configuration")
	}

	return conf, nil
}

// cacheOptions returns the backend options, pointing the file backend at the
// platforms directory when none are given.
func (c *config) cacheOptions() any {
	if c.Cache.Options != nil && c.Cache.Options.Value != nil {
		return c.Cache.Options.Value
	}

	if c.Cache.Type == "file" {
		return map[string]any{"dir": c.Project.PlatformsDir}
	}

	return nil
}

func (c *config) outputOptions() any {
	if c.Output.Options == nil {
		return nil
	}

	return c.Output.Options.Value
}

type rawJSON struct {
	Value any
}

// UnmarshalJSON implements [json.Unmarshaler].
func (j *rawJSON) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &j.Value); err != nil {
		return err
	}

	return nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (j *rawJSON) UnmarshalText(text []byte) error {
	if err := json.Unmarshal(text, &j.Value); err != nil {
		return err
	}

	return nil
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (j *rawJSON) UnmarshalYAML(value *yaml.Node) error {
	if err := value.Decode(&j.Value); err != nil {
		return err
	}

	return nil
}

var _ encoding.TextUnmarshaler = &rawJSON{}
var _ json.Unmarshaler = &rawJSON{}
var _ yaml.Unmarshaler = &rawJSON{}
