package assetgen

import (
	"path/filepath"

	"github.com/bornholm/go-assetgen/layout"
	"github.com/pkg/errors"
)

const defaultImagesDirName = "images"

// Project locates the directories of the host project.
type Project struct {
	// AppResourcesDir holds the per-platform resource trees
	AppResourcesDir string `validate:"required"`
	// PlatformsDir holds one directory per platform, where the manifests of
	// the file cache backend are written
	PlatformsDir string `validate:"required"`
	// ImagesDir defaults to the images directory of AppResourcesDir
	ImagesDir string
	// OutputDir defaults to the platform resource tree of AppResourcesDir
	OutputDir string
}

func (p Project) SourceDir() string {
	if p.ImagesDir != "" {
		return p.ImagesDir
	}

	return filepath.Join(p.AppResourcesDir, defaultImagesDirName)
}

func (p Project) ResourcesDir(platform layout.Platform) (string, error) {
	if p.OutputDir != "" {
		return p.OutputDir, nil
	}

	dir, err := layout.ResourcesDir(p.AppResourcesDir, platform)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return dir, nil
}
