// Package layout maps a logical image onto the files a platform expects in
// its resource tree, and on the scale each file must be rendered at.
package layout

import (
	"encoding/json"
	"math"
	"path"
)

const (
	iosContainerSuffix = ".imageset"
	iosDescriptorName  = "Contents.json"
	outputExtension    = ".png"
)

// ResizeSpec is one output file, relative to the platform resource tree, and
// its scale relative to the 1x logical width of the source.
type ResizeSpec struct {
	Path  string
	Scale float64
}

type density struct {
	Bucket string
	Scale  float64
}

var androidDensities = []density{
	{Bucket: "drawable-ldpi", Scale: 0.75},
	{Bucket: "drawable-mdpi", Scale: 1},
	{Bucket: "drawable-hdpi", Scale: 1.5},
	{Bucket: "drawable-xhdpi", Scale: 2},
	{Bucket: "drawable-xxhdpi", Scale: 3},
}

var iosScales = []struct {
	Suffix string
	Tag    string
	Scale  float64
}{
	{Suffix: "", Tag: "1x", Scale: 1},
	{Suffix: "@2x", Tag: "2x", Scale: 2},
	{Suffix: "@3x", Tag: "3x", Scale: 3},
}

// OutputsFor returns the ordered list of files to render for basename.
func OutputsFor(platform Platform, basename string) ([]ResizeSpec, error) {
	switch platform {
	case IOS:
		container, _ := Container(platform, basename)
		specs := make([]ResizeSpec, 0, len(iosScales))
		for _, s := range iosScales {
			specs = append(specs, ResizeSpec{
				Path:  path.Join(container, basename+s.Suffix+outputExtension),
				Scale: s.Scale,
			})
		}
		return specs, nil

	case Android:
		specs := make([]ResizeSpec, 0, len(androidDensities))
		for _, d := range androidDensities {
			specs = append(specs, ResizeSpec{
				Path:  path.Join(d.Bucket, basename+outputExtension),
				Scale: d.Scale,
			})
		}
		return specs, nil

	default:
		return nil, &UnsupportedPlatformError{Platform: platform}
	}
}

// Container returns the per-basename directory holding every output of
// basename, for platforms which group them.
func Container(platform Platform, basename string) (string, bool) {
	if platform != IOS {
		return "", false
	}

	return basename + iosContainerSuffix, true
}

type descriptorImage struct {
	Idiom    string `json:"idiom"`
	Filename string `json:"filename"`
	Scale    string `json:"scale"`
}

type descriptorInfo struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

type descriptor struct {
	Images []descriptorImage `json:"images"`
	Info   descriptorInfo    `json:"info"`
}

// Descriptor returns the metadata file which must accompany the outputs of
// basename, if the platform needs one.
func Descriptor(platform Platform, basename string) (string, []byte, bool) {
	if platform != IOS {
		return "", nil, false
	}

	d := descriptor{
		Images: make([]descriptorImage, 0, len(iosScales)),
		Info:   descriptorInfo{Version: 1, Author: "xcode"},
	}

	for _, s := range iosScales {
		d.Images = append(d.Images, descriptorImage{
			Idiom:    "universal",
			Filename: basename + s.Suffix + outputExtension,
			Scale:    s.Tag,
		})
	}

	// Marshalling a fixed struct of strings and ints cannot fail
	data, _ := json.MarshalIndent(d, "", "  ")

	container, _ := Container(platform, basename)

	return path.Join(container, iosDescriptorName), data, true
}

// TargetWidth normalizes sourceWidth to the 1x logical width of a source
// authored at sourceScale, then applies the relative scale of an output.
func TargetWidth(sourceWidth int, sourceScale int, scale float64) int {
	if sourceScale < 1 {
		sourceScale = 1
	}

	width := int(math.Round(float64(sourceWidth) / float64(sourceScale) * scale))
	if width < 1 {
		width = 1
	}

	return width
}
