package explorer

import (
	"path"
	"strings"
)

const Extension = ".png"

// Image is one source raster with its identity.
type Image struct {
	// Path inside the explored filesystem
	Path     string
	Filename string
	// Basename is the filename without extension and without scale suffix
	Basename string
	Scale    int
	// Hash is the hex encoded xxh3-128 digest of the file content
	Hash string
}

// ParseFilename splits filename into its logical basename and its resolution
// scale. Only a single digit between 1 and 5 after the last "@" is
// recognized; anything else leaves the scale at 1 and keeps the suffix in the
// basename.
func ParseFilename(filename string) (basename string, scale int) {
	stem := strings.TrimSuffix(filename, path.Ext(filename))

	scaleIndex := strings.LastIndex(stem, "@")
	if scaleIndex <= 0 || scaleIndex+1 >= len(stem) {
		return stem, 1
	}

	c := stem[scaleIndex+1]
	if c < '1' || c > '5' {
		return stem, 1
	}

	return stem[:scaleIndex], int(c - '0')
}

// IsSupported reports whether filename has the supported raster extension.
func IsSupported(filename string) bool {
	return strings.EqualFold(path.Ext(filename), Extension)
}
