package layout

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Platform string

const (
	IOS     Platform = "ios"
	Android Platform = "android"
)

// Platforms lists every supported platform in canonical form.
var Platforms = []Platform{IOS, Android}

// Normalize returns the canonical form of name and whether it designates a
// supported platform.
func Normalize(name string) (Platform, bool) {
	platform := Platform(strings.ToLower(strings.TrimSpace(name)))

	switch platform {
	case IOS, Android:
		return platform, true
	default:
		return platform, false
	}
}

// ResourcesDir returns the platform resource tree inside the project
// App_Resources directory.
func ResourcesDir(appResourcesDir string, platform Platform) (string, error) {
	switch platform {
	case IOS:
		return filepath.Join(appResourcesDir, "iOS", "Assets.xcassets"), nil
	case Android:
		return filepath.Join(appResourcesDir, "Android", "src", "main", "res"), nil
	default:
		return "", &UnsupportedPlatformError{Platform: platform}
	}
}

type UnsupportedPlatformError struct {
	Platform Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform '%s'", e.Platform)
}
