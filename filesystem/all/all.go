package all

import (
	_ "github.com/bornholm/go-assetgen/filesystem/local"
	_ "github.com/bornholm/go-assetgen/filesystem/memory"
)
