package all

import (
	_ "github.com/bornholm/go-assetgen/cache/file"
	_ "github.com/bornholm/go-assetgen/cache/redis"
	_ "github.com/bornholm/go-assetgen/cache/s3"
	_ "github.com/bornholm/go-assetgen/cache/sqlite"
)
