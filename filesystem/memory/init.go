// Package memory registers an in-memory filesystem, used as a disposable
// output tree.
package memory

import (
	"github.com/bornholm/go-assetgen/filesystem"
	"golang.org/x/net/webdav"
)

const Type filesystem.Type = "memory"

func init() {
	filesystem.Register(Type, func(options any) (webdav.FileSystem, error) {
		return webdav.NewMemFS(), nil
	})
}
