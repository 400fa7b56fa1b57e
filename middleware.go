package assetgen

import "golang.org/x/net/webdav"

// Middleware decorates the filesystem the generated assets are written to.
type Middleware func(next webdav.FileSystem) webdav.FileSystem

func Chain(fs webdav.FileSystem, middlewares ...Middleware) webdav.FileSystem {
	for i := len(middlewares) - 1; i >= 0; i-- {
		fs = middlewares[i](fs)
	}

	return fs
}
