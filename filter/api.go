package filter

import (
	"path"
	"strings"

	"github.com/bornholm/go-assetgen/explorer"
	"github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

func glob(params ...any) (any, error) {
	pattern, name := params[0].(string), params[1].(string)

	matched, err := path.Match(pattern, name)
	if err != nil {
		return false, errors.Wrapf(err, "invalid glob pattern '%s'", pattern)
	}

	return matched, nil
}

// hasScaleSuffix reports whether filename carries a "@Nx" suffix the explorer
// recognizes as a scale.
func hasScaleSuffix(params ...any) (any, error) {
	filename := params[0].(string)
	basename, _ := explorer.ParseFilename(filename)
	return basename != strings.TrimSuffix(filename, path.Ext(filename)), nil
}

// WithFilterAPI exposes the helper functions available to filter
// expressions.
func WithFilterAPI() []expr.Option {
	return []expr.Option{
		expr.Function("glob", glob, new(func(string, string) bool)),
		expr.Function("hasScaleSuffix", hasScaleSuffix, new(func(string) bool)),
	}
}
