package assetgen

import (
	"context"
	"log/slog"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/layout"
	"github.com/pkg/errors"
)

// ShouldPrepare answers the host build tool asking whether the asset phase
// must run for platformName. Unsupported platforms never need it.
func ShouldPrepare(ctx context.Context, project Project, platformName string, backend cache.Backend, funcs ...OptionFunc) (bool, error) {
	platform, supported := layout.Normalize(platformName)
	if !supported {
		return false, nil
	}

	pipeline, err := NewPipeline(project, platform, backend, funcs...)
	if err != nil {
		return false, errors.WithStack(err)
	}

	needed, err := pipeline.NeedsGeneration(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return needed, nil
}

// Prepare runs the asset phase for platformName. It is a no-op for
// unsupported platforms.
func Prepare(ctx context.Context, project Project, platformName string, backend cache.Backend, funcs ...OptionFunc) error {
	platform, supported := layout.Normalize(platformName)
	if !supported {
		NewOptions(funcs...).Logger.DebugContext(ctx, "ignoring unsupported platform", slog.String("platform", platformName))
		return nil
	}

	pipeline, err := NewPipeline(project, platform, backend, funcs...)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := pipeline.Run(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
