// Package assetgen keeps a platform resource tree in sync with a directory of
// source images. A Pipeline scans the images, compares them with the manifest
// of the previous run and only regenerates what changed.
package assetgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/diff"
	"github.com/bornholm/go-assetgen/explorer"
	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/bornholm/go-assetgen/filesystem/local"
	"github.com/bornholm/go-assetgen/generator"
	"github.com/bornholm/go-assetgen/layout"
	"github.com/bornholm/go-assetgen/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

type Pipeline struct {
	project  Project
	platform layout.Platform
	backend  cache.Backend
	opts     *Options
}

// Report summarizes a run.
type Report struct {
	Platform  layout.Platform
	Created   []string
	Removed   []string
	Unchanged []string
	// Saved is false when the manifest did not need to be rewritten
	Saved    bool
	Duration time.Duration
}

// NeedsGeneration reports whether Run would change the output tree. The
// output tree is only read.
func (p *Pipeline) NeedsGeneration(ctx context.Context) (bool, error) {
	images, manifest, _, err := p.inspect(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return diff.NeedsGeneration(images, manifest.Images), nil
}

// Plan computes the changes Run would apply without applying them.
func (p *Pipeline) Plan(ctx context.Context) (diff.Plan, error) {
	images, manifest, _, err := p.inspect(ctx)
	if err != nil {
		return diff.Plan{}, errors.WithStack(err)
	}

	return diff.Compute(images, manifest.Images), nil
}

// Run brings the output tree in sync with the source images. The manifest is
// saved only when every image was processed successfully.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	report := &Report{Platform: p.platform}

	err := p.run(ctx, report)

	report.Duration = time.Since(start)

	if p.opts.Metrics != nil {
		p.opts.Metrics.Observe(metrics.Run{
			Platform:  string(p.platform),
			Created:   len(report.Created),
			Removed:   len(report.Removed),
			Unchanged: len(report.Unchanged),
			Duration:  report.Duration,
			Err:       err,
		})
	}

	if err != nil {
		return report, errors.WithStack(err)
	}

	p.opts.Logger.InfoContext(
		ctx, "assets synchronized",
		slog.String("platform", string(p.platform)),
		slog.Bool("saved", report.Saved),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *Report) error {
	output, err := p.output(false)
	if err != nil {
		return errors.WithStack(err)
	}

	images, manifest, status, err := p.scan(ctx, output)
	if err != nil {
		return errors.WithStack(err)
	}

	plan := diff.Compute(images, manifest.Images)

	for _, img := range plan.ToCreate {
		report.Created = append(report.Created, img.Basename)
	}
	report.Removed = plan.ToRemove
	report.Unchanged = plan.Unchanged

	p.opts.Logger.InfoContext(
		ctx, "generation plan computed",
		slog.String("platform", string(p.platform)),
		slog.Int("create", len(plan.ToCreate)),
		slog.Int("remove", len(plan.ToRemove)),
		slog.Int("unchanged", len(plan.Unchanged)),
	)

	// A first run without images still writes an empty manifest
	if plan.Empty() && status == cache.StatusLoaded {
		return nil
	}

	source, err := p.source()
	if err != nil {
		return errors.WithStack(err)
	}

	gen := generator.New(
		source, output, p.opts.Resizer, p.platform,
		generator.WithConcurrency(p.opts.Concurrency),
		generator.WithLogger(p.opts.Logger),
	)

	outputs, err := gen.Apply(ctx, plan, manifest.Output)
	if err != nil {
		return errors.WithStack(err)
	}

	next := &cache.Manifest{
		Images: make([]cache.Entry, 0, len(images)),
		Output: outputs,
	}

	for _, img := range images {
		next.Images = append(next.Images, cache.Entry{
			Filename: img.Filename,
			Basename: img.Basename,
			Hash:     img.Hash,
			Scale:    img.Scale,
		})
	}

	if err := cache.Save(ctx, p.backend, string(p.platform), next); err != nil {
		return errors.WithStack(err)
	}

	report.Saved = true

	return nil
}

func (p *Pipeline) inspect(ctx context.Context) ([]explorer.Image, *cache.Manifest, cache.Status, error) {
	output, err := p.output(true)
	if err != nil {
		return nil, nil, cache.StatusFailed, errors.WithStack(err)
	}

	return p.scan(ctx, output)
}

func (p *Pipeline) scan(ctx context.Context, output webdav.FileSystem) ([]explorer.Image, *cache.Manifest, cache.Status, error) {
	source, err := p.source()
	if err != nil {
		return nil, nil, cache.StatusFailed, errors.WithStack(err)
	}

	scanOptions := []explorer.OptionFunc{
		explorer.WithConcurrency(p.opts.Concurrency),
	}

	if p.opts.Filter != nil {
		scanOptions = append(scanOptions, explorer.WithFilter(p.opts.Filter.Match))
	}

	images, err := explorer.Scan(ctx, source, "/", scanOptions...)
	if err != nil {
		return nil, nil, cache.StatusFailed, errors.WithStack(err)
	}

	result := cache.Load(ctx, p.backend, output, string(p.platform))

	manifest, err := result.Cache()
	if err != nil {
		return nil, nil, result.Status, errors.WithStack(err)
	}

	p.opts.Logger.DebugContext(
		ctx, "manifest loaded",
		slog.String("platform", string(p.platform)),
		slog.String("status", result.Status.String()),
		slog.Int("images", len(manifest.Images)),
	)

	return images, manifest, result.Status, nil
}

func (p *Pipeline) source() (webdav.FileSystem, error) {
	if p.opts.Source != nil {
		return p.opts.Source, nil
	}

	return local.NewFileSystem(p.project.SourceDir()), nil
}

func (p *Pipeline) output(readOnly bool) (webdav.FileSystem, error) {
	var fs webdav.FileSystem

	switch {
	case p.opts.Output != nil:
		fs = p.opts.Output

	case readOnly:
		dir, err := p.project.ResourcesDir(p.platform)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		fs = local.NewFileSystem(dir)

	default:
		dir, err := p.project.ResourcesDir(p.platform)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		// The local factory creates the resource tree root
		created, err := filesystem.New(local.Type, map[string]any{"dir": dir})
		if err != nil {
			return nil, errors.WithStack(err)
		}

		fs = created
	}

	middlewares := []Middleware{LoggerMiddleware(p.opts.Logger)}
	if readOnly {
		middlewares = append(middlewares, ReadOnlyMiddleware())
	}
	middlewares = append(middlewares, p.opts.Middlewares...)

	return Chain(fs, middlewares...), nil
}

func NewPipeline(project Project, platform layout.Platform, backend cache.Backend, funcs ...OptionFunc) (*Pipeline, error) {
	normalized, supported := layout.Normalize(string(platform))
	if !supported {
		return nil, errors.WithStack(&layout.UnsupportedPlatformError{Platform: platform})
	}

	validate := validator.New()
	if err := validate.Struct(&project); err != nil {
		return nil, errors.Wrap(err, "could not validate project")
	}

	return &Pipeline{
		project:  project,
		platform: normalized,
		backend:  backend,
		opts:     NewOptions(funcs...),
	}, nil
}
