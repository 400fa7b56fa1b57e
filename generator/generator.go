// Package generator applies a diff.Plan to a platform resource tree: it
// deletes the outputs of removed images and renders every output of new or
// changed ones.
package generator

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path"
	"slices"

	"github.com/bornholm/go-assetgen/diff"
	"github.com/bornholm/go-assetgen/explorer"
	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/bornholm/go-assetgen/layout"
	"github.com/bornholm/go-assetgen/resize"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
	"golang.org/x/sync/errgroup"
)

type Generator struct {
	source   webdav.FileSystem
	output   webdav.FileSystem
	resizer  resize.Resizer
	platform layout.Platform
	opts     *Options
}

type result struct {
	basename string
	outputs  []string
	removed  bool
}

// Apply executes plan. previous is the output map of the last run; it is
// the only source used to know what to delete. The returned map records the
// outputs of every current basename: freshly generated ones for created
// images, copied forward for unchanged ones.
func (g *Generator) Apply(ctx context.Context, plan diff.Plan, previous map[string][]string) (map[string][]string, error) {
	results := make([]result, len(plan.ToRemove)+len(plan.ToCreate))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.opts.Concurrency)

	for i, basename := range plan.ToRemove {
		group.Go(func() error {
			if err := g.remove(groupCtx, basename, previous[basename]); err != nil {
				return errors.Wrapf(err, "could not remove outputs of '%s'", basename)
			}

			results[i] = result{basename: basename, removed: true}

			return nil
		})
	}

	offset := len(plan.ToRemove)
	for i, img := range plan.ToCreate {
		group.Go(func() error {
			outputs, err := g.create(groupCtx, img, previous[img.Basename])
			if err != nil {
				return errors.Wrapf(err, "could not generate outputs of '%s'", img.Basename)
			}

			results[offset+i] = result{basename: img.Basename, outputs: outputs}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	output := make(map[string][]string, len(plan.Unchanged)+len(plan.ToCreate))

	for _, basename := range plan.Unchanged {
		if outputs, exists := previous[basename]; exists {
			output[basename] = slices.Clone(outputs)
		}
	}

	for _, r := range results {
		if r.removed {
			continue
		}
		output[r.basename] = r.outputs
	}

	return output, nil
}

func (g *Generator) remove(ctx context.Context, basename string, recorded []string) error {
	g.opts.Logger.DebugContext(ctx, "removing image", slog.String("basename", basename), slog.Any("outputs", recorded))

	for _, p := range recorded {
		if err := filesystem.Remove(ctx, g.output, p); err != nil {
			return errors.WithStack(err)
		}
	}

	container, ok := layout.Container(g.platform, basename)
	if !ok || basename == "" {
		return nil
	}

	removed, err := filesystem.RemoveIfEmpty(ctx, g.output, container)
	if err != nil {
		return errors.WithStack(err)
	}

	if !removed {
		g.opts.Logger.WarnContext(ctx, "container directory still has untracked files, keeping it", slog.String("container", container))
	}

	return nil
}

func (g *Generator) create(ctx context.Context, img explorer.Image, recorded []string) ([]string, error) {
	specs, err := layout.OutputsFor(g.platform, img.Basename)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	source, err := g.readSource(ctx, img)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	width, err := g.resizer.Width(bytes.NewReader(source))
	if err != nil {
		return nil, &resize.Error{Source: img.Path, Err: err}
	}

	g.opts.Logger.DebugContext(ctx, "generating image", slog.String("basename", img.Basename), slog.Int("width", width), slog.Int("scale", img.Scale))

	dirs := make([]string, 0, len(specs))
	for _, spec := range specs {
		if dir := path.Dir(spec.Path); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range dirs {
		if err := filesystem.MkdirAll(ctx, g.output, dir, g.opts.DirMode); err != nil {
			return nil, errors.Wrapf(err, "could not create directory '%s'", dir)
		}
	}

	descriptorPath, descriptor, hasDescriptor := layout.Descriptor(g.platform, img.Basename)
	if hasDescriptor {
		if err := filesystem.WriteBytes(ctx, g.output, descriptorPath, descriptor, g.opts.FileMode); err != nil {
			return nil, errors.Wrapf(err, "could not write descriptor '%s'", descriptorPath)
		}
	}

	outputs := make([]string, 0, len(specs)+1)

	for _, spec := range specs {
		target := layout.TargetWidth(width, img.Scale, spec.Scale)

		var buf bytes.Buffer
		if err := g.resizer.Resize(bytes.NewReader(source), &buf, target); err != nil {
			return nil, &resize.Error{Source: img.Path, Target: spec.Path, Width: target, Err: err}
		}

		if err := filesystem.WriteFile(ctx, g.output, spec.Path, &buf, g.opts.FileMode); err != nil {
			return nil, errors.Wrapf(err, "could not write '%s'", spec.Path)
		}

		outputs = append(outputs, spec.Path)
	}

	if hasDescriptor {
		outputs = append(outputs, descriptorPath)
	}

	// Outputs of a previous layout which are not produced anymore
	for _, p := range recorded {
		if slices.Contains(outputs, p) {
			continue
		}

		if err := filesystem.Remove(ctx, g.output, p); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return outputs, nil
}

func (g *Generator) readSource(ctx context.Context, img explorer.Image) ([]byte, error) {
	file, err := g.source.OpenFile(ctx, img.Path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, errors.WithStack(err)
	}

	return buf.Bytes(), nil
}

func New(source, output webdav.FileSystem, resizer resize.Resizer, platform layout.Platform, funcs ...OptionFunc) *Generator {
	return &Generator{
		source:   source,
		output:   output,
		resizer:  resizer,
		platform: platform,
		opts:     NewOptions(funcs...),
	}
}
