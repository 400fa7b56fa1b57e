// Package explorer lists the source images of a project and computes their
// identity: content hash, logical basename and resolution scale.
package explorer

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"path"
	"sort"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
	"golang.org/x/net/webdav"
	"golang.org/x/sync/errgroup"
)

// Scan returns the images found directly under dir, one per basename, sorted
// by basename. When several files share a basename the one with the highest
// scale wins, ties going to the lexicographically greatest filename.
func Scan(ctx context.Context, fs webdav.FileSystem, dir string, funcs ...OptionFunc) ([]Image, error) {
	opts := NewOptions(funcs...)

	candidates, err := list(ctx, fs, dir)
	if err != nil {
		return nil, &ExplorationError{Dir: dir, Err: err}
	}

	images := make([]Image, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)

	for i, filename := range candidates {
		group.Go(func() error {
			filepath := path.Join(dir, filename)

			hash, err := Hash(groupCtx, fs, filepath)
			if err != nil {
				return errors.Wrapf(err, "could not hash '%s'", filepath)
			}

			basename, scale := ParseFilename(filename)

			images[i] = Image{
				Path:     filepath,
				Filename: filename,
				Basename: basename,
				Scale:    scale,
				Hash:     hash,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, &ExplorationError{Dir: dir, Err: err}
	}

	if opts.Filter != nil {
		filtered := images[:0]
		for _, img := range images {
			keep, err := opts.Filter(img)
			if err != nil {
				return nil, &ExplorationError{Dir: dir, Err: errors.Wrapf(err, "could not filter '%s'", img.Filename)}
			}

			if keep {
				filtered = append(filtered, img)
			}
		}
		images = filtered
	}

	return dedupe(images), nil
}

// Hash computes the xxh3-128 digest of the file content, streaming it so that
// file size is not bounded by memory.
func Hash(ctx context.Context, fs webdav.FileSystem, name string) (string, error) {
	file, err := fs.OpenFile(ctx, name, os.O_RDONLY, 0)
	if err != nil {
		return "", errors.WithStack(err)
	}

	defer file.Close()

	hasher := xxh3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", errors.WithStack(err)
	}

	sum := hasher.Sum128()

	var digest [16]byte
	binary.BigEndian.PutUint64(digest[:8], sum.Hi)
	binary.BigEndian.PutUint64(digest[8:], sum.Lo)

	return hex.EncodeToString(digest[:]), nil
}

func list(ctx context.Context, fs webdav.FileSystem, dir string) ([]string, error) {
	info, err := fs.Stat(ctx, dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("'%s' is not a directory", dir)
	}

	file, err := fs.OpenFile(ctx, dir, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer file.Close()

	children, err := file.Readdir(0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithStack(err)
	}

	filenames := make([]string, 0, len(children))
	for _, child := range children {
		if !child.Mode().IsRegular() {
			continue
		}

		if !IsSupported(child.Name()) {
			continue
		}

		filenames = append(filenames, child.Name())
	}

	sort.Strings(filenames)

	return filenames, nil
}

func dedupe(images []Image) []Image {
	byBasename := make(map[string]Image, len(images))

	for _, img := range images {
		existing, exists := byBasename[img.Basename]
		if !exists || takesPrecedence(img, existing) {
			byBasename[img.Basename] = img
		}
	}

	result := make([]Image, 0, len(byBasename))
	for _, img := range byBasename {
		result = append(result, img)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Basename < result[j].Basename
	})

	return result
}

func takesPrecedence(candidate, current Image) bool {
	if candidate.Scale != current.Scale {
		return candidate.Scale > current.Scale
	}

	return candidate.Filename > current.Filename
}
