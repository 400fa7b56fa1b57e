package cache

import (
	"context"
	"encoding/json"
	"path"
	"sort"

	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
)

type Status int

const (
	StatusEmpty Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Load. Manifest is always usable unless Status
// is StatusFailed, in which case Err holds a *ReadError.
type LoadResult struct {
	Status   Status
	Manifest *Manifest
	Err      error
}

// Cache returns the loaded manifest, an empty one if none existed, or the
// read error.
func (r LoadResult) Cache() (*Manifest, error) {
	if r.Status == StatusFailed {
		return nil, r.Err
	}

	return r.Manifest, nil
}

// Load reads the manifest of platform from backend and checks each entry
// against the output tree. Entries with missing identity fields or missing
// output files are flagged dirty.
func Load(ctx context.Context, backend Backend, output webdav.FileSystem, platform string) LoadResult {
	data, err := backend.Read(ctx, platform)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoadResult{Status: StatusEmpty, Manifest: NewManifest()}
		}

		return failed(platform, err)
	}

	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return failed(platform, errors.Wrap(err, "could not parse manifest"))
	}

	if raw.Images == nil || raw.Output == nil {
		return LoadResult{Status: StatusEmpty, Manifest: NewManifest()}
	}

	manifest := &Manifest{
		Images: make([]Entry, 0, len(*raw.Images)),
		Output: *raw.Output,
	}

	for _, r := range *raw.Images {
		entry, complete := r.toEntry()
		entry.Outputs = manifest.Output[entry.Basename]

		if !complete || len(entry.Outputs) == 0 {
			entry.Dirty = true
		} else {
			missing, err := hasMissingOutput(ctx, output, entry.Outputs)
			if err != nil {
				return failed(platform, err)
			}
			entry.Dirty = missing
		}

		manifest.Images = append(manifest.Images, entry)
	}

	return LoadResult{Status: StatusLoaded, Manifest: manifest}
}

func hasMissingOutput(ctx context.Context, output webdav.FileSystem, outputs []string) (bool, error) {
	for _, p := range outputs {
		exists, err := filesystem.Exists(ctx, output, path.Clean("/"+p))
		if err != nil {
			return false, errors.Wrapf(err, "could not check output '%s'", p)
		}

		if !exists {
			return true, nil
		}
	}

	return false, nil
}

func failed(platform string, err error) LoadResult {
	return LoadResult{
		Status: StatusFailed,
		Err:    &ReadError{Platform: platform, Err: err},
	}
}

// Save persists manifest for platform. Only identity fields and the output
// map are written.
func Save(ctx context.Context, backend Backend, platform string, manifest *Manifest) error {
	sanitized := Sanitize(manifest)

	data, err := json.Marshal(sanitized)
	if err != nil {
		return &WriteError{Platform: platform, Err: errors.WithStack(err)}
	}

	if err := backend.Write(ctx, platform, data); err != nil {
		return &WriteError{Platform: platform, Err: err}
	}

	return nil
}

// Sanitize returns a copy of manifest stripped from derived fields, with
// images sorted by basename.
func Sanitize(manifest *Manifest) *Manifest {
	sanitized := NewManifest()
	if manifest == nil {
		return sanitized
	}

	for _, entry := range manifest.Images {
		sanitized.Images = append(sanitized.Images, Entry{
			Filename: entry.Filename,
			Basename: entry.Basename,
			Hash:     entry.Hash,
			Scale:    entry.Scale,
		})
	}

	sort.Slice(sanitized.Images, func(i, j int) bool {
		return sanitized.Images[i].Basename < sanitized.Images[j].Basename
	})

	for basename, outputs := range manifest.Output {
		sanitized.Output[basename] = append([]string(nil), outputs...)
	}

	return sanitized
}
