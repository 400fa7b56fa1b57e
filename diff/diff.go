// Package diff compares the current source images with the cached manifest
// and decides which logical images must be regenerated or removed.
package diff

import (
	"sort"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/explorer"
)

// Plan is the minimal set of changes bringing the output tree in sync with
// the source images.
type Plan struct {
	// ToRemove lists cached basenames without a current image
	ToRemove []string
	// ToCreate lists current images which are new, changed or dirty
	ToCreate []explorer.Image
	// Unchanged lists basenames left untouched
	Unchanged []string
}

// Empty reports whether the plan requires no filesystem mutation.
func (p Plan) Empty() bool {
	return len(p.ToRemove) == 0 && len(p.ToCreate) == 0
}

// NeedsGeneration reports whether any image was added, changed or removed
// since the manifest was written, or whether a cached entry is dirty. It stops
// at the first difference.
func NeedsGeneration(current []explorer.Image, cached []cache.Entry) bool {
	currentBasenames := make(map[string]struct{}, len(current))
	for _, img := range current {
		currentBasenames[img.Basename] = struct{}{}
	}

	for _, entry := range cached {
		if entry.Basename == "" {
			continue
		}

		if _, exists := currentBasenames[entry.Basename]; !exists {
			return true
		}
	}

	cachedEntries := indexByBasename(cached)

	for _, img := range current {
		entry, exists := cachedEntries[img.Basename]
		if !exists || isStale(img, entry) {
			return true
		}
	}

	return false
}

// Compute builds the plan turning the cached state into the current one.
func Compute(current []explorer.Image, cached []cache.Entry) Plan {
	plan := Plan{
		ToRemove:  make([]string, 0),
		ToCreate:  make([]explorer.Image, 0),
		Unchanged: make([]string, 0),
	}

	currentBasenames := make(map[string]struct{}, len(current))
	for _, img := range current {
		currentBasenames[img.Basename] = struct{}{}
	}

	removed := make(map[string]struct{})
	for _, entry := range cached {
		// Entries without a basename own no outputs
		if entry.Basename == "" {
			continue
		}

		if _, exists := currentBasenames[entry.Basename]; exists {
			continue
		}

		if _, seen := removed[entry.Basename]; seen {
			continue
		}

		removed[entry.Basename] = struct{}{}
		plan.ToRemove = append(plan.ToRemove, entry.Basename)
	}

	cachedEntries := indexByBasename(cached)

	for _, img := range current {
		entry, exists := cachedEntries[img.Basename]
		if !exists || isStale(img, entry) {
			plan.ToCreate = append(plan.ToCreate, img)
			continue
		}

		plan.Unchanged = append(plan.Unchanged, img.Basename)
	}

	sort.Strings(plan.ToRemove)
	sort.Strings(plan.Unchanged)
	sort.Slice(plan.ToCreate, func(i, j int) bool {
		return plan.ToCreate[i].Basename < plan.ToCreate[j].Basename
	})

	return plan
}

func isStale(img explorer.Image, entry cache.Entry) bool {
	return entry.Dirty || entry.Hash != img.Hash || entry.Scale != img.Scale
}

// indexByBasename keeps the last entry of duplicated basenames, flagged
// dirty since the manifest cannot tell which one is accurate.
func indexByBasename(entries []cache.Entry) map[string]cache.Entry {
	index := make(map[string]cache.Entry, len(entries))
	for _, entry := range entries {
		if _, exists := index[entry.Basename]; exists {
			entry.Dirty = true
		}
		index[entry.Basename] = entry
	}
	return index
}
