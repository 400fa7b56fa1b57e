// Package cache persists, per platform, the manifest of the images processed
// by the last successful run and the output files each of them produced.
package cache

// Entry is the last known identity of a logical image.
type Entry struct {
	Filename string `json:"filename,omitempty"`
	Basename string `json:"basename,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Scale    int    `json:"scale,omitempty"`

	// Dirty marks the entry for regeneration whatever its hash. It is
	// computed on load and never persisted.
	Dirty bool `json:"-"`
	// Outputs mirrors the manifest output list of the basename
	Outputs []string `json:"-"`
}

// Manifest is the persisted state of one platform.
type Manifest struct {
	Images []Entry `json:"images"`
	// Output maps a basename to the files it produced, relative to the
	// platform resource tree
	Output map[string][]string `json:"output"`
}

func NewManifest() *Manifest {
	return &Manifest{
		Images: make([]Entry, 0),
		Output: make(map[string][]string),
	}
}

// rawManifest distinguishes absent top level keys from empty ones.
type rawManifest struct {
	Images *[]rawEntry           `json:"images"`
	Output *map[string][]string `json:"output"`
}

type rawEntry struct {
	Filename *string `json:"filename"`
	Basename *string `json:"basename"`
	Hash     *string `json:"hash"`
	Scale    *int    `json:"scale"`
}

func (e rawEntry) toEntry() (Entry, bool) {
	entry := Entry{}
	complete := true

	if e.Filename != nil && *e.Filename != "" {
		entry.Filename = *e.Filename
	} else {
		complete = false
	}

	if e.Basename != nil && *e.Basename != "" {
		entry.Basename = *e.Basename
	} else {
		complete = false
	}

	if e.Hash != nil && *e.Hash != "" {
		entry.Hash = *e.Hash
	} else {
		complete = false
	}

	if e.Scale != nil && *e.Scale > 0 {
		entry.Scale = *e.Scale
	} else {
		complete = false
	}

	return entry, complete
}
