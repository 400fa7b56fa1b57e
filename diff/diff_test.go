package diff

import (
	"reflect"
	"testing"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/explorer"
)

func TestCompute(t *testing.T) {
	type testCase struct {
		Name              string
		Current           []explorer.Image
		Cached            []cache.Entry
		ExpectedToRemove  []string
		ExpectedToCreate  []string
		ExpectedUnchanged []string
		ExpectedNeeded    bool
	}

	testCases := []testCase{
		{
			Name: "AddAndRemove",
			Current: []explorer.Image{
				{Basename: "a", Hash: "hash1", Scale: 1},
				{Basename: "c", Hash: "hash3", Scale: 1},
			},
			Cached: []cache.Entry{
				{Basename: "a", Hash: "hash1", Scale: 1},
				{Basename: "b", Hash: "hash2", Scale: 1},
			},
			ExpectedToRemove:  []string{"b"},
			ExpectedToCreate:  []string{"c"},
			ExpectedUnchanged: []string{"a"},
			ExpectedNeeded:    true,
		},
		{
			Name: "Identical",
			Current: []explorer.Image{
				{Basename: "a", Hash: "hash1", Scale: 1},
				{Basename: "b", Hash: "hash2", Scale: 3},
			},
			Cached: []cache.Entry{
				{Basename: "b", Hash: "hash2", Scale: 3},
				{Basename: "a", Hash: "hash1", Scale: 1},
			},
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{},
			ExpectedUnchanged: []string{"a", "b"},
			ExpectedNeeded:    false,
		},
		{
			Name: "ChangedHash",
			Current: []explorer.Image{
				{Basename: "a", Hash: "hash1-bis", Scale: 1},
			},
			Cached: []cache.Entry{
				{Basename: "a", Hash: "hash1", Scale: 1},
			},
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{"a"},
			ExpectedUnchanged: []string{},
			ExpectedNeeded:    true,
		},
		{
			Name: "ChangedScale",
			Current: []explorer.Image{
				{Basename: "a", Hash: "hash1", Scale: 3},
			},
			Cached: []cache.Entry{
				{Basename: "a", Hash: "hash1", Scale: 2},
			},
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{"a"},
			ExpectedUnchanged: []string{},
			ExpectedNeeded:    true,
		},
		{
			Name: "EntryWithoutBasename",
			Current: []explorer.Image{
				{Basename: "a", Hash: "hash1", Scale: 1},
			},
			Cached: []cache.Entry{
				{Basename: "a", Hash: "hash1", Scale: 1},
				{Hash: "x", Dirty: true},
			},
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{},
			ExpectedUnchanged: []string{"a"},
			ExpectedNeeded:    false,
		},
		{
			Name: "DirtyEntry",
			Current: []explorer.Image{
				{Basename: "a", Hash: "hash1", Scale: 1},
			},
			Cached: []cache.Entry{
				{Basename: "a", Hash: "hash1", Scale: 1, Dirty: true},
			},
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{"a"},
			ExpectedUnchanged: []string{},
			ExpectedNeeded:    true,
		},
		{
			Name:              "FirstRun",
			Current:           []explorer.Image{{Basename: "a", Hash: "hash1", Scale: 1}},
			Cached:            nil,
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{"a"},
			ExpectedUnchanged: []string{},
			ExpectedNeeded:    true,
		},
		{
			Name:              "AllRemoved",
			Current:           nil,
			Cached:            []cache.Entry{{Basename: "z", Hash: "h", Scale: 1}, {Basename: "y", Hash: "h", Scale: 1}},
			ExpectedToRemove:  []string{"y", "z"},
			ExpectedToCreate:  []string{},
			ExpectedUnchanged: []string{},
			ExpectedNeeded:    true,
		},
		{
			Name:              "Nothing",
			ExpectedToRemove:  []string{},
			ExpectedToCreate:  []string{},
			ExpectedUnchanged: []string{},
			ExpectedNeeded:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			plan := Compute(tc.Current, tc.Cached)

			if e, g := tc.ExpectedToRemove, plan.ToRemove; !reflect.DeepEqual(e, g) {
				t.Errorf("ToRemove: expected %v, got %v", e, g)
			}

			toCreate := make([]string, 0, len(plan.ToCreate))
			for _, img := range plan.ToCreate {
				toCreate = append(toCreate, img.Basename)
			}

			if e, g := tc.ExpectedToCreate, toCreate; !reflect.DeepEqual(e, g) {
				t.Errorf("ToCreate: expected %v, got %v", e, g)
			}

			if e, g := tc.ExpectedUnchanged, plan.Unchanged; !reflect.DeepEqual(e, g) {
				t.Errorf("Unchanged: expected %v, got %v", e, g)
			}

			if e, g := tc.ExpectedNeeded, NeedsGeneration(tc.Current, tc.Cached); e != g {
				t.Errorf("NeedsGeneration: expected %v, got %v", e, g)
			}

			if e, g := !tc.ExpectedNeeded, plan.Empty(); e != g {
				t.Errorf("Empty: expected %v, got %v", e, g)
			}
		})
	}
}
