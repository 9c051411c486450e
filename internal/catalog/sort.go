package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a sorted copy of heroes. Release mode puts heroes with a known
// release rank first, in rank order; the rest follow by name.
func Sort(heroes []Hero, mode SortMode) []Hero {
	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.English)
	byName := func(a, b Hero) int {
		return col.CompareString(a.Name, b.Name)
	}

	sorted := slices.Clone(heroes)

	switch mode {
	case SortByRelease:
		slices.SortStableFunc(sorted, func(a, b Hero) int {
			switch {
			case a.HasReleaseOrder && b.HasReleaseOrder:
				if c := cmp.Compare(a.ReleaseOrder, b.ReleaseOrder); c != 0 {
					return c
				}
				return byName(a, b)
			case a.HasReleaseOrder:
				return -1
			case b.HasReleaseOrder:
				return 1
			default:
				return byName(a, b)
			}
		})
	default:
		slices.SortStableFunc(sorted, byName)
	}

	return sorted
}
