package catalog

import "strings"

// DefaultRarity is assigned to every hero; the data files carry no rarity.
const DefaultRarity = 5

// Hero is derived from the data files on every listing and never stored.
type Hero struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Rarity          int    `json:"rarity"`
	Image           string `json:"image"`
	ReleaseOrder    int    `json:"releaseOrder"`
	HasReleaseOrder bool   `json:"hasReleaseOrder"`
}

// Listing is the catalog answer including diagnostics about missing art.
type Listing struct {
	Heroes        []Hero   `json:"heroes"`
	MissingHeroes []string `json:"missingHeroes"`
	Total         int      `json:"total"`
	Loaded        int      `json:"loaded"`
	MissingCount  int      `json:"missingCount"`
	CurrentSort   SortMode `json:"currentSort"`
}

type SortMode string

const (
	SortByName    SortMode = "name"
	SortByRelease SortMode = "release"
)

// ParseSortMode maps a query value onto a mode; anything but "release" sorts
// by name.
func ParseSortMode(raw string) SortMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortByRelease)) {
		return SortByRelease
	}
	return SortByName
}

// heroDocument is the subset of a hero definition file the catalog reads.
type heroDocument struct {
	Infos struct {
		Name  string `json:"name"`
		Class string `json:"class"`
	} `json:"infos"`
	Role string `json:"role"`
}
