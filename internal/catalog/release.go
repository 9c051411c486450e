package catalog

import (
	"cmp"
	"io/fs"
	"slices"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/logging"
)

// LoadReleaseOrder reads a JSON object of hero name to rank and returns the
// names ordered by ascending rank. Entries whose rank is not a number are
// ignored. A missing, unreadable or malformed file yields an empty order.
func LoadReleaseOrder(fsys fs.FS, name string, logger *zap.Logger) []string {
	logger = logging.OrNop(logger)

	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		logger.Debug("release order unavailable", zap.String(logging.FieldFile, name), zap.Error(err))
		return []string{}
	}

	var ranks map[string]any
	if err := json.Unmarshal(raw, &ranks); err != nil {
		logger.Warn("release order is not a JSON object", zap.String(logging.FieldFile, name), zap.Error(err))
		return []string{}
	}

	type entry struct {
		name string
		rank float64
	}

	entries := make([]entry, 0, len(ranks))
	for heroName, v := range ranks {
		rank, ok := v.(float64)
		if !ok {
			continue
		}
		entries = append(entries, entry{name: heroName, rank: rank})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.name
	}
	return order
}

// applyReleaseOrder stamps each hero with its position in order.
func applyReleaseOrder(heroes []Hero, order []string) {
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}

	for i := range heroes {
		if pos, ok := index[heroes[i].Name]; ok {
			heroes[i].ReleaseOrder = pos
			heroes[i].HasReleaseOrder = true
			continue
		}
		heroes[i].ReleaseOrder = -1
		heroes[i].HasReleaseOrder = false
	}
}
