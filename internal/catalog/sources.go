package catalog

import (
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/errs"
	"github.com/DoyleJ11/team-builder-backend/internal/logging"
)

const iconFile = "ico.png"

// builtinRoster is the last resort when neither the definitions nor the
// asset folders produce a hero.
var builtinRoster = []string{"Annette", "Arch", "Aisha", "Cleo", "Frey", "Kasel", "Clause", "Roi"}

// source is one way of discovering heroes. Sources run in order and the
// first one that yields at least one hero wins.
type source struct {
	name string
	load func() ([]Hero, error)
}

func (c *Catalog) sources() []source {
	return []source{
		{name: "definitions", load: c.fromDefinitions},
		{name: "assets", load: c.fromAssetFolders},
		{name: "builtin", load: c.fromBuiltinRoster},
	}
}

// fromDefinitions parses every hero definition file. A file that cannot be
// read or parsed is logged and skipped.
func (c *Catalog) fromDefinitions() ([]Hero, error) {
	const op errs.Op = "catalog.fromDefinitions"

	entries, err := fs.ReadDir(c.fsys, c.opts.HeroDataDir)
	if err != nil {
		return nil, errs.E(op, errs.CatalogRead, err)
	}

	heroes := make([]Hero, 0, len(entries))
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".json") || fileName == c.opts.AggregateFile {
			continue
		}

		hero, err := c.parseDefinition(fileName)
		if err != nil {
			c.logger.Warn("skipping hero definition",
				zap.String(logging.FieldFile, fileName),
				zap.Error(err),
			)
			continue
		}
		heroes = append(heroes, hero)
	}

	c.logger.Debug("hero definitions scanned",
		zap.Int("files", len(entries)),
		zap.Int("parsed", len(heroes)),
	)

	return heroes, nil
}

func (c *Catalog) parseDefinition(fileName string) (Hero, error) {
	const op errs.Op = "catalog.parseDefinition"

	raw, err := fs.ReadFile(c.fsys, path.Join(c.opts.HeroDataDir, fileName))
	if err != nil {
		return Hero{}, errs.E(op, errs.CatalogRead, err)
	}

	var doc heroDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Hero{}, errs.E(op, errs.CatalogRead, err)
	}

	name := doc.Infos.Name
	if name == "" {
		name = strings.TrimSuffix(fileName, ".json")
	}

	return Hero{
		ID:     name,
		Name:   name,
		Role:   resolveRole(&doc, name),
		Rarity: DefaultRarity,
		Image:  c.imagePath(name),
	}, nil
}

// fromAssetFolders lists hero folders that contain an icon.
func (c *Catalog) fromAssetFolders() ([]Hero, error) {
	const op errs.Op = "catalog.fromAssetFolders"

	entries, err := fs.ReadDir(c.fsys, c.opts.HeroAssetsDir)
	if err != nil {
		return nil, errs.E(op, errs.CatalogRead, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if c.hasIcon(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	return rosterHeroes(names, c.imagePath), nil
}

func (c *Catalog) fromBuiltinRoster() ([]Hero, error) {
	return rosterHeroes(builtinRoster, c.imagePath), nil
}

// rosterHeroes numbers heroes from 1 and takes roles from the static roster.
func rosterHeroes(names []string, image func(string) string) []Hero {
	heroes := make([]Hero, len(names))
	for i, name := range names {
		heroes[i] = Hero{
			ID:     strconv.Itoa(i + 1),
			Name:   name,
			Role:   resolveRole(nil, name),
			Rarity: DefaultRarity,
			Image:  image(name),
		}
	}
	return heroes
}

func (c *Catalog) iconPath(name string) string {
	return path.Join(c.opts.HeroAssetsDir, name, iconFile)
}

// imagePath is the URL the static file server answers for the icon.
func (c *Catalog) imagePath(name string) string {
	return "/" + c.iconPath(name)
}

func (c *Catalog) hasIcon(name string) bool {
	info, err := fs.Stat(c.fsys, c.iconPath(name))
	return err == nil && !info.IsDir()
}
