// Package catalog builds the hero list from the data files served under the
// public directory. Nothing is cached: each listing reads the filesystem.
package catalog

import (
	"io/fs"

	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/logging"
	"github.com/DoyleJ11/team-builder-backend/internal/metrics"
)

// Options are paths inside the catalog filesystem.
type Options struct {
	HeroDataDir      string
	HeroAssetsDir    string
	ReleaseOrderFile string
	AggregateFile    string
}

type Catalog struct {
	fsys    fs.FS
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func New(fsys fs.FS, opts Options, logger *zap.Logger, recorder *metrics.Recorder) *Catalog {
	return &Catalog{
		fsys:    fsys,
		opts:    opts,
		logger:  logging.OrNop(logger).Named("catalog"),
		metrics: recorder,
	}
}

// List loads, annotates and sorts the heroes, then splits off the ones whose
// icon is missing.
func (c *Catalog) List(mode SortMode) Listing {
	heroes := c.load()
	applyReleaseOrder(heroes, c.ReleaseOrder())
	sorted := Sort(heroes, mode)

	listing := Listing{
		Heroes:        make([]Hero, 0, len(sorted)),
		MissingHeroes: []string{},
		Total:         len(sorted),
		CurrentSort:   mode,
	}

	for _, hero := range sorted {
		if c.hasIcon(hero.Name) {
			listing.Heroes = append(listing.Heroes, hero)
			continue
		}
		listing.MissingHeroes = append(listing.MissingHeroes, hero.Name)
	}
	listing.Loaded = len(listing.Heroes)
	listing.MissingCount = len(listing.MissingHeroes)

	c.logger.Info("hero catalog listed",
		zap.String(logging.FieldSort, string(mode)),
		zap.Int("loaded", listing.Loaded),
		zap.Int("total", listing.Total),
		zap.Int("missing", listing.MissingCount),
	)
	if ce := c.logger.Check(zap.DebugLevel, "hero roles"); ce != nil {
		roles := make(map[string]string, len(listing.Heroes))
		for _, hero := range listing.Heroes {
			roles[hero.Name] = hero.Role
		}
		ce.Write(zap.Any("roles", roles))
	}

	c.metrics.RecordCatalogListing(string(mode), listing.MissingCount)

	return listing
}

// ReleaseOrder reads the release order file on each call.
func (c *Catalog) ReleaseOrder() []string {
	return LoadReleaseOrder(c.fsys, c.opts.ReleaseOrderFile, c.logger)
}

func (c *Catalog) load() []Hero {
	for _, src := range c.sources() {
		heroes, err := src.load()
		if err != nil {
			c.logger.Warn("hero source failed", zap.String(logging.FieldSource, src.name), zap.Error(err))
			continue
		}
		if len(heroes) == 0 {
			c.logger.Info("hero source empty", zap.String(logging.FieldSource, src.name))
			continue
		}
		c.logger.Debug("hero source selected", zap.String(logging.FieldSource, src.name), zap.Int("count", len(heroes)))
		return heroes
	}
	return []Hero{}
}
