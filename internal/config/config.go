package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	keyPort            = "port"
	keyPublicDir       = "public_dir"
	keyViewsDir        = "views_dir"
	keyHeroDataDir     = "hero_data_dir"
	keyHeroAssetsDir   = "hero_assets_dir"
	keyReleaseOrder    = "release_order_file"
	keyReservedFile    = "hero_aggregate_file"
	keyDBDriver        = "db_driver"
	keyDBDSN           = "db_dsn"
	keyLogLevel        = "log_level"
	keyLogFormat       = "log_format"
	keyMetricsEnabled  = "metrics_enabled"
	keyShutdownTimeout = "shutdown_timeout"

	defaultPort            = "3002"
	defaultPublicDir       = "public"
	defaultViewsDir        = "views"
	defaultHeroDataDir     = "kingsraid-data/table-data/heroes"
	defaultHeroAssetsDir   = "kingsraid-data/assets/heroes"
	defaultReleaseOrder    = "kingsraid-data/release-order.json"
	defaultReservedFile    = "heroes.json"
	defaultDBDriver        = DriverSQLite
	defaultDBDSN           = "teams.db"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultMetricsEnabled  = true
	defaultShutdownTimeout = 5 * time.Second
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	PublicDir       string
	ViewsDir        string
	Catalog         Catalog
	Database        Database
	LogLevel        string
	LogFormat       string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// Catalog locates the hero data. Paths are relative to PublicDir.
type Catalog struct {
	HeroDataDir      string
	HeroAssetsDir    string
	ReleaseOrderFile string
	AggregateFile    string
}

type Database struct {
	Driver string
	DSN    string
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.PublicDir, validation.Required),
		validation.Field(&c.ViewsDir, validation.Required),
		validation.Field(&c.Catalog),
		validation.Field(&c.Database),
		validation.Field(&c.LogFormat, validation.In("json", "console")),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0)).Exclusive()),
	)
}

func (c Catalog) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HeroDataDir, validation.Required, validation.By(validFSPath)),
		validation.Field(&c.HeroAssetsDir, validation.Required, validation.By(validFSPath)),
		validation.Field(&c.ReleaseOrderFile, validation.Required, validation.By(validFSPath)),
		validation.Field(&c.AggregateFile, validation.Required),
	)
}

func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
		validation.Field(&d.DSN, validation.Required),
	)
}

// validFSPath rejects paths fs.FS cannot open (absolute, "..", trailing slash).
func validFSPath(value any) error {
	p, _ := value.(string)
	if !fs.ValidPath(p) {
		return errors.New("must be a slash separated path relative to the public dir")
	}
	return nil
}

// Load reads configuration from an optional .env file, the environment and
// command line flags, in increasing order of precedence.
func Load(args []string) (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	flags := flag.NewFlagSet("team-builder", flag.ContinueOnError)
	flags.String(keyPort, defaultPort, "port the HTTP server listens on")
	flags.String(keyPublicDir, defaultPublicDir, "directory served as static assets")
	flags.String(keyViewsDir, defaultViewsDir, "directory holding index.html")
	flags.String(keyDBDriver, defaultDBDriver, "database driver (sqlite|postgres)")
	flags.String(keyDBDSN, defaultDBDSN, "database connection string or sqlite file")
	flags.String(keyLogLevel, defaultLogLevel, "log level")
	flags.String(keyLogFormat, defaultLogFormat, "log format (json|console)")

	normalize := func(f *flag.FlagSet, name string) flag.NormalizedName {
		return flag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
	}
	flags.SetNormalizeFunc(normalize)

	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	cfg := Config{
		Port:      v.GetString(keyPort),
		PublicDir: v.GetString(keyPublicDir),
		ViewsDir:  v.GetString(keyViewsDir),
		Catalog: Catalog{
			HeroDataDir:      v.GetString(keyHeroDataDir),
			HeroAssetsDir:    v.GetString(keyHeroAssetsDir),
			ReleaseOrderFile: v.GetString(keyReleaseOrder),
			AggregateFile:    v.GetString(keyReservedFile),
		},
		Database: Database{
			Driver: strings.ToLower(v.GetString(keyDBDriver)),
			DSN:    v.GetString(keyDBDSN),
		},
		LogLevel:        v.GetString(keyLogLevel),
		LogFormat:       strings.ToLower(v.GetString(keyLogFormat)),
		MetricsEnabled:  v.GetBool(keyMetricsEnabled),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, defaultPort)
	v.SetDefault(keyPublicDir, defaultPublicDir)
	v.SetDefault(keyViewsDir, defaultViewsDir)
	v.SetDefault(keyHeroDataDir, defaultHeroDataDir)
	v.SetDefault(keyHeroAssetsDir, defaultHeroAssetsDir)
	v.SetDefault(keyReleaseOrder, defaultReleaseOrder)
	v.SetDefault(keyReservedFile, defaultReservedFile)
	v.SetDefault(keyDBDriver, defaultDBDriver)
	v.SetDefault(keyDBDSN, defaultDBDSN)
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyLogFormat, defaultLogFormat)
	v.SetDefault(keyMetricsEnabled, defaultMetricsEnabled)
	v.SetDefault(keyShutdownTimeout, defaultShutdownTimeout)
}
