// Package store is the relational persistence for saved teams. It runs on
// SQLite by default and on PostgreSQL when configured.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DoyleJ11/team-builder-backend/internal/config"
	"github.com/DoyleJ11/team-builder-backend/internal/errs"
	"github.com/DoyleJ11/team-builder-backend/internal/logging"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const sqliteParams = "_journal_mode=WAL&_busy_timeout=5000"

// Store owns the connection pool. It is created once at startup and closed
// on shutdown.
type Store struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	logger *zap.Logger
}

// Open connects, verifies the connection and applies pending migrations.
func Open(ctx context.Context, cfg config.Database, logger *zap.Logger) (*Store, error) {
	const op errs.Op = "store.Open"

	logger = logging.OrNop(logger).Named("store")

	dialector, dialect, err := dialectorFor(cfg)
	if err != nil {
		return nil, errs.E(op, errs.Store, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: gormlogger.New(printfLogger{logger.Sugar()}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errs.E(op, errs.Store, fmt.Errorf("open %s database: %w", cfg.Driver, err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.E(op, errs.Store, err)
	}
	if cfg.Driver == config.DriverSQLite {
		// One writer at a time; sqlite serializes writes anyway.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errs.E(op, errs.Store, fmt.Errorf("ping %s database: %w", cfg.Driver, err))
	}

	s := &Store{db: db, sqlDB: sqlDB, logger: logger}

	if err := s.migrate(ctx, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, errs.E(op, errs.Store, err)
	}

	logger.Info("connected to database", zap.String("driver", cfg.Driver))

	return s, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, goose.Dialect, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		dsn := cfg.DSN
		if !strings.Contains(dsn, "?") {
			dsn += "?" + sqliteParams
		}
		return sqlite.Open(dsn), goose.DialectSQLite3, nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), goose.DialectPostgres, nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (s *Store) migrate(ctx context.Context, dialect goose.Dialect) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, s.sqlDB, migrations)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		s.logger.Info("applied migration",
			zap.Int64("version", res.Source.Version),
			zap.Duration("took", res.Duration),
		)
	}

	return nil
}

// Teams returns the team repository backed by this store.
func (s *Store) Teams() *Teams {
	return &Teams{db: s.db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close releases the pool. Safe to call on a nil Store.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	if err := s.sqlDB.Close(); err != nil {
		return err
	}
	s.logger.Info("database connection closed")
	return nil
}

// printfLogger routes gorm's printf style output into zap.
type printfLogger struct {
	l *zap.SugaredLogger
}

func (p printfLogger) Printf(format string, args ...any) {
	p.l.Warnf(format, args...)
}
