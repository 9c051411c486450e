package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/team-builder-backend/internal/catalog"
	"github.com/DoyleJ11/team-builder-backend/internal/config"
	"github.com/DoyleJ11/team-builder-backend/internal/httpapi"
	"github.com/DoyleJ11/team-builder-backend/internal/logging"
	"github.com/DoyleJ11/team-builder-backend/internal/metrics"
	"github.com/DoyleJ11/team-builder-backend/internal/store"
	"github.com/DoyleJ11/team-builder-backend/internal/team"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "team-builder",
		Version: version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a database there is nothing to serve.
	db, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	public := os.DirFS(cfg.PublicDir)
	heroes := catalog.New(public, catalog.Options{
		HeroDataDir:      filepath.ToSlash(cfg.Catalog.HeroDataDir),
		HeroAssetsDir:    filepath.ToSlash(cfg.Catalog.HeroAssetsDir),
		ReleaseOrderFile: filepath.ToSlash(cfg.Catalog.ReleaseOrderFile),
		AggregateFile:    cfg.Catalog.AggregateFile,
	}, logger, recorder)

	teams := team.NewService(db.Teams(), logger, recorder)

	handler := httpapi.SetupRoutes(httpapi.Deps{
		Heroes:  heroes,
		Teams:   teams,
		DB:      db,
		Public:  public,
		Views:   os.DirFS(cfg.ViewsDir),
		Metrics: recorder,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
