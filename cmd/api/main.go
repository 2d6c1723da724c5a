// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Booknotes HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from .env and environment variables.
//  2. Initialize structured logger.
//  3. Open the book store (PostgreSQL pool or embedded SQLite).
//  4. Wire metrics, health checks and HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/booknotes/internal/api"
	"github.com/taibuivan/booknotes/internal/core/book"
	"github.com/taibuivan/booknotes/internal/platform/config"
	"github.com/taibuivan/booknotes/internal/platform/constants"
	"github.com/taibuivan/booknotes/internal/platform/metrics"
	pgstore "github.com/taibuivan/booknotes/internal/platform/postgres"
	"github.com/taibuivan/booknotes/internal/platform/sqlite"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; the level and format depend on the configuration.
		slog.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log := newLogger(cfg)
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.ServerAddress()),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup. A deadline makes misconfiguration fail fast
	// rather than hang.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	registry := metrics.New()

	repository, closeStore, err := openStore(startupCtx, cfg, log, registry)
	must(log, err, "open book store")
	defer closeStore()

	must(log, repository.Ping(startupCtx), "store health check")

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	bookService := book.NewService(repository, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:     cfg.StoreDriver,
		CheckDatabase: bookService.Ping,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   registry.Handler(),
		Books:     book.NewHandler(bookService),
	}

	// The server context outlives startup and stops background middleware work.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, registry, handlers)

	// ── 5. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		closeStore()
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process logger: human-readable text in development,
// JSON everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	options := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, options)
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, options)
	}

	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// openStore builds the repository selected by STORE_DRIVER, registers its
// pool gauges and returns a func that releases the underlying connections.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger, registry *metrics.Metrics) (book.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		}, log)
		if err != nil {
			return nil, nil, err
		}

		registry.RegisterPool(config.DriverPostgres, func() metrics.PoolStats {
			stat := pool.Stat()
			return metrics.PoolStats{
				Acquired: int(stat.AcquiredConns()),
				Idle:     int(stat.IdleConns()),
				Total:    int(stat.TotalConns()),
				Max:      int(stat.MaxConns()),
			}
		})

		closeStore := func() {
			log.Info("closing postgres pool")
			pool.Close()
		}
		return book.NewPostgresRepository(pool, cfg.DBAcquireTimeout), closeStore, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, sqlite.Options{
			MaxOpenConns:    int(cfg.DBMaxConns),
			MaxIdleConns:    int(cfg.DBMinConns),
			ConnMaxIdleTime: cfg.DBMaxConnIdleTime,
			ConnMaxLifetime: cfg.DBMaxConnLifetime,
		}, log)
		if err != nil {
			return nil, nil, err
		}

		repository, err := book.NewSQLiteRepository(ctx, db, cfg.DBAcquireTimeout)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		registry.RegisterPool(config.DriverSQLite, func() metrics.PoolStats {
			stat := db.Stats()
			return metrics.PoolStats{
				Acquired: stat.InUse,
				Idle:     stat.Idle,
				Total:    stat.OpenConnections,
				Max:      stat.MaxOpenConnections,
			}
		})

		closeStore := func() {
			log.Info("closing sqlite database")
			if cerr := db.Close(); cerr != nil {
				log.Error("sqlite close error", slog.Any("error", cerr))
			}
		}
		return repository, closeStore, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
