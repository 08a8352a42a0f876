// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

// Command api is the entry point for the Mumo Comics HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Select the comic content source (files or database).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mumocomics/mumoweb/internal/admin"
	"github.com/mumocomics/mumoweb/internal/api"
	"github.com/mumocomics/mumoweb/internal/auth"
	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/feed"
	"github.com/mumocomics/mumoweb/internal/platform/config"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/internal/platform/migration"
	pgstore "github.com/mumocomics/mumoweb/internal/platform/postgres"
	redisstore "github.com/mumocomics/mumoweb/internal/platform/redis"
	"github.com/mumocomics/mumoweb/internal/platform/sec"
	"github.com/mumocomics/mumoweb/internal/render"
	"github.com/mumocomics/mumoweb/internal/site"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Mumo] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; its absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("content_source", cfg.ContentSource),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Content Engine ─────────────────────────────────────────────────
	// The source is chosen once; everything downstream sees one interface.
	var source comics.Source
	switch cfg.ContentSource {
	case config.SourceFile:
		source = comics.NewFileSource(cfg.ContentDir, log)
	case config.SourcePostgres:
		source = comics.NewPostgresSource(pool, log)
	}

	snapshots := comics.NewSnapshotStore()
	repository := comics.NewRepository(source, snapshots, log)

	renderer, err := render.NewMarkdown(log)
	must(log, err, "initialize markdown renderer")

	// ── 8. Object Storage ─────────────────────────────────────────────────
	s3Client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	must(log, err, "initialize object storage client")

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckContent: func() error {
			_, err := source.Load(context.Background())
			return err
		},
	}, log)

	// ── 10. Domain Wiring ─────────────────────────────────────────────────
	userStore := auth.NewPostgresUserStore(pool)
	sessionStore := auth.NewRedisSessionStore(rdb)
	authService := auth.NewService(userStore, sessionStore, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	siteHandler := site.NewHandler(
		repository,
		renderer,
		feed.NewRSS(cfg.SiteBaseURL),
		feed.NewSitemap(cfg.SiteBaseURL),
	)

	adminStore := admin.NewPostgresStore(pool)
	mediaStore := admin.NewMinioMediaStore(s3Client, cfg.S3Bucket, log)
	adminService := admin.NewService(adminStore, mediaStore, log)
	adminHandler := admin.NewHandler(adminService)

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Site:      siteHandler,
		Admin:     adminHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, jwtSvc, snapshots, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
