// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package main is the entry point for the Reawarding server.
//
// Reawarding tracks personal movie ratings and derives year-end awards from
// them. Guests can rate movies before creating an account; their interactions
// live in a durable server-side store and migrate into the account on
// sign-in. A banner arbitration engine decides which single prompt (welcome,
// returning, save) a guest sees.
//
// Components start in this order:
//
//  1. Configuration: Koanf v2 layered sources (env > config file > defaults)
//  2. Database: DuckDB ranking repository and movie catalog
//  3. Guest store: BadgerDB-backed (or in-memory) interaction store
//  4. Identity: JWT verification plus sign-in/sign-out notification
//  5. Migration engine: armed by sign-in, latched until sign-out
//  6. Banner poller: periodic arbitration of guest prompts
//  7. HTTP server: Chi router under a Suture supervisor tree
//
// Shutdown on SIGINT/SIGTERM is graceful: the HTTP server drains in-flight
// requests, the guest store flushes, and DuckDB checkpoints before close.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/robleto/reawarding/internal/api"
	"github.com/robleto/reawarding/internal/banner"
	"github.com/robleto/reawarding/internal/config"
	"github.com/robleto/reawarding/internal/database"
	"github.com/robleto/reawarding/internal/gueststore"
	"github.com/robleto/reawarding/internal/identity"
	"github.com/robleto/reawarding/internal/logging"
	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/migration"
	"github.com/robleto/reawarding/internal/supervisor"
	"github.com/robleto/reawarding/internal/tmdb"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Bool("tmdb_enabled", cfg.TMDB.Enabled).
		Msg("Starting Reawarding")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	guestStore := openGuestStore(ctx, cfg)
	defer func() {
		if err := guestStore.Close(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Error closing guest store")
		}
	}()

	// Identity is optional: without a JWT secret the app runs guest-only.
	var jwtManager *identity.JWTManager
	if cfg.Security.JWTSecret != "" {
		jwtManager, err = identity.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
	} else {
		logging.Warn().Msg("security.jwt_secret not set; authenticated endpoints disabled")
	}

	notifier := identity.NewNotifier()
	engine := migration.NewEngine(guestStore, db)
	notifier.Subscribe(func(userID string) {
		if userID == "" {
			engine.Reset()
			return
		}
		result := engine.Run(ctx, userID)
		if result.Skipped {
			return
		}
		logging.Info().
			Str("user_id", userID).
			Int("migrated", result.MigratedCount).
			Int("failed", result.FailedCount).
			Msg("Sign-in migration finished")
	})

	poller := banner.NewPoller(guestStore, banner.Thresholds{
		Returning:  cfg.Banner.ReturningThreshold,
		SavePrompt: cfg.Banner.SavePromptThreshold,
	}, cfg.Banner.PollInterval)

	var importer api.MovieImporter
	if cfg.TMDB.Enabled {
		importer = tmdb.NewClient(&cfg.TMDB)
		logging.Info().Str("base_url", cfg.TMDB.BaseURL).Msg("TMDB import enabled")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Rankings:    db,
		Catalog:     db,
		Nominations: db,
		AwardSource: db,
		Guest:       guestStore,
		Migrator:    engine,
		Banner:      poller,
		Importer:    importer,
		JWT:         jwtManager,
		Notifier:    notifier,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddBackgroundService(poller)
	tree.AddBackgroundService(uptimeService{})
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// openGuestStore opens the configured persistence medium, falling back to
// memory when BadgerDB cannot be opened. The store itself degrades rather
// than failing, so a broken medium never blocks startup.
func openGuestStore(ctx context.Context, cfg *config.Config) *gueststore.Store {
	if cfg.GuestStore.InMemory || cfg.GuestStore.Path == "" {
		logging.Info().Msg("Guest store running in memory")
		return gueststore.New(ctx, gueststore.NewMemoryMedium())
	}

	medium, err := gueststore.OpenBadgerMedium(cfg.GuestStore.Path, false)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.GuestStore.Path).
			Msg("Failed to open guest store; falling back to memory")
		return gueststore.New(ctx, gueststore.NewMemoryMedium())
	}

	logging.Info().Str("path", cfg.GuestStore.Path).Msg("Guest store opened")
	return gueststore.New(ctx, medium)
}

// uptimeService refreshes the uptime gauge every 15 seconds.
type uptimeService struct{}

func (uptimeService) Serve(ctx context.Context) error {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}
}

func (uptimeService) String() string { return "uptime-gauge" }
