// Package main is the entry point for the blog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"customblog/internal/blog"
	"customblog/internal/cache"
	"customblog/internal/config"
	"customblog/internal/database"
	"customblog/internal/handlers"
	"customblog/internal/memstore"
	"customblog/internal/middleware"
	"customblog/internal/pagination"
	"customblog/internal/router"
	"customblog/internal/session"
	"customblog/internal/store"
)

// members is the member persistence shared by login and seeding.
type members interface {
	handlers.MemberFinder
	database.Members
}

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logger(os.Stdout))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"datastore", cfg.Datastore,
		"page_size", cfg.PageSize,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pages, err := pagination.NewCalculator(cfg.PageSize)
	if err != nil {
		slog.Error("invalid page size", "error", err)
		os.Exit(1)
	}

	// Select the datastore backend.
	var (
		ds      blog.Datastore
		memberS members
		db      *sql.DB
	)
	switch cfg.Datastore {
	case config.DatastoreMemory:
		mem := memstore.New()
		ds, memberS = mem, mem.Members()
		slog.Warn("using in-memory datastore; data is lost on restart")
	default:
		db, err = database.Connect(ctx, cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pg := store.NewDatastore(db)
		ds, memberS = pg, pg.Members()
	}

	svc := blog.NewService(ds, pages)

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, memberS, svc); err != nil {
			slog.Error("failed to seed datastore", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (session store + listing cache).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	listings := newListingCache(valkeyClient, cfg.ListingCacheTTL)

	commentLimiter := middleware.NewRateLimiter(cfg.CommentRateLimit, time.Minute)
	defer commentLimiter.Stop()

	r := router.New(router.Deps{
		Sessions:       sessionStore,
		Public:         handlers.NewPublic(svc, listings),
		Writer:         handlers.NewWriter(svc, listings),
		Auth:           handlers.NewAuth(sessionStore, memberS),
		CommentLimiter: commentLimiter,
		SecureCookies:  secureCookies,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newListingCache returns nil when caching is disabled, which the handlers
// treat as a pass-through.
func newListingCache(client *redis.Client, ttl time.Duration) *cache.ListingCache {
	if ttl == 0 {
		slog.Info("listing cache disabled")
		return nil
	}
	return cache.NewListingCache(client, ttl)
}
