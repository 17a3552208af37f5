// Package main runs the unified analytics service:
// - Ingestion (scheduled + on-demand): pulls scored records from the crawler API
// - Analytics (on demand): derives sentiment/risk/industry/correlation/feed views
// - Admin API: crawler config reconciliation, alert subscriber management
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/analytics"
	"github.com/nult2003/marketing-intelligence/internal/configsync"
	"github.com/nult2003/marketing-intelligence/internal/ingestion"
	"github.com/nult2003/marketing-intelligence/internal/server"
	"github.com/nult2003/marketing-intelligence/internal/storage"
	chstore "github.com/nult2003/marketing-intelligence/internal/storage/clickhouse"
	"github.com/nult2003/marketing-intelligence/internal/storage/memory"
	"github.com/nult2003/marketing-intelligence/internal/storage/migrations"
	pgstore "github.com/nult2003/marketing-intelligence/internal/storage/postgres"
)

// stores holds all storage implementations.
type stores struct {
	newsStore       storage.NewsStore
	trendStore      storage.TrendStore
	configStore     storage.ConfigStore
	subscriberStore storage.SubscriberStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	crawlerURL := flag.String("crawler-url", os.Getenv("CRAWLER_URL"), "Crawler collaborator base URL")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *crawlerURL == "" {
		logger.Fatal("--crawler-url is required")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Config reconciler: hydrate once from the persisted copy. A transient
	// failure here is fine; the first config request retries hydration.
	reconciler := configsync.New(st.configStore, log.New(os.Stdout, "[configsync] ", log.LstdFlags))
	if err := reconciler.HydrateFromStore(ctx); err != nil {
		logger.Printf("config hydration deferred: %v", err)
	}

	// Ingestion runner
	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Client:     ingestion.NewClient(*crawlerURL),
		NewsStore:  st.newsStore,
		TrendStore: st.trendStore,
		Config:     reconciler,
		Logger:     log.New(os.Stdout, "[ingestion] ", log.LstdFlags|log.Lshortfile),
	})

	// Analytics engine
	engine := analytics.NewEngine(st.newsStore, st.trendStore, log.New(os.Stdout, "[analytics] ", log.LstdFlags))

	// HTTP server
	srv := server.New(server.Options{
		Engine:      engine,
		NewsStore:   st.newsStore,
		TrendStore:  st.trendStore,
		Subscribers: st.subscriberStore,
		Reconciler:  reconciler,
		TriggerRun:  runner.TriggerNow,
		Logger:      logger,
	})
	httpServer := &http.Server{Addr: *addr, Handler: srv.Router()}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
	}()

	// Run ingestion in background
	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("Ingestion stopped: %v", err)
		}
	}()

	logger.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*stores, func(), error) {
	if useMemory {
		st := &stores{
			newsStore:       memory.NewNewsStore(),
			trendStore:      memory.NewTrendStore(),
			configStore:     memory.NewConfigStore(),
			subscriberStore: memory.NewSubscriberStore(),
		}
		return st, func() {}, nil
	}

	// PostgreSQL (transactional: news, config, subscribers)
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	// ClickHouse (analytics: trend metrics)
	chConn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	if err := migrations.RunClickhouseMigrations(ctx, chConn); err != nil {
		chConn.Close()
		pool.Close()
		return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
	}

	st := &stores{
		newsStore:       pgstore.NewNewsStore(pool),
		trendStore:      chstore.NewTrendStore(chConn),
		configStore:     pgstore.NewConfigStore(pool),
		subscriberStore: pgstore.NewSubscriberStore(pool),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return st, cleanup, nil
}

// envOr returns the env value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
