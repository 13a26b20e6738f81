package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lician/backend/internal/api"
	"github.com/lician/backend/internal/api/handlers"
	"github.com/lician/backend/internal/sitemap"
	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/config"
	"github.com/lician/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP server.

Endpoints:
  GET  /health                         - Health check
  GET  /sitemap-compare-index.xml      - Sitemap index (both variants)
  GET  /sitemap-compare-yearly.xml     - Yearly comparison sitemap
  GET  /sitemap-compare-quarterly.xml  - Quarterly comparison sitemap
  GET  /api/universe                   - Roster and URL-space stats
  POST /api/universe/sync              - Trigger a roster sync

Example:
  go run ./cmd/lician api
  go run ./cmd/lician api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "override listen port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := newLogger(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing server")

	// 3. Connect to database (optional)
	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	// 4. Connect to Redis (optional page cache)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	pageCache := redis.NewCache(redisClient, "lician")

	// 5. Load the roster. It stays fixed for the process lifetime so
	// sitemap page numbers remain stable across requests.
	var repo *universe.Repository
	if db != nil {
		repo = universe.NewRepository(db.Pool)
	}
	roster, err := universe.LoadRoster(ctx, repo, cfg.Roster.FilePath, log)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	// 6. Build the enumerators and handlers
	yearly, quarterly := buildEnumerators(cfg, roster, time.Now())

	log.WithFields(map[string]interface{}{
		"tickers":        roster.Len(),
		"pairs":          yearly.PairsPerPeriod(),
		"yearly_urls":    yearly.TotalURLs(),
		"quarterly_urls": quarterly.TotalURLs(),
	}).Info("Sitemap space computed")

	sitemapHandler := sitemap.NewHandler(yearly, quarterly, cfg.BaseURL, pageCache, cfg.Sitemap.CacheTTL, log)

	var syncer *universe.Syncer
	if repo != nil {
		syncer = buildSyncer(cfg, log, repo)
	}
	universeHandler := handlers.NewUniverseHandler(roster, yearly, quarterly, syncer, log)

	// 7. Create router and server
	router := api.NewRouter(sitemapHandler, universeHandler, log)
	server := api.New(cfg, log, router)

	// 8. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("Server started")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
