package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/config"
	"github.com/lician/backend/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report configuration and connectivity",
	Long: `Checks the configured collaborators and prints a short report:
database reachability, Redis reachability, and stored roster size.

Example:
  go run ./cmd/lician status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)

	fmt.Println("=== lician backend status ===")
	fmt.Printf("env:        %s\n", cfg.Env)
	fmt.Printf("base URL:   %s\n", cfg.BaseURL)
	fmt.Printf("page size:  %d\n", cfg.Sitemap.PageSize)
	fmt.Printf("first year: %d\n", cfg.Sitemap.FirstYear)

	// Database
	if cfg.Database.URL == "" {
		fmt.Println("database:   not configured")
	} else {
		db, err := connectDatabase(ctx, cfg, log)
		if err != nil {
			fmt.Printf("database:   UNREACHABLE (%v)\n", err)
		} else {
			defer db.Close()
			health := db.HealthCheck(ctx)
			fmt.Printf("database:   ok (%s, %d/%d conns)\n",
				health.ResponseTime, health.TotalConns, health.MaxConns)

			count, err := universe.NewRepository(db.Pool).Count(ctx)
			if err != nil {
				fmt.Printf("roster:     error (%v)\n", err)
			} else {
				fmt.Printf("roster:     %d tickers stored\n", count)
			}
		}
	}

	// Redis
	if !cfg.Redis.Enabled {
		fmt.Println("redis:      disabled")
	} else {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			fmt.Printf("redis:      UNREACHABLE (%v)\n", err)
		} else {
			defer redisClient.Close()
			fmt.Println("redis:      ok")
		}
	}

	return nil
}
