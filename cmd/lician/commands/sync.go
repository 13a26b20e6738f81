package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/config"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the stored ticker roster",
	Long: `Fetches the current ticker list from the configured sources
(EODHD, falling back to the slickcharts S&P 500 scrape) and replaces
the roster stored in PostgreSQL.

A running server keeps serving its loaded roster; restart it to pick
up the new one.

Example:
  go run ./cmd/lician sync`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)

	if cfg.Database.URL == "" {
		return fmt.Errorf("roster sync requires DATABASE_URL")
	}

	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	syncer := buildSyncer(cfg, log, universe.NewRepository(db.Pool))

	count, err := syncer.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync roster: %w", err)
	}

	fmt.Printf("Roster synced: %d tickers\n", count)
	return nil
}
