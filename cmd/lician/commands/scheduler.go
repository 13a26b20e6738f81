package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lician/backend/internal/scheduler"
	"github.com/lician/backend/internal/scheduler/jobs"
	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/config"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the maintenance scheduler",
	Long: `Runs the cron scheduler in the foreground.

Jobs:
  roster_sync - daily roster refresh at 05:30 UTC

Example:
  go run ./cmd/lician scheduler
  go run ./cmd/lician scheduler --run-now`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "run all jobs once at startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)

	if cfg.Database.URL == "" {
		return fmt.Errorf("scheduler requires DATABASE_URL")
	}

	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	syncer := buildSyncer(cfg, log, universe.NewRepository(db.Pool))
	rosterJob := jobs.NewRosterSyncJob(syncer, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(rosterJob); err != nil {
		return fmt.Errorf("register roster sync job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		if err := sched.RunJob(rosterJob.Name()); err != nil {
			log.WithError(err).Error("Initial roster sync failed")
		}
	}

	fmt.Println("Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
