package jobs

import (
	"context"
	"fmt"

	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/logger"
)

// RosterSyncJob refreshes the stored ticker roster daily. It runs well
// before US market open so a same-day deploy picks up the new roster.
type RosterSyncJob struct {
	syncer *universe.Syncer
	logger *logger.Logger
}

// NewRosterSyncJob creates a new roster sync job.
func NewRosterSyncJob(syncer *universe.Syncer, log *logger.Logger) *RosterSyncJob {
	return &RosterSyncJob{
		syncer: syncer,
		logger: log,
	}
}

// Name returns the job name.
func (j *RosterSyncJob) Name() string {
	return "roster_sync"
}

// Schedule returns the cron schedule: 05:30 UTC daily.
func (j *RosterSyncJob) Schedule() string {
	return "0 30 5 * * *"
}

// Run executes the roster sync.
func (j *RosterSyncJob) Run(ctx context.Context) error {
	count, err := j.syncer.Sync(ctx)
	if err != nil {
		return fmt.Errorf("roster sync: %w", err)
	}

	j.logger.WithField("tickers", count).Info("Scheduled roster sync finished")
	return nil
}
