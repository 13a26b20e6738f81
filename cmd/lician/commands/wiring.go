package commands

import (
	"context"
	"time"

	"github.com/lician/backend/internal/external/eodhd"
	"github.com/lician/backend/internal/external/slickcharts"
	"github.com/lician/backend/internal/periods"
	"github.com/lician/backend/internal/sitemap"
	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/config"
	"github.com/lician/backend/pkg/database"
	"github.com/lician/backend/pkg/httputil"
	"github.com/lician/backend/pkg/logger"
)

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Env:    cfg.Env,
	})
}

// connectDatabase opens the pool when a database is configured; several
// commands can run file-only without one.
func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.DB, error) {
	if cfg.Database.URL == "" {
		log.Warn("No database configured, running with file roster only")
		return nil, nil
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	log.Info("Connected to database")
	return db, nil
}

// buildSyncer wires the roster sync chain: EODHD first, the slickcharts
// scraper as fallback.
func buildSyncer(cfg *config.Config, log *logger.Logger, repo *universe.Repository) *universe.Syncer {
	httpClient := httputil.New(log).WithRateLimit(5, 2)

	sources := []universe.Source{}
	if cfg.EODHD.APIKey != "" {
		sources = append(sources,
			eodhd.NewClient(httpClient, log, cfg.EODHD.BaseURL, cfg.EODHD.APIKey, cfg.EODHD.Exchange))
	}
	sources = append(sources, slickcharts.NewClient(httpClient, log))

	return universe.NewSyncer(repo, log, sources...)
}

// buildEnumerators constructs the yearly and quarterly sitemap
// enumerators over the loaded roster. Period sets run from the
// configured first year up to now.
func buildEnumerators(cfg *config.Config, roster *universe.Roster, now time.Time) (yearly, quarterly *sitemap.Enumerator) {
	curYear, curQuarter := periods.CurrentQuarter(now.UTC())

	yearly = sitemap.NewEnumerator(
		roster.Symbols(),
		periods.Years(cfg.Sitemap.FirstYear, curYear),
		cfg.BaseURL,
		sitemap.VariantYearly,
		sitemap.YearlyPath,
		cfg.Sitemap.PageSize,
	)

	quarterly = sitemap.NewEnumerator(
		roster.Symbols(),
		periods.Quarters(cfg.Sitemap.FirstYear, curYear, curQuarter),
		cfg.BaseURL,
		sitemap.VariantQuarterly,
		sitemap.QuarterlyPath,
		cfg.Sitemap.PageSize,
	)

	return yearly, quarterly
}
