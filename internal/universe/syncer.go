package universe

import (
	"context"
	"fmt"

	"github.com/lician/backend/pkg/logger"
)

// Source provides ticker symbols from an upstream data provider.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// FetchSymbols returns the current symbol list.
	FetchSymbols(ctx context.Context) ([]string, error)
}

// Store is the sink a syncer writes the refreshed roster to.
// *Repository satisfies it.
type Store interface {
	Replace(ctx context.Context, symbols []string) error
}

// Syncer refreshes the stored roster from upstream sources. Sources are
// tried in order; the first one that returns a usable list wins.
type Syncer struct {
	sources []Source
	store   Store
	logger  *logger.Logger
}

// NewSyncer creates a roster syncer.
func NewSyncer(store Store, log *logger.Logger, sources ...Source) *Syncer {
	return &Syncer{
		sources: sources,
		store:   store,
		logger:  log,
	}
}

// Sync fetches a fresh symbol list and replaces the stored roster.
// Returns the number of tickers written. The in-memory roster of a
// running server is not touched; the new roster is picked up on the
// next process start.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	var lastErr error

	for _, source := range s.sources {
		symbols, err := source.FetchSymbols(ctx)
		if err != nil {
			s.logger.WithError(err).WithField("source", source.Name()).Warn("Roster source failed")
			lastErr = err
			continue
		}
		if len(symbols) == 0 {
			s.logger.WithField("source", source.Name()).Warn("Roster source returned no symbols")
			lastErr = fmt.Errorf("source %s returned no symbols", source.Name())
			continue
		}

		roster, err := NewRoster(symbols)
		if err != nil {
			return 0, fmt.Errorf("validate roster from %s: %w", source.Name(), err)
		}

		if err := s.store.Replace(ctx, roster.Symbols()); err != nil {
			return 0, fmt.Errorf("store roster from %s: %w", source.Name(), err)
		}

		s.logger.WithFields(map[string]interface{}{
			"source":  source.Name(),
			"tickers": roster.Len(),
		}).Info("Roster synced")

		return roster.Len(), nil
	}

	if lastErr != nil {
		return 0, fmt.Errorf("all roster sources failed: %w", lastErr)
	}
	return 0, fmt.Errorf("no roster sources configured")
}
