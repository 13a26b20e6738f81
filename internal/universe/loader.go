package universe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lician/backend/pkg/logger"
)

// LoadRoster resolves the ticker roster at startup: the database first,
// then the fallback ticker file. The returned roster is fixed for the
// process lifetime; a roster change only takes effect on restart, which
// keeps sitemap page numbers consistent across requests.
func LoadRoster(ctx context.Context, repo *Repository, filePath string, log *logger.Logger) (*Roster, error) {
	if repo != nil {
		symbols, err := repo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load roster from database: %w", err)
		}
		if len(symbols) > 0 {
			log.WithField("tickers", len(symbols)).Info("Roster loaded from database")
			return NewRoster(symbols)
		}
		log.Warn("Tickers table is empty")
	}

	if filePath != "" {
		symbols, err := readRosterFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("load roster from file: %w", err)
		}
		log.WithFields(map[string]interface{}{
			"tickers": len(symbols),
			"file":    filePath,
		}).Info("Roster loaded from file")
		return NewRoster(symbols)
	}

	return nil, fmt.Errorf("no roster source available")
}

// readRosterFile reads one symbol per line; blank lines and '#' comments
// are skipped.
func readRosterFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	var symbols []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	return symbols, nil
}
