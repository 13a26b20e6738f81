// Package universe manages the ticker roster: the ordered list of symbols
// the comparison pages (and therefore the sitemaps) are generated from.
package universe

import (
	"fmt"
	"strings"
)

// Roster is an ordered, immutable list of ticker symbols. Roster order is
// load-bearing: it defines the pair-index mapping the sitemap enumerator
// paginates over, so it must not change while a process is serving.
type Roster struct {
	symbols []string
}

// NewRoster builds a roster from raw symbols. Symbols are trimmed and
// uppercased; blank entries are skipped; duplicates are an error because
// a duplicated ticker would produce duplicate comparison URLs.
func NewRoster(raw []string) (*Roster, error) {
	symbols := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, s := range raw {
		symbol := strings.ToUpper(strings.TrimSpace(s))
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			return nil, fmt.Errorf("duplicate ticker symbol: %s", symbol)
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}

	return &Roster{symbols: symbols}, nil
}

// Symbols returns a copy of the roster in canonical order.
func (r *Roster) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// Len returns the number of tickers in the roster.
func (r *Roster) Len() int {
	return len(r.symbols)
}
