package sitemap

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPageSize is the sitemaps.org per-file URL limit.
const DefaultPageSize = 50000

// defaultPriority is the static priority emitted for every comparison URL.
const defaultPriority = "0.5"

// Entry is one <url> element of a sitemap page.
type Entry struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   string
}

// PathFunc formats the comparison-page path for a canonical ticker pair
// and a period label. Both tickers arrive lowercased and alphabetically
// sorted.
type PathFunc func(first, second, period string) string

// YearlyPath formats annual comparison paths: /compare/a-vs-b/2024.
func YearlyPath(first, second, period string) string {
	return fmt.Sprintf("/compare/%s-vs-%s/%s", first, second, period)
}

// QuarterlyPath formats quarterly comparison paths: /compare/a-vs-b/q/2024-Q1.
func QuarterlyPath(first, second, period string) string {
	return fmt.Sprintf("/compare/%s-vs-%s/q/%s", first, second, period)
}

// Enumerator serves fixed-size pages out of the ordered sequence
// (period 0, pair 0), (period 0, pair 1), … without ever building the
// full combination space. For a fixed roster and period set the mapping
// from global index to URL is a deterministic bijection, so crawling
// pages 1..PageCount yields every combination exactly once.
type Enumerator struct {
	symbols    []string // roster order, lowercased once at construction
	periods    []string
	baseURL    string
	changeFreq string
	pathFn     PathFunc
	pageSize   int64
}

// NewEnumerator creates an enumerator over the given roster symbols and
// period labels. pageSize falls back to DefaultPageSize when non-positive.
func NewEnumerator(symbols, periods []string, baseURL, changeFreq string, pathFn PathFunc, pageSize int) *Enumerator {
	lowered := make([]string, len(symbols))
	for i, s := range symbols {
		lowered[i] = strings.ToLower(s)
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Enumerator{
		symbols:    lowered,
		periods:    periods,
		baseURL:    strings.TrimRight(baseURL, "/"),
		changeFreq: changeFreq,
		pathFn:     pathFn,
		pageSize:   int64(pageSize),
	}
}

// PairsPerPeriod returns the number of unordered ticker pairs.
func (e *Enumerator) PairsPerPeriod() int64 {
	return PairCount(len(e.symbols))
}

// TotalURLs returns the size of the full combination space.
func (e *Enumerator) TotalURLs() int64 {
	return e.PairsPerPeriod() * int64(len(e.periods))
}

// PageCount returns the number of non-empty pages.
func (e *Enumerator) PageCount() int64 {
	total := e.TotalURLs()
	if total == 0 {
		return 0
	}
	return (total + e.pageSize - 1) / e.pageSize
}

// Page computes the entries of the 1-based page. Pages past the end
// (and page values below 1) degrade to an empty slice rather than an
// error: the endpoint is crawler-facing, not contract-bearing. Every
// entry shares the same lastmod date, taken from now in UTC.
func (e *Enumerator) Page(page int64, now time.Time) []Entry {
	if page < 1 {
		page = 1
	}

	n := len(e.symbols)
	pairs := e.PairsPerPeriod()
	total := e.TotalURLs()

	start := (page - 1) * e.pageSize
	if start >= total {
		return nil
	}
	end := start + e.pageSize
	if end > total {
		end = total
	}

	lastMod := now.UTC().Format("2006-01-02")
	entries := make([]Entry, 0, end-start)

	for idx := start; idx < end; idx++ {
		periodIdx := idx / pairs
		if periodIdx >= int64(len(e.periods)) {
			break
		}
		pairIdx := idx % pairs

		i, j := PairAt(n, pairIdx)
		first, second := e.symbols[i], e.symbols[j]

		// Canonical URL ordering is alphabetical, independent of the
		// pair's position in the roster: a pair always maps to one URL.
		if second < first {
			first, second = second, first
		}

		entries = append(entries, Entry{
			Loc:        e.baseURL + e.pathFn(first, second, e.periods[periodIdx]),
			LastMod:    lastMod,
			ChangeFreq: e.changeFreq,
			Priority:   defaultPriority,
		})
	}

	return entries
}
