package sitemap

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lician/backend/internal/periods"
)

var testNow = time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)

// makeSymbols generates n distinct ticker symbols.
func makeSymbols(n int) []string {
	symbols := make([]string, n)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("T%04d", i)
	}
	return symbols
}

func TestPageBoundaryScenario(t *testing.T) {
	// N=3, M=1: three URLs total, all on page 1
	enum := NewEnumerator(
		[]string{"AAPL", "MSFT", "GOOGL"},
		periods.Years(2024, 2024),
		"https://lician.com", "yearly", YearlyPath, DefaultPageSize,
	)

	assert.Equal(t, int64(3), enum.PairsPerPeriod())
	assert.Equal(t, int64(3), enum.TotalURLs())
	assert.Equal(t, int64(1), enum.PageCount())

	entries := enum.Page(1, testNow)
	require.Len(t, entries, 3)

	locs := make(map[string]bool)
	for _, e := range entries {
		locs[e.Loc] = true
		assert.Equal(t, "2026-08-23", e.LastMod)
		assert.Equal(t, "yearly", e.ChangeFreq)
		assert.Equal(t, "0.5", e.Priority)
	}

	assert.True(t, locs["https://lician.com/compare/aapl-vs-msft/2024"])
	assert.True(t, locs["https://lician.com/compare/aapl-vs-googl/2024"])
	assert.True(t, locs["https://lician.com/compare/googl-vs-msft/2024"])

	// Page past the end is empty, not an error
	assert.Empty(t, enum.Page(2, testNow))
	assert.Empty(t, enum.Page(999999, testNow))
}

func TestPageCanonicalOrdering(t *testing.T) {
	// Roster order deliberately not alphabetical; the URL must sort the
	// pair alphabetically regardless.
	enum := NewEnumerator(
		[]string{"MSFT", "AAPL"},
		[]string{"2024"},
		"https://lician.com", "yearly", YearlyPath, DefaultPageSize,
	)

	entries := enum.Page(1, testNow)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://lician.com/compare/aapl-vs-msft/2024", entries[0].Loc)
}

func TestPageBijectionLargeRoster(t *testing.T) {
	// N=500 across 4 quarters: 124750 pairs/period, 499000 URLs, 10 pages
	enum := NewEnumerator(
		makeSymbols(500),
		periods.Quarters(2024, 2024, 4),
		"https://lician.com", "quarterly", QuarterlyPath, DefaultPageSize,
	)

	require.Equal(t, int64(124750), enum.PairsPerPeriod())
	require.Equal(t, int64(499000), enum.TotalURLs())
	require.Equal(t, int64(10), enum.PageCount())

	seen := make(map[string]struct{}, 499000)
	for page := int64(1); page <= enum.PageCount(); page++ {
		entries := enum.Page(page, testNow)

		if page < 10 {
			require.Len(t, entries, 50000, "page %d", page)
		} else {
			require.Len(t, entries, 49000, "last page")
		}

		for _, e := range entries {
			_, dup := seen[e.Loc]
			require.False(t, dup, "duplicate URL: %s", e.Loc)
			seen[e.Loc] = struct{}{}
		}
	}

	// No gaps: every combination appeared exactly once
	assert.Len(t, seen, 499000)
}

func TestPageDeterminism(t *testing.T) {
	enum := NewEnumerator(
		makeSymbols(100),
		periods.Years(2020, 2024),
		"https://lician.com", "yearly", YearlyPath, 1000,
	)

	first := enum.Page(7, testNow)
	second := enum.Page(7, testNow)
	assert.Equal(t, first, second)
}

func TestPageBelowOneNormalizesToFirst(t *testing.T) {
	enum := NewEnumerator(
		[]string{"AAPL", "MSFT", "GOOGL"},
		[]string{"2024"},
		"https://lician.com", "yearly", YearlyPath, DefaultPageSize,
	)

	assert.Equal(t, enum.Page(1, testNow), enum.Page(0, testNow))
	assert.Equal(t, enum.Page(1, testNow), enum.Page(-5, testNow))
}

func TestPagePartialLastPage(t *testing.T) {
	// 10 tickers, 1 period: 45 URLs at page size 20 -> 20/20/5
	enum := NewEnumerator(
		makeSymbols(10),
		[]string{"2024"},
		"https://lician.com", "yearly", YearlyPath, 20,
	)

	require.Equal(t, int64(45), enum.TotalURLs())
	require.Equal(t, int64(3), enum.PageCount())

	assert.Len(t, enum.Page(1, testNow), 20)
	assert.Len(t, enum.Page(2, testNow), 20)
	assert.Len(t, enum.Page(3, testNow), 5)
	assert.Empty(t, enum.Page(4, testNow))
}

func TestPagePeriodTransition(t *testing.T) {
	// 3 tickers x 2 years = 6 URLs at page size 4: the second page
	// starts mid-period-boundary
	enum := NewEnumerator(
		[]string{"A", "B", "C"},
		periods.Years(2023, 2024),
		"https://lician.com", "yearly", YearlyPath, 4,
	)

	page1 := enum.Page(1, testNow)
	require.Len(t, page1, 4)
	for _, e := range page1[:3] {
		assert.True(t, strings.HasSuffix(e.Loc, "/2023"), "got %s", e.Loc)
	}
	assert.True(t, strings.HasSuffix(page1[3].Loc, "/2024"))

	page2 := enum.Page(2, testNow)
	require.Len(t, page2, 2)
	for _, e := range page2 {
		assert.True(t, strings.HasSuffix(e.Loc, "/2024"), "got %s", e.Loc)
	}
}

func TestEmptyRosterAndPeriods(t *testing.T) {
	empty := NewEnumerator(nil, []string{"2024"}, "https://lician.com", "yearly", YearlyPath, DefaultPageSize)
	assert.Zero(t, empty.TotalURLs())
	assert.Zero(t, empty.PageCount())
	assert.Empty(t, empty.Page(1, testNow))

	single := NewEnumerator([]string{"AAPL"}, []string{"2024"}, "https://lician.com", "yearly", YearlyPath, DefaultPageSize)
	assert.Zero(t, single.TotalURLs())
	assert.Empty(t, single.Page(1, testNow))

	noPeriods := NewEnumerator([]string{"AAPL", "MSFT"}, nil, "https://lician.com", "yearly", YearlyPath, DefaultPageSize)
	assert.Zero(t, noPeriods.TotalURLs())
	assert.Empty(t, noPeriods.Page(1, testNow))
}

func TestPathFuncs(t *testing.T) {
	assert.Equal(t, "/compare/aapl-vs-msft/2024", YearlyPath("aapl", "msft", "2024"))
	assert.Equal(t, "/compare/aapl-vs-msft/q/2024-Q1", QuarterlyPath("aapl", "msft", "2024-Q1"))
}
