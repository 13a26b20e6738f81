package sitemap

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lician/backend/pkg/logger"
)

// parsedURLSet mirrors the wire format for response assertions.
type parsedURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc        string `xml:"loc"`
		LastMod    string `xml:"lastmod"`
		ChangeFreq string `xml:"changefreq"`
		Priority   string `xml:"priority"`
	} `xml:"url"`
}

type parsedIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"sitemap"`
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	yearly := NewEnumerator(
		[]string{"AAPL", "MSFT", "GOOGL"},
		[]string{"2024"},
		"https://lician.com", VariantYearly, YearlyPath, DefaultPageSize,
	)
	quarterly := NewEnumerator(
		[]string{"AAPL", "MSFT", "GOOGL"},
		[]string{"2024-Q1", "2024-Q2"},
		"https://lician.com", VariantQuarterly, QuarterlyPath, DefaultPageSize,
	)

	h := NewHandler(yearly, quarterly, "https://lician.com", nil, 24*time.Hour, logger.NewNop())
	h.now = func() time.Time { return testNow }
	return h
}

func get(t *testing.T, fn http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestYearlyHandler(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h.Yearly, "/sitemap-compare-yearly.xml")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400, s-maxage=86400", rec.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), xml.Header))

	var set parsedURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.URLs, 3)

	for _, u := range set.URLs {
		assert.Equal(t, "2026-08-23", u.LastMod)
		assert.Equal(t, "yearly", u.ChangeFreq)
		assert.Equal(t, "0.5", u.Priority)
		assert.Contains(t, u.Loc, "https://lician.com/compare/")
	}
}

func TestQuarterlyHandler(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h.Quarterly, "/sitemap-compare-quarterly.xml")

	var set parsedURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	// 3 pairs x 2 quarters
	require.Len(t, set.URLs, 6)
	assert.Contains(t, set.URLs[0].Loc, "/q/2024-Q1")
	assert.Equal(t, "quarterly", set.URLs[0].ChangeFreq)
}

func TestHandlerPageDefaults(t *testing.T) {
	h := newTestHandler(t)

	base := get(t, h.Yearly, "/sitemap-compare-yearly.xml").Body.String()

	// Missing, junk, zero and negative page params all serve page 1
	for _, target := range []string{
		"/sitemap-compare-yearly.xml?page=",
		"/sitemap-compare-yearly.xml?page=abc",
		"/sitemap-compare-yearly.xml?page=0",
		"/sitemap-compare-yearly.xml?page=-3",
	} {
		rec := get(t, h.Yearly, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, base, rec.Body.String(), target)
	}
}

func TestHandlerOutOfRangePage(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h.Yearly, "/sitemap-compare-yearly.xml?page=999999")

	assert.Equal(t, http.StatusOK, rec.Code)

	var set parsedURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	assert.Empty(t, set.URLs)
}

func TestHandlerDeterminism(t *testing.T) {
	h := newTestHandler(t)

	first := get(t, h.Quarterly, "/sitemap-compare-quarterly.xml?page=1")
	second := get(t, h.Quarterly, "/sitemap-compare-quarterly.xml?page=1")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIndexHandler(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h.Index, "/sitemap-compare-index.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

	var idx parsedIndex
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &idx))

	// One page each for the yearly and quarterly variants
	require.Len(t, idx.Sitemaps, 2)
	assert.Equal(t, "https://lician.com/sitemap-compare-yearly.xml?page=1", idx.Sitemaps[0].Loc)
	assert.Equal(t, "https://lician.com/sitemap-compare-quarterly.xml?page=1", idx.Sitemaps[1].Loc)
	assert.Equal(t, "2026-08-23", idx.Sitemaps[0].LastMod)
}

func TestIndexHandlerMultiplePages(t *testing.T) {
	yearly := NewEnumerator(makeSymbols(10), []string{"2024"}, "https://lician.com", VariantYearly, YearlyPath, 20)
	quarterly := NewEnumerator(nil, nil, "https://lician.com", VariantQuarterly, QuarterlyPath, 20)

	h := NewHandler(yearly, quarterly, "https://lician.com", nil, time.Hour, logger.NewNop())
	h.now = func() time.Time { return testNow }

	rec := get(t, h.Index, "/sitemap-compare-index.xml")

	var idx parsedIndex
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &idx))

	// 45 URLs at page size 20 -> 3 yearly pages, quarterly contributes none
	require.Len(t, idx.Sitemaps, 3)
	assert.Equal(t, "https://lician.com/sitemap-compare-yearly.xml?page=3", idx.Sitemaps[2].Loc)
}
