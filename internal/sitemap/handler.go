package sitemap

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lician/backend/pkg/logger"
	"github.com/lician/backend/pkg/redis"
)

// The combination space changes at most daily (roster sync is a daily
// job), so crawlers may cache a page for a full day.
const cacheControl = "public, max-age=86400, s-maxage=86400"

// VariantYearly and VariantQuarterly name the two sitemap endpoints.
const (
	VariantYearly    = "yearly"
	VariantQuarterly = "quarterly"
)

// Handler serves the comparison sitemap endpoints. Each request is
// stateless: the page is computed from the request's page number alone,
// optionally short-circuited by a Redis copy of the rendered bytes.
type Handler struct {
	yearly    *Enumerator
	quarterly *Enumerator
	baseURL   string
	cache     *redis.Cache
	cacheTTL  time.Duration
	logger    *logger.Logger

	// now is swappable for deterministic tests
	now func() time.Time
}

// NewHandler creates a sitemap handler. cache may be nil, in which case
// every request renders from scratch.
func NewHandler(yearly, quarterly *Enumerator, baseURL string, cache *redis.Cache, cacheTTL time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		yearly:    yearly,
		quarterly: quarterly,
		baseURL:   baseURL,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    log,
		now:       time.Now,
	}
}

// Yearly serves GET /sitemap-compare-yearly.xml?page=N.
func (h *Handler) Yearly(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, VariantYearly, h.yearly)
}

// Quarterly serves GET /sitemap-compare-quarterly.xml?page=N.
func (h *Handler) Quarterly(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, VariantQuarterly, h.quarterly)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, variant string, enum *Enumerator) {
	page := parsePage(r)
	now := h.now().UTC()

	key := redis.SitemapPageKey(variant, int(page), now.Format("2006-01-02"))
	if h.cache != nil {
		if body, found, err := h.cache.GetBytes(r.Context(), key); err == nil && found {
			writeXML(w, body)
			return
		}
	}

	entries := enum.Page(page, now)
	body, err := Render(entries)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"variant": variant,
			"page":    page,
		}).Error("Failed to render sitemap page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetBytes(r.Context(), key, body, h.cacheTTL); err != nil {
			h.logger.WithError(err).Warn("Failed to cache sitemap page")
		}
	}

	h.logger.WithFields(map[string]interface{}{
		"variant": variant,
		"page":    page,
		"urls":    len(entries),
	}).Debug("Sitemap page served")

	writeXML(w, body)
}

// Index serves GET /sitemap-compare-index.xml: one reference per page of
// both variants, so crawlers discover the whole pagination space.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	lastMod := now.Format("2006-01-02")

	refs := make([]IndexEntry, 0, h.yearly.PageCount()+h.quarterly.PageCount())
	for page := int64(1); page <= h.yearly.PageCount(); page++ {
		refs = append(refs, IndexEntry{
			Loc:     fmt.Sprintf("%s/sitemap-compare-yearly.xml?page=%d", h.baseURL, page),
			LastMod: lastMod,
		})
	}
	for page := int64(1); page <= h.quarterly.PageCount(); page++ {
		refs = append(refs, IndexEntry{
			Loc:     fmt.Sprintf("%s/sitemap-compare-quarterly.xml?page=%d", h.baseURL, page),
			LastMod: lastMod,
		})
	}

	body, err := RenderIndex(refs)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render sitemap index")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeXML(w, body)
}

// parsePage reads the page query parameter permissively: missing,
// non-numeric, zero and negative values all normalize to page 1. A
// crawler-facing endpoint should never 4xx on junk pagination input.
func parsePage(r *http.Request) int64 {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}

	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}

	return page
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
