package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lician/backend/internal/sitemap"
	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/logger"
)

// UniverseHandler exposes the ticker roster and the sitemap combination
// space, and lets operators trigger a roster sync.
type UniverseHandler struct {
	roster    *universe.Roster
	yearly    *sitemap.Enumerator
	quarterly *sitemap.Enumerator
	syncer    *universe.Syncer // nil when no database is configured
	logger    *logger.Logger
}

// NewUniverseHandler creates a new universe handler.
func NewUniverseHandler(
	roster *universe.Roster,
	yearly *sitemap.Enumerator,
	quarterly *sitemap.Enumerator,
	syncer *universe.Syncer,
	log *logger.Logger,
) *UniverseHandler {
	return &UniverseHandler{
		roster:    roster,
		yearly:    yearly,
		quarterly: quarterly,
		syncer:    syncer,
		logger:    log,
	}
}

// VariantStats describes one sitemap variant's combination space.
type VariantStats struct {
	TotalURLs int64 `json:"total_urls"`
	Pages     int64 `json:"pages"`
}

// UniverseResponse is the GET /api/universe payload.
type UniverseResponse struct {
	Tickers        int          `json:"tickers"`
	PairsPerPeriod int64        `json:"pairs_per_period"`
	Yearly         VariantStats `json:"yearly"`
	Quarterly      VariantStats `json:"quarterly"`
}

// Get returns the roster size and sitemap space stats.
// GET /api/universe
func (h *UniverseHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, UniverseResponse{
		Tickers:        h.roster.Len(),
		PairsPerPeriod: h.yearly.PairsPerPeriod(),
		Yearly: VariantStats{
			TotalURLs: h.yearly.TotalURLs(),
			Pages:     h.yearly.PageCount(),
		},
		Quarterly: VariantStats{
			TotalURLs: h.quarterly.TotalURLs(),
			Pages:     h.quarterly.PageCount(),
		},
	})
}

// SyncResponse is the POST /api/universe/sync payload.
type SyncResponse struct {
	Status  string `json:"status"`
	Tickers int    `json:"tickers"`
	Message string `json:"message,omitempty"`
}

// Sync refreshes the stored roster from upstream sources. The running
// process keeps serving its current roster; the new one is picked up on
// the next restart, which keeps page numbering stable for crawlers.
// POST /api/universe/sync
func (h *UniverseHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		respondError(w, http.StatusServiceUnavailable, "Roster sync requires a configured database")
		return
	}

	count, err := h.syncer.Sync(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Roster sync failed")
		respondError(w, http.StatusBadGateway, "Roster sync failed")
		return
	}

	respondJSON(w, http.StatusOK, SyncResponse{
		Status:  "success",
		Tickers: count,
		Message: "Stored roster replaced; restart to serve it",
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
