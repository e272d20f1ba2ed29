package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/api/middleware"
	"github.com/dlow/fd-tracker/internal/rates"
)

// RatesHandler exposes the market-rate scan.
type RatesHandler struct {
	pipeline *rates.Pipeline
	log      zerolog.Logger
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler(pipeline *rates.Pipeline, log zerolog.Logger) *RatesHandler {
	return &RatesHandler{pipeline: pipeline, log: log}
}

// ScanRates handles POST /api/rates/scan. The pipeline never fails: the
// worst case is the static dataset. The optional "sort" query parameter
// selects the ordering; rate descending is the default.
func (h *RatesHandler) ScanRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offers := h.pipeline.Scan(ctx)

	sortKey := rates.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = rates.DefaultSortKey
	}
	rates.SortOffers(offers, sortKey)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"offers": offers,
		"count":  len(offers),
		"sort":   string(sortKey),
	})
}
