package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/api/middleware"
	fsrepo "github.com/dlow/fd-tracker/internal/infra/firestore"
	"github.com/dlow/fd-tracker/internal/importer"
)

// PortfolioIOHandler handles bulk CSV import and export.
type PortfolioIOHandler struct {
	repo fsrepo.DepositRepository
	log  zerolog.Logger
}

// NewPortfolioIOHandler creates a new import/export handler.
func NewPortfolioIOHandler(repo fsrepo.DepositRepository, log zerolog.Logger) *PortfolioIOHandler {
	return &PortfolioIOHandler{repo: repo, log: log}
}

// ImportCSV handles POST /api/deposits/import. The request body is the CSV
// file itself. Rows that fail the draft filter are skipped, not fatal;
// each surviving draft is created as an active deposit.
func (h *PortfolioIOHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerFromContext(ctx)

	drafts, err := importer.Import(r.Body, ownerID)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	imported := 0
	for _, d := range drafts {
		if _, err := h.repo.Create(ctx, d); err != nil {
			h.log.Warn().Err(err).Str("bank", d.BankName).Msg("Skipping unimportable draft")
			continue
		}
		imported++
	}

	h.log.Info().Int("imported", imported).Int("drafts", len(drafts)).Msg("CSV import finished")
	middleware.WriteJSON(w, http.StatusOK, map[string]int{
		"imported": imported,
		"skipped":  len(drafts) - imported,
	})
}

// ExportCSV handles GET /api/deposits/export.
func (h *PortfolioIOHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerFromContext(ctx)

	deposits, err := h.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load deposits for export")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to export portfolio")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="my_portfolio.csv"`)
	if err := importer.Export(w, deposits); err != nil {
		h.log.Error().Err(err).Msg("Failed to write CSV export")
	}
}
