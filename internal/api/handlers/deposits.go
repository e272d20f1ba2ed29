package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/api/middleware"
	"github.com/dlow/fd-tracker/internal/calendar"
	"github.com/dlow/fd-tracker/internal/domain"
	fsrepo "github.com/dlow/fd-tracker/internal/infra/firestore"
	"github.com/dlow/fd-tracker/internal/interest"
	"github.com/dlow/fd-tracker/internal/portfolio"
)

// DepositsHandler handles deposit CRUD, the aggregate summary, and the
// calendar-link endpoint.
type DepositsHandler struct {
	repo fsrepo.DepositRepository
	log  zerolog.Logger
}

// NewDepositsHandler creates a new deposits handler.
func NewDepositsHandler(repo fsrepo.DepositRepository, log zerolog.Logger) *DepositsHandler {
	return &DepositsHandler{repo: repo, log: log}
}

// depositView is a deposit plus its derived final value, the shape the
// portfolio cards render.
type depositView struct {
	domain.Deposit
	MaturityValue float64 `json:"maturityValue"`
}

// depositRequest is the loosely-typed create/update body. Principal and
// rate accept numbers or numeric strings; the lenient 0-default policy
// applies to the rate, while the principal must genuinely parse.
type depositRequest struct {
	BankName     string `json:"bankName"`
	Principal    any    `json:"principal"`
	InterestRate any    `json:"interestRate"`
	StartDate    string `json:"startDate"`
	MaturityDate string `json:"maturityDate"`
	Status       string `json:"status"`
}

// ListDeposits handles GET /api/deposits
func (h *DepositsHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerFromContext(ctx)

	deposits, err := h.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list deposits")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list deposits")
		return
	}

	views := make([]depositView, 0, len(deposits))
	for _, d := range deposits {
		views = append(views, depositView{Deposit: d, MaturityValue: portfolio.MaturityValue(d)})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deposits": views,
		"count":    len(views),
	})
}

// GetSummary handles GET /api/deposits/summary
func (h *DepositsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.OwnerFromContext(ctx)

	deposits, err := h.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load deposits for summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, portfolio.Summarize(deposits))
}

// CreateDeposit handles POST /api/deposits
func (h *DepositsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, errMsg := h.depositFromRequest(req)
	if errMsg != "" {
		middleware.WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	d.OwnerID = middleware.OwnerFromContext(ctx)

	created, err := h.repo.Create(ctx, d)
	if err != nil {
		h.writeDepositError(w, err, "Failed to create deposit")
		return
	}

	h.log.Info().Str("deposit_id", created.ID).Str("bank", created.BankName).Msg("Deposit created")
	middleware.WriteJSON(w, http.StatusCreated, depositView{Deposit: created, MaturityValue: portfolio.MaturityValue(created)})
}

// UpdateDeposit handles PUT /api/deposits/{id}
func (h *DepositsHandler) UpdateDeposit(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, errMsg := h.depositFromRequest(req)
	if errMsg != "" {
		middleware.WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	d.ID = id

	if err := h.repo.Update(ctx, middleware.OwnerFromContext(ctx), d); err != nil {
		h.writeDepositError(w, err, "Failed to update deposit")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": "updated"})
}

// DeleteDeposit handles DELETE /api/deposits/{id}
func (h *DepositsHandler) DeleteDeposit(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	if err := h.repo.Delete(ctx, middleware.OwnerFromContext(ctx), id); err != nil {
		h.writeDepositError(w, err, "Failed to delete deposit")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

// CalendarLink handles GET /api/deposits/{id}/calendar-link
func (h *DepositsHandler) CalendarLink(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	d, err := h.repo.Get(ctx, middleware.OwnerFromContext(ctx), id)
	if err != nil {
		h.writeDepositError(w, err, "Failed to load deposit")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"url": calendar.MaturityLink(d)})
}

// DraftFromOffer handles POST /api/deposits/draft. It seeds a deposit draft
// from a selected market rate offer; nothing is persisted.
func (h *DepositsHandler) DraftFromOffer(w http.ResponseWriter, r *http.Request) {
	var offer domain.RateOffer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if offer.Bank == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Offer bank is required")
		return
	}

	draft := domain.DraftFromOffer(offer, middleware.OwnerFromContext(r.Context()), time.Now())
	middleware.WriteJSON(w, http.StatusOK, draft)
}

// depositFromRequest applies the validation and coercion rules: bank name
// required, principal must parse non-negative, everything else lenient.
func (h *DepositsHandler) depositFromRequest(req depositRequest) (domain.Deposit, string) {
	if strings.TrimSpace(req.BankName) == "" {
		return domain.Deposit{}, "bankName is required"
	}
	principal, ok := toNumber(req.Principal)
	if !ok || principal < 0 {
		return domain.Deposit{}, "principal must be a non-negative number"
	}

	status := domain.Status(req.Status)
	if status == "" {
		status = domain.StatusActive
	}

	return domain.Deposit{
		BankName:     strings.TrimSpace(req.BankName),
		Principal:    principal,
		InterestRate: interest.ParseAmount(req.InterestRate),
		StartDate:    strings.TrimSpace(req.StartDate),
		MaturityDate: strings.TrimSpace(req.MaturityDate),
		Status:       status,
	}, ""
}

func (h *DepositsHandler) writeDepositError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "Deposit not found")
	case errors.Is(err, domain.ErrInvalidDeposit):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBadTransition):
		middleware.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Msg(fallback)
		middleware.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// toNumber accepts a JSON number or a numeric string. Unlike the dashboard
// 0-default rule, creation wants to know whether the value really parsed.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
