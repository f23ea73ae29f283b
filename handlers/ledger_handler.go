package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cartola-league/models"
	"github.com/Dosada05/cartola-league/services"
)

type LedgerHandler struct {
	ledgerService *services.LedgerService
	exportService *services.ExportService
}

func NewLedgerHandler(ls *services.LedgerService, es *services.ExportService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ls,
		exportService: es,
	}
}

// GetStatementHandler handles GET /leagues/{leagueID}/participants/{teamID}/ledger
func (h *LedgerHandler) GetStatementHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	teamID := chi.URLParam(r, "teamID")
	force := r.URL.Query().Get("force") == "true"

	snapshot, err := h.ledgerService.Statement(r.Context(), leagueID, teamID, force)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ledger": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type adjustmentInput struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// UpdateAdjustmentHandler handles PUT /leagues/{leagueID}/participants/{teamID}/adjustments/{slot}
func (h *LedgerHandler) UpdateAdjustmentHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	teamID := chi.URLParam(r, "teamID")
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid adjustment slot: %w", err))
		return
	}

	var input adjustmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	adj := models.Adjustment{Slot: slot, Name: input.Name, Value: input.Value}
	err = h.ledgerService.UpdateAdjustment(r.Context(), leagueID, teamID, adj)
	if errors.Is(err, services.ErrAdjustmentPersistFailed) {
		// The edit was valid; storage is the only thing that failed.
		if err := writeJSON(w, http.StatusAccepted, jsonResponse{
			"adjustment": adj,
			"warning":    services.ErrAdjustmentPersistFailed.Error(),
		}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"adjustment": adj}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// InvalidateRoundHandler handles DELETE /leagues/{leagueID}/participants/{teamID}/cache/{round}
func (h *LedgerHandler) InvalidateRoundHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	teamID := chi.URLParam(r, "teamID")
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		badRequestResponse(w, r, errors.New("invalid round number"))
		return
	}

	h.ledgerService.InvalidateRound(r.Context(), leagueID, teamID, round)
	w.WriteHeader(http.StatusNoContent)
}

// GetStandingsHandler handles GET /leagues/{leagueID}/standings
func (h *LedgerHandler) GetStandingsHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")

	standings, err := h.ledgerService.Standings(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportStatementHandler handles POST /leagues/{leagueID}/participants/{teamID}/ledger/export
func (h *LedgerHandler) ExportStatementHandler(w http.ResponseWriter, r *http.Request) {
	if h.exportService == nil {
		errorResponse(w, r, http.StatusNotImplemented, "exports are not configured")
		return
	}

	leagueID := chi.URLParam(r, "leagueID")
	teamID := chi.URLParam(r, "teamID")

	snapshot, err := h.ledgerService.Statement(r.Context(), leagueID, teamID, false)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	result, err := h.exportService.Publish(r.Context(), leagueID, "ledger", snapshot)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
