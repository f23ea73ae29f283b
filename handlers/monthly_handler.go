package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cartola-league/services"
)

type MonthlyHandler struct {
	monthlyService *services.MonthlyService
}

func NewMonthlyHandler(ms *services.MonthlyService) *MonthlyHandler {
	return &MonthlyHandler{monthlyService: ms}
}

// ListHandler handles GET /leagues/{leagueID}/monthly
func (h *MonthlyHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")

	standings, err := h.monthlyService.Leaderboards(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"monthly": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /leagues/{leagueID}/monthly/{editionID}
func (h *MonthlyHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	editionID, err := strconv.Atoi(chi.URLParam(r, "editionID"))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid edition id: %w", err))
		return
	}

	standing, err := h.monthlyService.Leaderboard(r.Context(), leagueID, editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"monthly": standing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
