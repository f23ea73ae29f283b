package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cartola-league/services"
)

type BracketHandler struct {
	bracketService *services.BracketService
	exportService  *services.ExportService
}

func NewBracketHandler(bs *services.BracketService, es *services.ExportService) *BracketHandler {
	return &BracketHandler{
		bracketService: bs,
		exportService:  es,
	}
}

// GetBracketHandler handles GET /leagues/{leagueID}/editions/{editionID}/bracket
func (h *BracketHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	editionID, err := strconv.Atoi(chi.URLParam(r, "editionID"))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid edition id: %w", err))
		return
	}

	bracket, err := h.bracketService.ResolveEdition(r.Context(), leagueID, editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportBracketHandler handles POST /leagues/{leagueID}/editions/{editionID}/bracket/export
func (h *BracketHandler) ExportBracketHandler(w http.ResponseWriter, r *http.Request) {
	if h.exportService == nil {
		errorResponse(w, r, http.StatusNotImplemented, "exports are not configured")
		return
	}

	leagueID := chi.URLParam(r, "leagueID")
	editionID, err := strconv.Atoi(chi.URLParam(r, "editionID"))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid edition id: %w", err))
		return
	}

	bracket, err := h.bracketService.ResolveEdition(r.Context(), leagueID, editionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	result, err := h.exportService.Publish(r.Context(), leagueID, "bracket", bracket)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
