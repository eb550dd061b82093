package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/models"
	"github.com/tcardoso/deckstudy/internal/services"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	q := r.URL.Query()
	filter := models.DeckFilter{
		ProfileID: profile.ID,
		Search:    q.Get("search"),
		OrderBy:   q.Get("order_by"),
		OrderDir:  q.Get("order_dir"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	decks, total, err := s.DeckService.ListDecks(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"decks": decks,
		"total": total,
	})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.CreateDeck(r.Context(), profile.ID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid deck id"))
		return
	}

	deck, err := s.DeckService.GetDeck(r.Context(), id, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid deck id"))
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.UpdateDeck(r.Context(), id, profile.ID, services.UpdateDeckInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid deck id"))
		return
	}

	if err := s.DeckService.DeleteDeck(r.Context(), id, profile.ID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
