package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/services"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	deckID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid deck id"))
		return
	}

	cards, err := s.CardService.ListCards(r.Context(), deckID, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	deckID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid deck id"))
		return
	}

	var req struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), deckID, profile.ID, req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid card id"))
		return
	}

	var req struct {
		Front *string `json:"front"`
		Back  *string `json:"back"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, profile.ID, services.UpdateCardInput{
		Front: req.Front,
		Back:  req.Back,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid card id"))
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), id, profile.ID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
