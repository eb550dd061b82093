package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.profileMiddleware)

	r.Get("/profiles", s.handleListProfiles)
	r.Post("/profiles", s.handleCreateProfile)
	r.Post("/profiles/{id}/select", s.handleSelectProfile)
	r.Post("/profiles/{id}/delete", s.handleDeleteProfile)

	r.Get("/decks", s.handleListDecks)
	r.Post("/decks", s.handleCreateDeck)
	r.Get("/decks/{id}", s.handleGetDeck)
	r.Put("/decks/{id}", s.handleUpdateDeck)
	r.Delete("/decks/{id}", s.handleDeleteDeck)

	r.Get("/decks/{id}/cards", s.handleListCards)
	r.Post("/decks/{id}/cards", s.handleCreateCard)
	r.Put("/cards/{id}", s.handleUpdateCard)
	r.Delete("/cards/{id}", s.handleDeleteCard)

	r.Post("/decks/{id}/study", s.handleOpenStudy)
	r.Get("/study/{id}", s.handleGetStudy)
	r.Delete("/study/{id}", s.handleDiscardStudy)
	r.Post("/study/{id}/start", s.studyEvent(eventStart))
	r.Post("/study/{id}/pause", s.studyEvent(eventPause))
	r.Post("/study/{id}/resume", s.studyEvent(eventResume))
	r.Post("/study/{id}/answer", s.handleStudyAnswer)
	r.Post("/study/{id}/exit", s.studyEvent(eventRequestExit))
	r.Post("/study/{id}/exit/confirm", s.studyEvent(eventConfirmExit))
	r.Post("/study/{id}/exit/cancel", s.studyEvent(eventCancelExit))
	r.Post("/study/{id}/again", s.studyEvent(eventStudyAgain))

	return r
}
