package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/study"
)

type sessionResponse struct {
	ID            string          `json:"id"`
	Deck          study.DeckInfo  `json:"deck"`
	Status        study.Status    `json:"status"`
	Position      int             `json:"position"`
	Total         int             `json:"total"`
	Face          study.Face      `json:"face"`
	CardFront     string          `json:"card_front,omitempty"`
	CardBack      string          `json:"card_back,omitempty"`
	Feedback      *study.Feedback `json:"feedback,omitempty"`
	Answered      int             `json:"answered"`
	Correct       int             `json:"correct"`
	Elapsed       int             `json:"elapsed_seconds"`
	ElapsedText   string          `json:"elapsed"`
	ExitRequested bool            `json:"exit_requested"`
	Accuracy      int             `json:"accuracy"`
	Tier          study.Tier      `json:"tier,omitempty"`
}

func newSessionResponse(st study.State) sessionResponse {
	resp := sessionResponse{
		ID:            st.ID.String(),
		Deck:          st.Deck,
		Status:        st.Status,
		Position:      st.Cursor + 1,
		Total:         st.Total,
		Face:          st.Face,
		Feedback:      st.Feedback,
		Answered:      st.Answered,
		Correct:       st.Correct,
		Elapsed:       st.Elapsed,
		ElapsedText:   study.FormatElapsed(st.Elapsed),
		ExitRequested: st.ExitRequested,
		Accuracy:      st.Accuracy,
		Tier:          st.Tier,
	}
	if st.Card != nil {
		resp.CardFront = st.Card.Front
		// The answer side only leaves the server once feedback is showing.
		if st.Face == study.FaceBack {
			resp.CardBack = st.Card.Back
		}
	}
	return resp
}

func (s *Server) handleOpenStudy(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	deckID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid deck id"))
		return
	}

	session, err := s.StudyService.OpenSession(r.Context(), deckID, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, newSessionResponse(session.State()))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *study.Session {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return nil
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid session id"))
		return nil
	}

	session, err := s.StudyService.GetSession(r.Context(), id, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return nil
	}
	return session
}

func (s *Server) handleGetStudy(w http.ResponseWriter, r *http.Request) {
	session := s.getSession(w, r)
	if session == nil {
		return
	}
	respondJSON(w, r, http.StatusOK, newSessionResponse(session.State()))
}

func (s *Server) handleDiscardStudy(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r)
	if profile == nil {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, apperr.BadRequest("invalid session id"))
		return
	}

	if err := s.StudyService.DiscardSession(r.Context(), id, profile.ID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

type studyEventKind int

const (
	eventStart studyEventKind = iota
	eventPause
	eventResume
	eventRequestExit
	eventConfirmExit
	eventCancelExit
	eventStudyAgain
)

// studyEvent builds a handler that applies one session transition and
// returns the resulting state. Transitions invalid for the current state
// are ignored by the session itself, so these always answer 200.
func (s *Server) studyEvent(kind studyEventKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.getSession(w, r)
		if session == nil {
			return
		}

		switch kind {
		case eventStart:
			session.Start()
		case eventPause:
			session.Pause()
		case eventResume:
			session.Resume()
		case eventRequestExit:
			session.RequestExit()
		case eventConfirmExit:
			session.ConfirmExit()
		case eventCancelExit:
			session.CancelExit()
		case eventStudyAgain:
			session.StudyAgain()
		}

		respondJSON(w, r, http.StatusOK, newSessionResponse(session.State()))
	}
}

func (s *Server) handleStudyAnswer(w http.ResponseWriter, r *http.Request) {
	session := s.getSession(w, r)
	if session == nil {
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	accepted := session.Submit(req.Answer)
	resp := map[string]any{
		"accepted": accepted,
		"session":  newSessionResponse(session.State()),
	}
	respondJSON(w, r, http.StatusOK, resp)
}
