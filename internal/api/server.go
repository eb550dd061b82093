package api

import (
	"encoding/json"
	"net/http"

	"github.com/tcardoso/deckstudy/internal/apperr"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/services"
)

type Server struct {
	ProfileService services.ProfileService
	DeckService    services.DeckService
	CardService    services.CardService
	StudyService   services.StudyService
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.BadRequest("invalid JSON body")
	}
	return nil
}
