package server

import (
	"encoding/json"
	"net/http"

	"github.com/0xsonu/mlms/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response body")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps session manager errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, session.ErrInvalidCredentials.Error())
	case errors.Is(err, session.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, session.ErrNotAuthenticated.Error())
	case errors.Is(err, session.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Err(err).Msg("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
