package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/0xsonu/mlms/session"
	"github.com/0xsonu/mlms/users"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is what UI consumers poll to render the current user.
type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *users.User `json:"user,omitempty"`
	Expiry        *time.Time  `json:"expiry,omitempty"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.deps.Sessions.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.sessionResponse(user))
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params session.RegisterParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.deps.Sessions.Register(r.Context(), params)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, s.sessionResponse(user))
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Sessions.Logout(r.Context()); err != nil {
			log.Err(err).Msg("Logout failed")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Sessions.Refresh(r.Context()); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.sessionResponse(s.deps.Sessions.CurrentUser()))
	}
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.sessionResponse(s.deps.Sessions.CurrentUser()))
	}
}

func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update users.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.deps.Sessions.UpdateProfile(r.Context(), update)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.sessionResponse(user))
	}
}

func (s *Server) sessionResponse(user *users.User) SessionResponse {
	resp := SessionResponse{Authenticated: user != nil, User: user}
	if expiry, ok := s.deps.Sessions.Expiry(); ok {
		resp.Expiry = &expiry
	}
	return resp
}
