package server

import (
	"net/http"

	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	resp, err := s.authService.Register(r.Context(), req, r.UserAgent())
	if err != nil {
		s.handleError(w, r, err, "Failed to register")
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	resp, err := s.authService.Login(r.Context(), req, r.UserAgent())
	if err != nil {
		s.handleError(w, r, err, "Failed to sign in")
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	resp, err := s.authService.Refresh(r.Context(), req, r.UserAgent())
	if err != nil {
		s.handleError(w, r, err, "Failed to refresh session")
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	if err := s.authService.Logout(r.Context(), req); err != nil {
		s.handleError(w, r, err, "Failed to sign out")
		return
	}
	respondWithJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to load profile")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]service.UserResponse{"user": s.authService.Profile(user)})
}

func (s *Server) infoHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to load info")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]service.InfoResponse{"info": s.authService.Info(user)})
}
