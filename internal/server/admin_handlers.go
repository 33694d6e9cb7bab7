package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

type userEnvelope struct {
	User *service.UserResponse `json:"user"`
}

func (s *Server) adminOverviewHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := s.adminService.Overview(r.Context())
	if err != nil {
		s.handleError(w, r, err, "Failed to load overview")
		return
	}
	respondWithJSON(w, http.StatusOK, overview)
}

func (s *Server) adminListUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := s.adminService.ListUsers(r.Context(), service.ListUsersQuery{Page: q.Get("page"), Limit: q.Get("limit")})
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve users")
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (s *Server) adminCreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	user, err := s.adminService.CreateUser(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err, "Failed to create user")
		return
	}
	respondWithJSON(w, http.StatusCreated, userEnvelope{User: user})
}

func (s *Server) adminSetRoleHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to update role")
		return
	}
	var req service.SetRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	user, err := s.adminService.SetRole(r.Context(), actor.ID, chi.URLParam(r, "userId"), req)
	if err != nil {
		s.handleError(w, r, err, "Failed to update role")
		return
	}
	respondWithJSON(w, http.StatusOK, userEnvelope{User: user})
}

func (s *Server) adminListTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.adminService.ListAllTodos(r.Context(), listTodosQuery(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve todos")
		return
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) adminUserDetailHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := s.adminService.UserDetail(r.Context(), chi.URLParam(r, "adminId"), chi.URLParam(r, "userId"), r.URL.Query())
	if err != nil {
		s.handleError(w, r, err, "Failed to load user")
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

func (s *Server) adminSettingsHandler(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to load settings")
		return
	}
	settings, err := s.adminService.Settings(r.Context(), admin)
	if err != nil {
		s.handleError(w, r, err, "Failed to load settings")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

func (s *Server) adminUpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to update settings")
		return
	}
	var req service.UpdateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}
	settings, err := s.adminService.UpdateSettings(r.Context(), admin, req)
	if err != nil {
		s.handleError(w, r, err, "Failed to update settings")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}
