package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

type todoEnvelope struct {
	Todo *service.TodoResponse `json:"todo"`
}

func listTodosQuery(r *http.Request) service.ListTodosQuery {
	q := r.URL.Query()
	return service.ListTodosQuery{
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		DueStart: q.Get("dueStart"),
		DueEnd:   q.Get("dueEnd"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
		OwnerID:  q.Get("ownerId"),
	}
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve todos")
		return
	}
	todos, err := s.todoService.ListTodos(r.Context(), user, listTodosQuery(r))
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve todos")
		return
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to create todo")
		return
	}
	var req service.CreateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), user, req)
	if err != nil {
		s.handleError(w, r, err, "Failed to create todo")
		return
	}
	respondWithJSON(w, http.StatusCreated, todoEnvelope{Todo: todo})
}

func (s *Server) todoStatsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to load todo stats")
		return
	}
	stats, err := s.todoService.Stats(r.Context(), user)
	if err != nil {
		s.handleError(w, r, err, "Failed to load todo stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) getTodoByIDHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve todo")
		return
	}
	todo, err := s.todoService.GetTodoByID(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err, "Failed to retrieve todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todoEnvelope{Todo: todo})
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to update todo")
		return
	}
	var req service.UpdateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Error processing request")
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		s.handleError(w, r, err, "Failed to update todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todoEnvelope{Todo: todo})
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to delete todo")
		return
	}
	if err := s.todoService.DeleteTodo(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err, "Failed to delete todo")
		return
	}
	respondWithJSON(w, http.StatusOK, successResponse{Success: true})
}
