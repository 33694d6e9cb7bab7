package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HelloWorldHandler)

	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.registerHandler)
			r.Post("/login", s.loginHandler)
			r.Post("/refresh", s.refreshHandler)
			r.Post("/logout", s.logoutHandler)

			r.Group(func(r chi.Router) {
				r.Use(s.authenticate)
				r.Get("/profile", s.profileHandler)
				r.Get("/info", s.infoHandler)
				// the dashboard client talks to this path
				r.Route("/todos", s.todoRoutes)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Route("/todos", s.todoRoutes)

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/overview", s.adminOverviewHandler)
				r.Get("/users", s.adminListUsersHandler)
				r.Post("/users", s.adminCreateUserHandler)
				r.Put("/users/{userId}/role", s.adminSetRoleHandler)
				r.Get("/todos", s.adminListTodosHandler)
				r.Get("/settings", s.adminSettingsHandler)
				r.Put("/settings", s.adminUpdateSettingsHandler)
				r.Get("/{adminId}/user/{userId}", s.adminUserDetailHandler)
			})
		})
	})

	return r
}

func (s *Server) todoRoutes(r chi.Router) {
	r.Get("/", s.listTodosHandler)
	r.Post("/", s.createTodoHandler)
	r.Get("/stats", s.todoStatsHandler)
	r.Get("/{id}", s.getTodoByIDHandler)
	r.Put("/{id}", s.updateTodoHandler)
	r.Delete("/{id}", s.deleteTodoHandler)
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello World from Todo Dashboard!"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
