package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/config"
	"github.com/Tomlord1122/todo-dashboard/internal/database"
	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

// Deps are the collaborators the HTTP layer forwards to.
type Deps struct {
	DB    database.Service
	Todos service.TodoService
	Auth  service.AuthService
	Admin service.AdminService
}

type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	db           database.Service
	todoService  service.TodoService
	authService  service.AuthService
	adminService service.AdminService
}

func NewServer(cfg *config.Config, deps Deps, logger *zap.Logger) *http.Server {
	appServer := &Server{
		cfg:          cfg,
		logger:       logger,
		db:           deps.DB,
		todoService:  deps.Todos,
		authService:  deps.Auth,
		adminService: deps.Admin,
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}

	return server
}
