// Package app wires configuration, storage, repositories and services
// together for the API server and the maintenance CLI.
package app

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/auth"
	"github.com/Tomlord1122/todo-dashboard/internal/config"
	"github.com/Tomlord1122/todo-dashboard/internal/database"
	"github.com/Tomlord1122/todo-dashboard/internal/repository"
	"github.com/Tomlord1122/todo-dashboard/internal/scheduler"
	"github.com/Tomlord1122/todo-dashboard/internal/seed"
	"github.com/Tomlord1122/todo-dashboard/internal/server"
	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB       database.Service
	Users    repository.UserRepository
	Todos    repository.TodoRepository
	Sessions repository.SessionRepository
	Tokens   *auth.TokenManager

	migrate func(ctx context.Context) error
	closers []func() error
}

// New opens the storage backend selected by cfg.Database.Driver.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Tokens: auth.NewTokenManager(cfg.AppName, cfg.Auth),
	}

	switch cfg.Database.Driver {
	case config.DriverMongo:
		mongoService, err := database.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		db := mongoService.Database()
		a.DB = mongoService
		a.Users = repository.NewMongoUserRepository(db)
		a.Todos = repository.NewMongoTodoRepository(db)
		a.Sessions = repository.NewMongoSessionRepository(db)
		a.migrate = mongoService.EnsureIndexes
	default:
		pgService, err := database.NewPostgres(cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		gormDB := pgService.GetDB()
		a.DB = pgService
		a.Users = repository.NewGormUserRepository(gormDB)
		a.Todos = repository.NewGormTodoRepository(gormDB)
		a.Sessions = repository.NewGormSessionRepository(gormDB)
		a.migrate = func(context.Context) error { return database.Migrate(gormDB) }
	}
	a.closers = append(a.closers, a.DB.Close)

	logger.Info("storage ready", zap.String("driver", cfg.Database.Driver))
	return a, nil
}

// Migrate brings the schema (or the collection indexes) up to date.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.migrate(ctx); err != nil {
		return errors.Wrap(err, "migrate storage")
	}
	a.Logger.Info("storage migrated", zap.String("driver", a.Config.Database.Driver))
	return nil
}

func (a *App) Seed(ctx context.Context) (*seed.Result, error) {
	return seed.Demo(ctx, a.Users, a.Todos, a.Logger)
}

func (a *App) Scheduler() *scheduler.Scheduler {
	return scheduler.New(a.Sessions, a.Config.Scheduler.SessionPurge, a.Logger)
}

func (a *App) AuthService() service.AuthService {
	return service.NewAuthService(a.Users, a.Sessions, a.Tokens)
}

func (a *App) AdminService() service.AdminService {
	return service.NewAdminService(a.Users, a.Todos, a.Sessions)
}

// ServerDeps builds the services the HTTP layer forwards to.
func (a *App) ServerDeps() server.Deps {
	return server.Deps{
		DB:    a.DB,
		Todos: service.NewTodoService(a.Todos),
		Auth:  a.AuthService(),
		Admin: a.AdminService(),
	}
}

// Close releases every resource opened by New and reports all failures.
func (a *App) Close() error {
	var result *multierror.Error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
