// Package seed loads the demo account used to try the dashboard.
package seed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/auth"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/repository"
)

const (
	DemoName     = "Demo User"
	DemoEmail    = "demo@todo.dev"
	DemoPassword = "ChangeMe123!"
)

type demoTodo struct {
	title  string
	status domain.TodoStatus
	due    time.Time
}

var demoTodos = []demoTodo{
	{title: "Prep weekly board", status: domain.StatusPending, due: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	{title: "Ship refreshed UI", status: domain.StatusCompleted, due: time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)},
}

// Result reports what a run added.
type Result struct {
	User         *domain.User
	CreatedUser  bool
	CreatedTodos int
}

// Demo creates the demo admin and its todos. Running it again only fills in
// what is missing.
func Demo(ctx context.Context, users repository.UserRepository, todos repository.TodoRepository, logger *zap.Logger) (*Result, error) {
	res := &Result{}

	user, err := users.FindByEmail(ctx, DemoEmail)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		hash, err := auth.HashPassword(DemoPassword)
		if err != nil {
			return nil, err
		}
		user = &domain.User{Name: DemoName, Email: DemoEmail, PasswordHash: hash, Role: domain.RoleAdmin}
		if err := users.Create(ctx, user); err != nil {
			return nil, errors.Wrap(err, "seed demo user")
		}
		res.CreatedUser = true
	case err != nil:
		return nil, err
	}
	res.User = user

	existing, err := todos.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, todo := range existing {
		have[todo.Title] = true
	}
	for _, demo := range demoTodos {
		if have[demo.title] {
			continue
		}
		due := demo.due
		todo := &domain.Todo{OwnerID: user.ID, Title: demo.title, Status: demo.status, DueDate: &due, Tags: []string{}}
		if err := todos.Create(ctx, todo); err != nil {
			return nil, errors.Wrapf(err, "seed todo %q", demo.title)
		}
		res.CreatedTodos++
	}

	logger.Info("demo data seeded",
		zap.String("email", DemoEmail),
		zap.Bool("created_user", res.CreatedUser),
		zap.Int("created_todos", res.CreatedTodos),
	)
	return res, nil
}
