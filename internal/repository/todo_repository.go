package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

//go:generate mockgen -source=todo_repository.go -destination=mocks/todo_repository.go -package=mocks

// TodoRepository defines the todo data operations. An empty ownerID means
// "any owner" and is reserved for the admin console.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error)
	List(ctx context.Context, filter domain.TodoFilter) (domain.Page[domain.Todo], error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	CountByStatus(ctx context.Context, ownerID string) (map[domain.TodoStatus]int64, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id, ownerID string) error
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if todo.ID == "" {
		todo.ID = domain.NewID()
	}
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return errors.Wrap(err, "create todo")
	}
	return nil
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).Scopes(ownedBy(ownerID)).Where("id = ?", id).First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("Todo")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find todo %s", id)
	}
	return &todo, nil
}

func (r *gormTodoRepository) List(ctx context.Context, filter domain.TodoFilter) (domain.Page[domain.Todo], error) {
	filter = filter.Normalize()
	page := domain.Page[domain.Todo]{Page: filter.Page, Limit: filter.Limit}

	err := r.db.WithContext(ctx).Model(&domain.Todo{}).Scopes(todoFilter(filter)).Count(&page.Total).Error
	if err != nil {
		return page, errors.Wrap(err, "count todos")
	}

	var todos []domain.Todo
	err = r.db.WithContext(ctx).
		Scopes(todoFilter(filter)).
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&todos).Error
	if err != nil {
		return page, errors.Wrap(err, "list todos")
	}
	page.Items = todos
	return page, nil
}

func (r *gormTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.db.WithContext(ctx).Scopes(ownedBy(ownerID)).Order("created_at DESC").Find(&todos).Error
	if err != nil {
		return nil, errors.Wrap(err, "list todos by owner")
	}
	return todos, nil
}

func (r *gormTodoRepository) CountByStatus(ctx context.Context, ownerID string) (map[domain.TodoStatus]int64, error) {
	var rows []struct {
		Status domain.TodoStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Scopes(ownedBy(ownerID)).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count todos by status")
	}
	counts := make(map[domain.TodoStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Update saves every column of an existing todo. Callers load the todo
// first, which is where ownership is checked.
func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if err := r.db.WithContext(ctx).Save(todo).Error; err != nil {
		return errors.Wrapf(err, "update todo %s", todo.ID)
	}
	return nil
}

func (r *gormTodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).Scopes(ownedBy(ownerID)).Where("id = ?", id).Delete(&domain.Todo{})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "delete todo %s", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("Todo")
	}
	return nil
}

func ownedBy(ownerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownerID == "" {
			return db
		}
		return db.Where("owner_id = ?", ownerID)
	}
}

func todoFilter(f domain.TodoFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = ownedBy(f.OwnerID)(db)
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Search != "" {
			pattern := "%" + escapeLike(f.Search) + "%"
			db = db.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
		}
		if f.DueStart != nil {
			db = db.Where("due_date >= ?", *f.DueStart)
		}
		if f.DueEnd != nil {
			db = db.Where("due_date <= ?", *f.DueEnd)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input literal inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
