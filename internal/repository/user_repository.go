package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository.go -package=mocks

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (domain.Page[domain.User], error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
}

// SessionRepository stores refresh-token sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	// Revoke marks an active session revoked; an already revoked or
	// missing session yields a not-found error.
	Revoke(ctx context.Context, id string, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

const uniqueViolation = "23505"

// isDuplicateKey recognises unique-constraint failures whether or not the
// dialector translated them.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = domain.NewID()
	}
	err := r.db.WithContext(ctx).Create(user).Error
	if isDuplicateKey(err) {
		return domain.Conflict("Email already registered")
	}
	if err != nil {
		return errors.Wrap(err, "create user")
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("User")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

func (r *gormUserRepository) List(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	page, limit = domain.NormalizePaging(page, limit)
	result := domain.Page[domain.User]{Page: page, Limit: limit}

	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&result.Total).Error; err != nil {
		return result, errors.Wrap(err, "count users")
	}
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(domain.Offset(page, limit)).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return result, errors.Wrap(err, "list users")
	}
	result.Items = users
	return result, nil
}

func (r *gormUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return n, nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if isDuplicateKey(err) {
		return domain.Conflict("Email already registered")
	}
	if err != nil {
		return errors.Wrapf(err, "update user %s", user.ID)
	}
	return nil
}
