package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

type gormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = domain.NewID()
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return errors.Wrap(err, "create session")
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("Session")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find session %s", id)
	}
	return &session, nil
}

func (r *gormSessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "revoke session %s", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("Session")
	}
	return nil
}

func (r *gormSessionRepository) RevokeAllForUser(ctx context.Context, userID string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
	if err != nil {
		return errors.Wrapf(err, "revoke sessions of user %s", userID)
	}
	return nil
}

func (r *gormSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", before).
		Delete(&domain.Session{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete expired sessions")
	}
	return result.RowsAffected, nil
}

func (r *gormSessionRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("revoked_at IS NULL AND expires_at > ?", now).
		Count(&n).Error
	if err != nil {
		return 0, errors.Wrap(err, "count active sessions")
	}
	return n, nil
}
