package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tomlord1122/todo-dashboard/internal/database"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

type mongoSessionRepository struct {
	sessions *mongo.Collection
	now      func() time.Time
}

func NewMongoSessionRepository(db *mongo.Database) SessionRepository {
	return &mongoSessionRepository{sessions: db.Collection(database.SessionsCollection), now: mongoNow}
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = domain.NewID()
	}
	session.CreatedAt = r.now()
	if _, err := r.sessions.InsertOne(ctx, session); err != nil {
		return errors.Wrap(err, "insert session")
	}
	return nil
}

func (r *mongoSessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	err := r.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("Session")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find session %s", id)
	}
	return &session, nil
}

// Revoke relies on {revokedAt: null} matching both a missing and a null field.
func (r *mongoSessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	result, err := r.sessions.UpdateOne(ctx,
		bson.M{"_id": id, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": at}},
	)
	if err != nil {
		return errors.Wrapf(err, "revoke session %s", id)
	}
	if result.MatchedCount == 0 {
		return domain.NotFound("Session")
	}
	return nil
}

func (r *mongoSessionRepository) RevokeAllForUser(ctx context.Context, userID string, at time.Time) error {
	_, err := r.sessions.UpdateMany(ctx,
		bson.M{"userId": userID, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": at}},
	)
	if err != nil {
		return errors.Wrapf(err, "revoke sessions of user %s", userID)
	}
	return nil
}

func (r *mongoSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.sessions.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"expiresAt": bson.M{"$lt": before}},
		bson.M{"revokedAt": bson.M{"$ne": nil}},
	}})
	if err != nil {
		return 0, errors.Wrap(err, "delete expired sessions")
	}
	return result.DeletedCount, nil
}

func (r *mongoSessionRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.sessions.CountDocuments(ctx, bson.M{
		"revokedAt": nil,
		"expiresAt": bson.M{"$gt": now},
	})
	if err != nil {
		return 0, errors.Wrap(err, "count active sessions")
	}
	return n, nil
}
