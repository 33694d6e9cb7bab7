package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tomlord1122/todo-dashboard/internal/database"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

type mongoUserRepository struct {
	users *mongo.Collection
	now   func() time.Time
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{users: db.Collection(database.UsersCollection), now: mongoNow}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = domain.NewID()
	}
	now := r.now()
	user.CreatedAt, user.UpdatedAt = now, now
	_, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.Conflict("Email already registered")
	}
	if err != nil {
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, query bson.M) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, query).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("User")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

func (r *mongoUserRepository) List(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	page, limit = domain.NormalizePaging(page, limit)
	result := domain.Page[domain.User]{Page: page, Limit: limit}

	total, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return result, errors.Wrap(err, "count users")
	}
	result.Total = total

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(domain.Offset(page, limit))).
		SetLimit(int64(limit))
	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return result, errors.Wrap(err, "list users")
	}
	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return result, errors.Wrap(err, "decode users")
	}
	result.Items = users
	return result, nil
}

func (r *mongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return n, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = r.now()
	result, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.Conflict("Email already registered")
	}
	if err != nil {
		return errors.Wrapf(err, "update user %s", user.ID)
	}
	if result.MatchedCount == 0 {
		return domain.NotFound("User")
	}
	return nil
}
