package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/config"
)

// Collection names.
const (
	UsersCollection    = "users"
	TodosCollection    = "todos"
	SessionsCollection = "sessions"
)

type MongoService struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongo connects to the document store and verifies the connection.
func NewMongo(ctx context.Context, cfg config.Mongo, log *zap.Logger) (*MongoService, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(time.Hour)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}

	return WrapMongo(client, cfg.Database, log), nil
}

// WrapMongo adopts an already connected client.
func WrapMongo(client *mongo.Client, database string, log *zap.Logger) *MongoService {
	return &MongoService{client: client, db: client.Database(database), logger: log}
}

func (s *MongoService) Database() *mongo.Database {
	return s.db
}

// EnsureIndexes is the document-store counterpart of Migrate.
func (s *MongoService) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		TodosCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "dueDate", Value: 1}}},
		},
		SessionsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
	}
	return nil
}

func (s *MongoService) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := map[string]string{"driver": config.DriverMongo}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		s.logger.Warn("health check: mongo down", zap.Error(err))
		return stats
	}
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["database"] = s.db.Name()
	return stats
}

func (s *MongoService) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("disconnecting from mongo", zap.String("database", s.db.Name()))
	return s.client.Disconnect(ctx)
}
