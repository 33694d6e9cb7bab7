package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tomlord1122/todo-dashboard/internal/database"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

type mongoTodoRepository struct {
	todos *mongo.Collection
	now   func() time.Time
}

// NewMongoTodoRepository stores todos as documents in the todos collection.
func NewMongoTodoRepository(db *mongo.Database) TodoRepository {
	return &mongoTodoRepository{todos: db.Collection(database.TodosCollection), now: mongoNow}
}

// mongoNow matches the millisecond precision of BSON dates so values read
// back compare equal to the ones written.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *mongoTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if todo.ID == "" {
		todo.ID = domain.NewID()
	}
	now := r.now()
	todo.CreatedAt, todo.UpdatedAt = now, now
	if _, err := r.todos.InsertOne(ctx, todo); err != nil {
		return errors.Wrap(err, "insert todo")
	}
	return nil
}

func (r *mongoTodoRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.todos.FindOne(ctx, ownerScoped(bson.M{"_id": id}, ownerID)).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("Todo")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find todo %s", id)
	}
	return &todo, nil
}

func (r *mongoTodoRepository) List(ctx context.Context, filter domain.TodoFilter) (domain.Page[domain.Todo], error) {
	filter = filter.Normalize()
	page := domain.Page[domain.Todo]{Page: filter.Page, Limit: filter.Limit}
	query := todoQuery(filter)

	total, err := r.todos.CountDocuments(ctx, query)
	if err != nil {
		return page, errors.Wrap(err, "count todos")
	}
	page.Total = total

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(filter.Offset())).
		SetLimit(int64(filter.Limit))
	cursor, err := r.todos.Find(ctx, query, opts)
	if err != nil {
		return page, errors.Wrap(err, "list todos")
	}
	todos := []domain.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return page, errors.Wrap(err, "decode todos")
	}
	page.Items = todos
	return page, nil
}

func (r *mongoTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.todos.Find(ctx, ownerScoped(bson.M{}, ownerID), opts)
	if err != nil {
		return nil, errors.Wrap(err, "list todos by owner")
	}
	todos := []domain.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, errors.Wrap(err, "decode todos")
	}
	return todos, nil
}

func (r *mongoTodoRepository) CountByStatus(ctx context.Context, ownerID string) (map[domain.TodoStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerScoped(bson.M{}, ownerID)}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.todos.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate todos by status")
	}
	var rows []struct {
		Status domain.TodoStatus `bson:"_id"`
		Count  int64             `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode status counts")
	}
	counts := make(map[domain.TodoStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *mongoTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	todo.UpdatedAt = r.now()
	result, err := r.todos.ReplaceOne(ctx, bson.M{"_id": todo.ID, "ownerId": todo.OwnerID}, todo)
	if err != nil {
		return errors.Wrapf(err, "update todo %s", todo.ID)
	}
	if result.MatchedCount == 0 {
		return domain.NotFound("Todo")
	}
	return nil
}

func (r *mongoTodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.todos.DeleteOne(ctx, ownerScoped(bson.M{"_id": id}, ownerID))
	if err != nil {
		return errors.Wrapf(err, "delete todo %s", id)
	}
	if result.DeletedCount == 0 {
		return domain.NotFound("Todo")
	}
	return nil
}

func ownerScoped(query bson.M, ownerID string) bson.M {
	if ownerID != "" {
		query["ownerId"] = ownerID
	}
	return query
}

func todoQuery(f domain.TodoFilter) bson.M {
	query := ownerScoped(bson.M{}, f.OwnerID)
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	due := bson.M{}
	if f.DueStart != nil {
		due["$gte"] = *f.DueStart
	}
	if f.DueEnd != nil {
		due["$lte"] = *f.DueEnd
	}
	if len(due) > 0 {
		query["dueDate"] = due
	}
	return query
}
