package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"TaskBackend/models"
)

// MongoStore persists tasks in the task_db.tasks collection.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{collection: client.Database("task_db").Collection("tasks")}
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (s *MongoStore) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now()
	task.ID = primitive.NewObjectID().Hex()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// UpdateByID combines the field assignment and the history append into one
// update document, so either both land or neither does.
func (s *MongoStore) UpdateByID(ctx context.Context, id string, set map[string]interface{}, history []models.HistoryEntry) (*models.Task, error) {
	setFields := bson.M{}
	for k, v := range set {
		setFields[k] = v
	}
	setFields["updatedAt"] = time.Now()

	update := bson.M{"$set": setFields}
	if len(history) > 0 {
		update["$push"] = bson.M{"historyLog": bson.M{"$each": history}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Task
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &updated, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) Find(ctx context.Context, filter Filter) ([]models.Task, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": filter.Search, "$options": "i"}},
			{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}
