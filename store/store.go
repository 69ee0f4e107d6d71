package store

import (
	"context"

	"TaskBackend/models"
)

// Filter narrows Find results. Empty fields match everything.
type Filter struct {
	Status string
	Search string
}

// TaskStore is the persistence boundary for tasks. FindByID and UpdateByID
// return (nil, nil) when no task has the given id; errors are reserved for
// storage failures. UpdateByID applies the field set and appends the history
// entries in a single atomic write, and refreshes updatedAt.
type TaskStore interface {
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Insert(ctx context.Context, task *models.Task) (*models.Task, error)
	UpdateByID(ctx context.Context, id string, set map[string]interface{}, history []models.HistoryEntry) (*models.Task, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Find(ctx context.Context, filter Filter) ([]models.Task, error)
}
