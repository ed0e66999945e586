package domain

import "context"

type TaskRepository interface {
	ListByAuthor(ctx context.Context, authorID string) ([]Task, error)
	GetByID(ctx context.Context, taskID, authorID string) (*Task, error)
	Create(ctx context.Context, task *Task, tagIDs []string) error
	Update(ctx context.Context, task *Task, tagIDs []string) error
	Delete(ctx context.Context, taskID, authorID string) error

	ListTags(ctx context.Context, userID string) ([]Tag, error)
	CreateTag(ctx context.Context, tag *Tag) error
	DeleteTags(ctx context.Context, userID string, tagIDs []string) error
}
