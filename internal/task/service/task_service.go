package service

//go:generate mockgen -destination=../../mocks/mock_task_repository.go -package=mocks github.com/khen08/todoapp/internal/task/domain TaskRepository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khen08/todoapp/internal/task/domain"
	"github.com/khen08/todoapp/internal/task/dto"
	apperror "github.com/khen08/todoapp/internal/errors"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrItemsRequired = errors.New("items are required")
)

type TaskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context, authorID string) ([]domain.Task, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *TaskService) Get(ctx context.Context, taskID, authorID string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID, authorID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, authorID string, input dto.CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Items == nil {
		return nil, ErrItemsRequired
	}

	now := time.Now()
	task := &domain.Task{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Color:     input.Color,
		AuthorID:  authorID,
		Items:     buildItems(input.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range task.Items {
		task.Items[i].TaskID = task.ID
	}

	if err := s.repo.Create(ctx, task, input.Tags); err != nil {
		return nil, err
	}

	return s.Get(ctx, task.ID, authorID)
}

// Update replaces the task's title and color, recreates its items from the
// submitted list, and resets the tag set.
func (s *TaskService) Update(ctx context.Context, taskID, authorID string, input dto.UpdateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	existing, err := s.repo.GetByID(ctx, taskID, authorID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.ErrTaskNotFound
	}

	task := &domain.Task{
		ID:        taskID,
		Title:     input.Title,
		Color:     input.Color,
		AuthorID:  authorID,
		Items:     buildItems(input.Items),
		UpdatedAt: time.Now(),
	}
	for i := range task.Items {
		task.Items[i].TaskID = taskID
	}

	if err := s.repo.Update(ctx, task, input.Tags); err != nil {
		return nil, err
	}

	return s.Get(ctx, taskID, authorID)
}

func (s *TaskService) Delete(ctx context.Context, taskID, authorID string) error {
	task, err := s.repo.GetByID(ctx, taskID, authorID)
	if err != nil {
		return err
	}
	if task == nil {
		return apperror.ErrTaskNotFound
	}
	return s.repo.Delete(ctx, taskID, authorID)
}

func (s *TaskService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	return s.repo.ListTags(ctx, userID)
}

func (s *TaskService) CreateTag(ctx context.Context, userID string, input dto.CreateTagInput) (*domain.Tag, error) {
	if input.Name == "" {
		return nil, errors.New("tag name is required")
	}

	tag := &domain.Tag{
		ID:     uuid.New().String(),
		Name:   input.Name,
		Color:  input.Color,
		UserID: userID,
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TaskService) DeleteTags(ctx context.Context, userID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return s.repo.DeleteTags(ctx, userID, tagIDs)
}

func buildItems(inputs []dto.TaskItemInput) []domain.TaskItem {
	items := make([]domain.TaskItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, domain.TaskItem{
			ID:       uuid.New().String(),
			Name:     in.Name,
			Checked:  in.Checked,
			Position: i,
		})
	}
	return items
}
