package service

import (
	"context"
	"fmt"

	"github.com/njb1/what2do/internal/domain"
	"github.com/njb1/what2do/internal/logger"
)

// TaskStore is the persistence the task service needs. Every method runs a
// single statement; callers get no cross-statement atomicity.
type TaskStore interface {
	List(ctx context.Context) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	SetCompleted(ctx context.Context, id int64, completed bool) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
}

// TaskService implements the task CRUD operations on top of a TaskStore.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// List returns every task, newest first. The result is never nil.
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Create stores a new, not yet completed task. A nil or empty content is
// rejected with domain.ErrContentRequired.
func (s *TaskService) Create(ctx context.Context, content *string) (*domain.Task, error) {
	if content == nil || *content == "" {
		return nil, domain.ErrContentRequired
	}

	t := &domain.Task{Content: *content}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	logger.WithContext(ctx).Debug("task created", "task_id", t.ID)
	return t, nil
}

// SetCompleted updates the completed flag. A nil value leaves the task
// untouched. Unknown ids are not an error.
func (s *TaskService) SetCompleted(ctx context.Context, id int64, completed *bool) error {
	if completed == nil {
		logger.WithContext(ctx).Debug("task update without completed field", "task_id", id)
		return nil
	}

	n, err := s.store.SetCompleted(ctx, id, *completed)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if n == 0 {
		logger.WithContext(ctx).Debug("task update matched no rows", "task_id", id)
	}
	return nil
}

// Delete removes the task. Unknown ids are not an error.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n == 0 {
		logger.WithContext(ctx).Debug("task delete matched no rows", "task_id", id)
	}
	return nil
}

// Ping reports whether the store is reachable.
func (s *TaskService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
