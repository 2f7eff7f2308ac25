package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tasker-server/internal/domain"
	"tasker-server/internal/repository"
)

// TaskService coordinates task CRUD scoped to an owning username. It trusts
// that the caller has already authorized the owner; no token ever reaches
// this layer. Every mutation returns the owner's full re-sorted list.
type TaskService interface {
	Add(ctx context.Context, username, description string, priority *int) ([]domain.Task, error)
	Update(ctx context.Context, username string, id *int64, description string, priority *int) ([]domain.Task, error)
	Delete(ctx context.Context, username string, id *int64) ([]domain.Task, error)
	Get(ctx context.Context, username string, id *int64) (*domain.Task, error)
	// List returns the owner's tasks ordered by priority descending then
	// description ascending. An owner with no tasks gets an empty list.
	List(ctx context.Context, username string) ([]domain.Task, error)
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Add(ctx context.Context, username, description string, priority *int) ([]domain.Task, error) {
	if strings.TrimSpace(description) == "" || priority == nil {
		return nil, fmt.Errorf("add task: %w", ErrInvalidInput)
	}

	// Identical description and priority are allowed; the store hands each
	// insert a fresh id.
	task := &domain.Task{
		Username:    username,
		Description: description,
		Priority:    *priority,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.List(ctx, username)
}

func (s *taskService) Update(ctx context.Context, username string, id *int64, description string, priority *int) ([]domain.Task, error) {
	if id == nil || strings.TrimSpace(description) == "" || priority == nil {
		return nil, fmt.Errorf("update task: %w", ErrInvalidInput)
	}

	task, err := s.tasks.GetByIDAndOwner(ctx, *id, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("update task %d: %w", *id, ErrNotFound)
		}
		return nil, err
	}

	task.Description = description
	task.Priority = *priority
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("update task %d: %w", *id, ErrNotFound)
		}
		return nil, err
	}
	return s.List(ctx, username)
}

func (s *taskService) Delete(ctx context.Context, username string, id *int64) ([]domain.Task, error) {
	if id == nil {
		return nil, fmt.Errorf("delete task: %w", ErrInvalidInput)
	}

	if err := s.tasks.Delete(ctx, *id, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("delete task %d: %w", *id, ErrNotFound)
		}
		return nil, err
	}
	return s.List(ctx, username)
}

func (s *taskService) Get(ctx context.Context, username string, id *int64) (*domain.Task, error) {
	if id == nil {
		return nil, fmt.Errorf("get task: %w", ErrInvalidInput)
	}

	task, err := s.tasks.GetByIDAndOwner(ctx, *id, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("get task %d: %w", *id, ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, username string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, username)
}
