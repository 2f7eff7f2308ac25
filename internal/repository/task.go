package repository

import (
	"context"

	"tasker-server/internal/domain"
)

// TaskRepository exposes persistence operations for Task entities. All
// lookups are scoped to the owning username.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64, username string) error
	GetByIDAndOwner(ctx context.Context, id int64, username string) (*domain.Task, error)
	// ListByOwner returns the owner's tasks ordered by priority descending,
	// ties broken by description ascending.
	ListByOwner(ctx context.Context, username string) ([]domain.Task, error)
	DeleteByOwner(ctx context.Context, username string) error
}
