package repository

import (
	"context"

	"tasker-server/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user and all tasks they own in a single transaction.
	Delete(ctx context.Context, username string) error
}
