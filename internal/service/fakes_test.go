package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"tasker-server/internal/domain"
	"tasker-server/internal/repository"
)

// In-memory repository fakes so the services can be exercised without sqlite.

type fakeUserRepo struct {
	users  map[string]domain.User
	nextID int64
	tasks  *fakeTaskRepo
}

func newFakeUserRepo(tasks *fakeTaskRepo) *fakeUserRepo {
	return &fakeUserRepo{
		users: map[string]domain.User{},
		tasks: tasks,
	}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if _, exists := r.users[user.Username]; exists {
		return 0, fmt.Errorf("insert user %q: %w", user.Username, repository.ErrAlreadyExists)
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Username] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := r.users[username]
	if !exists {
		return nil, repository.ErrNotFound
	}
	clone := user
	return &clone, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; !exists {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.Username] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, username string) error {
	if _, exists := r.users[username]; !exists {
		return repository.ErrNotFound
	}
	delete(r.users, username)
	if r.tasks != nil {
		_ = r.tasks.DeleteByOwner(ctx, username)
	}
	return nil
}

type fakeTaskRepo struct {
	tasks  []domain.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{}
}

func (r *fakeTaskRepo) Init(ctx context.Context) error { return nil }

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (int64, error) {
	r.nextID++
	task.ID = r.nextID
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt
	r.tasks = append(r.tasks, *task)
	return task.ID, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID && r.tasks[i].Username == task.Username {
			task.UpdatedAt = time.Now().UTC()
			r.tasks[i] = *task
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64, username string) error {
	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].Username == username {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeTaskRepo) GetByIDAndOwner(ctx context.Context, id int64, username string) (*domain.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].Username == username {
			clone := r.tasks[i]
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTaskRepo) ListByOwner(ctx context.Context, username string) ([]domain.Task, error) {
	owned := []domain.Task{}
	for i := range r.tasks {
		if r.tasks[i].Username == username {
			owned = append(owned, r.tasks[i])
		}
	}
	// store ordering contract: priority desc, description asc
	sort.SliceStable(owned, func(i, j int) bool {
		if owned[i].Priority != owned[j].Priority {
			return owned[i].Priority > owned[j].Priority
		}
		return owned[i].Description < owned[j].Description
	})
	return owned, nil
}

func (r *fakeTaskRepo) DeleteByOwner(ctx context.Context, username string) error {
	kept := r.tasks[:0]
	for i := range r.tasks {
		if r.tasks[i].Username != username {
			kept = append(kept, r.tasks[i])
		}
	}
	r.tasks = kept
	return nil
}

// plainHasher avoids bcrypt cost in service tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if !strings.HasPrefix(hash, "hashed:") || hash[len("hashed:"):] != password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}
