package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasker-server/internal/domain"
	"tasker-server/internal/repository"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	description TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (username) REFERENCES users(username)
);
`

const createTasksOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_tasks_username ON tasks(username);
`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTasksOwnerIndex); err != nil {
		return fmt.Errorf("create tasks owner index: %w", err)
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (username, description, priority, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		task.Username,
		task.Description,
		task.Priority,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	task.ID = id
	return id, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET description = ?, priority = ?, updated_at = ?
WHERE id = ? AND username = ?`,
		task.Description,
		task.Priority,
		task.UpdatedAt,
		task.ID,
		task.Username,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update task %d: %w", task.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND username = ?`, id, username)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete task %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *TaskRepository) GetByIDAndOwner(ctx context.Context, id int64, username string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, description, priority, created_at, updated_at
FROM tasks
WHERE id = ? AND username = ?`,
		id,
		username,
	)

	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.Username,
		&task.Description,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, username string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, description, priority, created_at, updated_at
FROM tasks
WHERE username = ?
ORDER BY priority DESC, description ASC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Username,
			&task.Description,
			&task.Priority,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE username = ?`, username); err != nil {
		return fmt.Errorf("delete tasks by owner: %w", err)
	}
	return nil
}
