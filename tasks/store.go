package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/taskdeck-go/apperror"
)

// Store defines the owner-scoped persistence operations for tasks. Every
// method that touches an existing task takes the owner id and matches on
// both; none of them accept a task id alone.
type Store interface {
	Insert(ctx context.Context, task *Task) (*Task, error)
	FindByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]Task, error)
	Update(ctx context.Context, task *Task) (*Task, error)
	DeleteByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error)
}

// PGStore is the PostgreSQL-backed implementation of Store.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a new PGStore.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PGStore) Insert(ctx context.Context, task *Task) (*Task, error) {
	query := `INSERT INTO tasks (user_id, title, description, status, priority, due_date)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING ` + taskColumns
	created, err := scanTask(s.db.QueryRow(ctx, query,
		task.UserID, task.Title, task.Description, task.Status, task.Priority, task.DueDate))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create task", err)
	}
	return created, nil
}

func (s *PGStore) FindByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	task, err := scanTask(s.db.QueryRow(ctx, query, taskID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Task not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get task", err)
	}
	return task, nil
}

func (s *PGStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []interface{}{ownerID}
	argID := 2

	// Filter values are matched as-is. An arbitrary status or priority string
	// yields an empty result set, not an error.
	if q.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, q.Status)
		argID++
	}
	if q.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argID)
		args = append(args, q.Priority)
		argID++
	}

	query += " ORDER BY " + orderBy(q.Sort)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list tasks", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Priority,
			&t.DueDate,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list tasks", err)
	}
	return tasks, nil
}

func (s *PGStore) Update(ctx context.Context, task *Task) (*Task, error) {
	query := `UPDATE tasks
              SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = now()
              WHERE id = $6 AND user_id = $7
              RETURNING ` + taskColumns
	updated, err := scanTask(s.db.QueryRow(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate, task.ID, task.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Task not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update task", err)
	}
	return updated, nil
}

// DeleteByOwner removes the task in a single owner-scoped statement and
// reports whether a row matched. Zero rows means the task never existed,
// was already deleted, or belongs to someone else; callers treat all three
// the same.
func (s *PGStore) DeleteByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, ownerID)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to delete task", err)
	}
	return tag.RowsAffected() > 0, nil
}

// orderBy maps a sort name to its ORDER BY clause. The priority sort orders
// by severity ranking (high > medium > low), not alphabetically.
func orderBy(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC"
	case "dueDate":
		return "due_date ASC NULLS LAST"
	case "priority":
		return "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC"
	default: // newest
		return "created_at DESC"
	}
}
