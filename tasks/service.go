package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/user/taskdeck-go/apperror"
)

// Service defines the task operations exposed to the handlers. The owner id
// on every method is the authenticated caller; it is never taken from the
// request payload.
type Service interface {
	List(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]Task, error)
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, req UpdateTaskRequest) (*Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	FilterByStatus(ctx context.Context, ownerID uuid.UUID, status string) ([]Task, error)
}

type taskService struct {
	store Store
}

// NewService creates a task Service backed by the given store.
func NewService(store Store) Service {
	return &taskService{store: store}
}

func (s *taskService) List(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]Task, error) {
	return s.store.ListByOwner(ctx, ownerID, q)
}

func (s *taskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*Task, error) {
	return s.store.FindByOwner(ctx, ownerID, taskID)
}

func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*Task, error) {
	if req.Title == "" {
		return nil, apperror.NewValidationError("Title is required", nil)
	}
	if len(req.Title) > 200 {
		return nil, apperror.NewValidationError("Title cannot exceed 200 characters", nil)
	}
	if len(req.Description) > 1000 {
		return nil, apperror.NewValidationError("Description cannot exceed 1000 characters", nil)
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return nil, apperror.NewValidationError("Invalid status", nil)
	}
	if req.Priority != "" && !ValidPriority(req.Priority) {
		return nil, apperror.NewValidationError("Invalid priority", nil)
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &Task{
		UserID:      ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusPending,
		Priority:    PriorityMedium,
		DueDate:     dueDate,
	}
	if req.Status != "" {
		task.Status = Status(req.Status)
	}
	if req.Priority != "" {
		task.Priority = Priority(req.Priority)
	}

	return s.store.Insert(ctx, task)
}

// Update applies a partial update: the task is located scoped to the caller
// first, so a foreign or absent task id fails with NotFound before any field
// is touched. Unset fields keep their current values. Concurrent updates to
// the same task are last-write-wins.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, req UpdateTaskRequest) (*Task, error) {
	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperror.NewValidationError("Title cannot be empty", nil)
		}
		if len(*req.Title) > 200 {
			return nil, apperror.NewValidationError("Title cannot exceed 200 characters", nil)
		}
	}
	if req.Description != nil && len(*req.Description) > 1000 {
		return nil, apperror.NewValidationError("Description cannot exceed 1000 characters", nil)
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, apperror.NewValidationError("Invalid status", nil)
	}
	if req.Priority != nil && !ValidPriority(*req.Priority) {
		return nil, apperror.NewValidationError("Invalid priority", nil)
	}
	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = parsed
	}

	task, err := s.store.FindByOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = Status(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = Priority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = dueDate
	}

	return s.store.Update(ctx, task)
}

// Delete removes the task in one atomic owner-scoped operation. Deleting an
// absent or already-deleted id fails with NotFound every time; it is never
// silently successful twice.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	deleted, err := s.store.DeleteByOwner(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Task not found", nil)
	}
	return nil
}

// FilterByStatus lists the caller's tasks with the given status, newest
// first. The status is deliberately not validated against the enum: an
// arbitrary string matches nothing and yields an empty result set.
func (s *taskService) FilterByStatus(ctx context.Context, ownerID uuid.UUID, status string) ([]Task, error) {
	return s.store.ListByOwner(ctx, ownerID, ListQuery{Status: status})
}

// parseDueDate parses an optional due-date string, accepting RFC 3339
// timestamps and plain dates. Empty means no due date.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.NewValidationError("Due date must be a valid date", nil)
}
