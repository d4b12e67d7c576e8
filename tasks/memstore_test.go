package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/taskdeck-go/apperror"
)

// memStore is an in-memory Store used by the service and handler tests. It
// mirrors the owner scoping and ordering semantics of the SQL store.
type memStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]Task
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		tasks: make(map[uuid.UUID]Task),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so creation order is stable.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) Insert(ctx context.Context, task *Task) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *task
	t.ID = uuid.New()
	t.CreatedAt = m.tick()
	t.UpdatedAt = t.CreatedAt
	m.tasks[t.ID] = t
	return &t, nil
}

func (m *memStore) FindByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, apperror.NewNotFoundError("Task not found", nil)
	}
	return &t, nil
}

func (m *memStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []Task{}
	for _, t := range m.tasks {
		if t.UserID != ownerID {
			continue
		}
		if q.Status != "" && string(t.Status) != q.Status {
			continue
		}
		if q.Priority != "" && string(t.Priority) != q.Priority {
			continue
		}
		result = append(result, t)
	}

	sort.SliceStable(result, func(i, j int) bool {
		switch q.Sort {
		case "oldest":
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		case "dueDate":
			if result[i].DueDate == nil {
				return false
			}
			if result[j].DueDate == nil {
				return true
			}
			return result[i].DueDate.Before(*result[j].DueDate)
		case "priority":
			return result[i].Priority.Rank() > result[j].Priority.Rank()
		default: // newest
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
	})
	return result, nil
}

func (m *memStore) Update(ctx context.Context, task *Task) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, apperror.NewNotFoundError("Task not found", nil)
	}
	t := *task
	t.UpdatedAt = m.tick()
	m.tasks[t.ID] = t
	return &t, nil
}

func (m *memStore) DeleteByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return false, nil
	}
	delete(m.tasks, taskID)
	return true, nil
}
