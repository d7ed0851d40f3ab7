package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/task"
)

// TaskRepository implements task.Repository.
type TaskRepository struct{ s *Store }

func (r *TaskRepository) Create(_ context.Context, t task.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[t.ID] = t
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id uuid.UUID) (task.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

// List applies the scope with the other filters before paging, newest first.
func (r *TaskRepository) List(_ context.Context, f task.Filter, p task.Page) (task.ListResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []task.Task
	for _, t := range r.s.tasks {
		if !f.Scope.Includes(*t.Resource()) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return task.ListResult{Tasks: window(matched, p.Limit, p.Offset), Total: len(matched)}, nil
}

func (r *TaskRepository) Update(_ context.Context, id uuid.UUID, p task.Patch) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	t = p.Apply(t)
	t.UpdatedAt = r.s.now().UTC()
	r.s.tasks[id] = t
	return t, nil
}

func (r *TaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return task.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}
