// Package memory implements the repositories on process memory. It backs
// STORAGE=memory and the HTTP tests; data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/analytics"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/task"
)

// Store holds users and tasks behind one lock so analytics see a
// consistent snapshot.
type Store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]auth.User
	tasks map[uuid.UUID]task.Task
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]auth.User),
		tasks: make(map[uuid.UUID]task.Task),
		now:   time.Now,
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

func (s *Store) Analytics() *AnalyticsRepository { return &AnalyticsRepository{s: s} }

// Name and Check let the store act as a readiness checker.
func (s *Store) Name() string { return "memory" }

func (s *Store) Check(context.Context) error { return nil }

// AnalyticsRepository aggregates over the shared store.
type AnalyticsRepository struct{ s *Store }

func (r *AnalyticsRepository) Summary(_ context.Context, now, recentSince time.Time) (analytics.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rep analytics.Report
	byStatus := map[string]int{}
	byPriority := map[string]int{}
	for _, t := range r.s.tasks {
		rep.TotalTasks++
		byStatus[string(t.Status)]++
		byPriority[string(t.Priority)]++
		if !t.DueDate.IsZero() && t.DueDate.Before(now) && t.Status != task.StatusCompleted {
			rep.OverdueTasks++
		}
		if !t.CreatedAt.Before(recentSince) {
			rep.RecentTasks++
		}
	}
	for _, u := range r.s.users {
		rep.TotalUsers++
		if u.Active {
			rep.ActiveUsers++
		}
	}
	rep.TasksByStatus = sortedCounts(byStatus)
	rep.TasksByPriority = sortedCounts(byPriority)
	return rep, nil
}

func sortedCounts(m map[string]int) []analytics.Count {
	out := make([]analytics.Count, 0, len(m))
	for k, v := range m {
		out = append(out, analytics.Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
