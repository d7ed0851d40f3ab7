package analytics

import (
	"context"
	"time"
)

// Count is the number of tasks sharing one status or priority value.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Report holds aggregated figures across all tasks and users.
type Report struct {
	TasksByStatus   []Count   `json:"tasksByStatus"`
	TasksByPriority []Count   `json:"tasksByPriority"`
	OverdueTasks    int       `json:"overdueTasks"`
	TotalUsers      int       `json:"totalUsers"`
	ActiveUsers     int       `json:"activeUsers"`
	TotalTasks      int       `json:"totalTasks"`
	RecentTasks     int       `json:"recentTasks"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Repository computes the aggregates. Overdue tasks are due before now and not
// completed; recent tasks were created at or after recentSince. Counts are
// ordered by key.
type Repository interface {
	Summary(ctx context.Context, now, recentSince time.Time) (Report, error)
}
