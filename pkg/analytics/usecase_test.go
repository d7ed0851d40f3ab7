package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/taskverse/pkg/analytics"
	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/repository/memory"
	"github.com/artem13815/taskverse/pkg/task"
)

func TestGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()

	admin := auth.User{ID: uuid.New(), Email: "root@example.com", Role: auth.RoleAdmin, Active: true}
	user := auth.User{ID: uuid.New(), Email: "alice@example.com", Role: auth.RoleUser, Active: false}
	require.NoError(t, store.Users().Create(ctx, admin))
	require.NoError(t, store.Users().Create(ctx, user))

	tasks := []task.Task{
		{Status: task.StatusPending, Priority: task.PriorityHigh, DueDate: now.Add(-time.Hour), CreatedAt: now},
		{Status: task.StatusCompleted, Priority: task.PriorityHigh, DueDate: now.Add(-time.Hour), CreatedAt: now},
		{Status: task.StatusPending, Priority: task.PriorityLow, DueDate: now.Add(time.Hour), CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}
	for _, tk := range tasks {
		tk.ID = uuid.New()
		tk.CreatedBy, tk.AssignedTo = user.ID, user.ID
		require.NoError(t, store.Tasks().Create(ctx, tk))
	}

	svc := analytics.NewService(store.Analytics())

	rep, err := svc.Get(ctx, admin.Identity())
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TotalTasks)
	assert.Equal(t, 1, rep.OverdueTasks)
	assert.Equal(t, 2, rep.RecentTasks)
	assert.Equal(t, 2, rep.TotalUsers)
	assert.Equal(t, 1, rep.ActiveUsers)
	assert.Equal(t, []analytics.Count{{Key: "completed", Count: 1}, {Key: "pending", Count: 2}}, rep.TasksByStatus)
	assert.Equal(t, []analytics.Count{{Key: "high", Count: 2}, {Key: "low", Count: 1}}, rep.TasksByPriority)
	assert.False(t, rep.GeneratedAt.IsZero())

	regular := user.Identity()
	regular.Active = true
	_, err = svc.Get(ctx, regular)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
