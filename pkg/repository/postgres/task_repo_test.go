package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/artem13815/taskverse/pkg/access"
	"github.com/artem13815/taskverse/pkg/task"
)

func TestListWhere(t *testing.T) {
	me := uuid.New()

	t.Run("admin without filters", func(t *testing.T) {
		where, args := listWhere(task.Filter{Scope: access.ListScope{Unrestricted: true}})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("participant with filters", func(t *testing.T) {
		where, args := listWhere(task.Filter{
			Scope:    access.ListScope{Participant: me},
			Status:   task.StatusPending,
			Priority: task.PriorityHigh,
		})
		assert.Equal(t, " WHERE (created_by = $1 OR assigned_to = $1) AND status = $2 AND priority = $3", where)
		assert.Equal(t, []any{me, "pending", "high"}, args)
	})

	t.Run("empty scope still filters", func(t *testing.T) {
		where, args := listWhere(task.Filter{})
		assert.Equal(t, " WHERE (created_by = $1 OR assigned_to = $1)", where)
		assert.Equal(t, []any{uuid.Nil}, args)
	})
}

func TestUpdateSet(t *testing.T) {
	title := "new title"
	status := task.StatusCompleted
	assignee := uuid.New()
	due := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	sets, args := updateSet(task.Patch{Title: &title, Status: &status, DueDate: &due, AssignedTo: &assignee})

	assert.Equal(t, []string{"title = $1", "status = $2", "due_date = $3", "assigned_to = $4"}, sets)
	assert.Equal(t, "new title", args[0])
	assert.Equal(t, "completed", args[1])
	assert.Equal(t, &due, args[2])
	assert.Equal(t, assignee, args[3])
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, nullTime(time.Time{}))
	now := time.Now()
	assert.Equal(t, now, *nullTime(now))
}
