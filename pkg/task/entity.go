package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/access"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by its creator and worked on by its assignee.
// CreatedBy never changes after creation.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate,omitzero"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	AssignedTo  uuid.UUID `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Resource is the ownership view used by the access policy.
func (t Task) Resource() *access.Resource {
	return &access.Resource{ID: t.ID, CreatedBy: t.CreatedBy, AssignedTo: t.AssignedTo}
}

// Draft is the input of Create. A nil AssignedTo assigns the creator.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     time.Time
	AssignedTo  *uuid.UUID
}

// Patch lists the fields to change; nil fields are kept.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && p.AssignedTo == nil
}

// Apply returns t with the patch applied.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	return t
}

// Filter selects tasks for a listing. Scope always comes from
// access.ScopeListQuery.
type Filter struct {
	Scope    access.ListScope
	Status   Status
	Priority Priority
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// ListResult is one page plus the total matching Filter.
type ListResult struct {
	Tasks []Task
	Total int
}
