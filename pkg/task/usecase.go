package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/access"
	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// IdentityLookup resolves references to other accounts. A missing account
// yields an apperr.ErrNotFound error.
type IdentityLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (auth.Identity, error)
}

// UseCase is the task API. Every method receives the acting identity
// explicitly and consults the access policy before touching the store.
type UseCase interface {
	Create(ctx context.Context, actor auth.Identity, d Draft) (Task, error)
	Get(ctx context.Context, actor auth.Identity, id uuid.UUID) (Task, error)
	List(ctx context.Context, actor auth.Identity, status Status, priority Priority, p Page) (ListResult, error)
	Update(ctx context.Context, actor auth.Identity, id uuid.UUID, p Patch) (Task, error)
	Delete(ctx context.Context, actor auth.Identity, id uuid.UUID) error
}

type service struct {
	repo       Repository
	identities IdentityLookup
	now        func() time.Time
}

func NewService(repo Repository, identities IdentityLookup) UseCase {
	return &service{repo: repo, identities: identities, now: time.Now}
}

func (s *service) Create(ctx context.Context, actor auth.Identity, d Draft) (Task, error) {
	if err := access.Check(actor, access.CreateTask, nil); err != nil {
		return Task{}, err
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if err := validate(d.Title, d.Description, d.Status, d.Priority); err != nil {
		return Task{}, err
	}

	assignee := actor.ID
	if d.AssignedTo != nil && *d.AssignedTo != actor.ID {
		if _, err := s.identities.Lookup(ctx, *d.AssignedTo); err != nil {
			return Task{}, err
		}
		assignee = *d.AssignedTo
	}

	now := s.now().UTC()
	t := Task{
		ID:          uuid.New(),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		DueDate:     d.DueDate.UTC(),
		CreatedBy:   actor.ID,
		AssignedTo:  assignee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, actor auth.Identity, id uuid.UUID) (Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := access.Check(actor, access.ReadTask, t.Resource()); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, actor auth.Identity, status Status, priority Priority, p Page) (ListResult, error) {
	if err := access.Check(actor, access.ListTasks, nil); err != nil {
		return ListResult{}, err
	}
	if status != "" && !status.Valid() {
		return ListResult{}, apperr.Validation("invalid status")
	}
	if priority != "" && !priority.Valid() {
		return ListResult{}, apperr.Validation("invalid priority")
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	f := Filter{
		Scope:    access.ScopeListQuery(actor),
		Status:   status,
		Priority: priority,
	}
	return s.repo.List(ctx, f, p)
}

// Update authorizes against the task as read just before the write. If the
// task disappears in between, the store's ErrNotFound is returned.
func (s *service) Update(ctx context.Context, actor auth.Identity, id uuid.UUID, p Patch) (Task, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := access.Check(actor, access.UpdateTask, current.Resource()); err != nil {
		return Task{}, err
	}
	if p.Empty() {
		return current, nil
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		p.Description = &desc
	}
	next := p.Apply(current)
	if err := validate(next.Title, next.Description, next.Status, next.Priority); err != nil {
		return Task{}, err
	}
	if p.AssignedTo != nil && *p.AssignedTo != current.AssignedTo && *p.AssignedTo != actor.ID {
		if _, err := s.identities.Lookup(ctx, *p.AssignedTo); err != nil {
			return Task{}, err
		}
	}
	if p.DueDate != nil {
		due := p.DueDate.UTC()
		p.DueDate = &due
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, actor auth.Identity, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Check(actor, access.DeleteTask, current.Resource()); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validate(title, description string, status Status, priority Priority) error {
	switch {
	case title == "":
		return apperr.Validation("title is required")
	case len(title) > maxTitleLen:
		return apperr.Validation("title cannot exceed 100 characters")
	case len(description) > maxDescriptionLen:
		return apperr.Validation("description cannot exceed 500 characters")
	case !status.Valid():
		return apperr.Validation("invalid status")
	case !priority.Valid():
		return apperr.Validation("invalid priority")
	}
	return nil
}
