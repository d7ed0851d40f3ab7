package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/access"
	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
)

// UseCase covers account administration. Deactivating an account takes
// effect on its next request because the resolver reads the flag every time.
type UseCase interface {
	List(ctx context.Context, actor auth.Identity, limit, offset int) ([]auth.Identity, int, error)
	SetActive(ctx context.Context, actor auth.Identity, id uuid.UUID, active bool) (auth.Identity, error)
}

type service struct {
	repo auth.UserRepository
}

func NewService(repo auth.UserRepository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context, actor auth.Identity, limit, offset int) ([]auth.Identity, int, error) {
	if err := access.Check(actor, access.ManageUsers, nil); err != nil {
		return nil, 0, err
	}
	list, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]auth.Identity, 0, len(list))
	for _, u := range list {
		out = append(out, u.Identity())
	}
	return out, total, nil
}

func (s *service) SetActive(ctx context.Context, actor auth.Identity, id uuid.UUID, active bool) (auth.Identity, error) {
	if err := access.Check(actor, access.ManageUsers, nil); err != nil {
		return auth.Identity{}, err
	}
	if id == actor.ID && !active {
		return auth.Identity{}, apperr.Validation("cannot deactivate your own account")
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return auth.Identity{}, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return auth.Identity{}, err
	}
	return u.Identity(), nil
}
