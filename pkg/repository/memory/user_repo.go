package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/auth"
)

// UserRepository implements auth.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.Email = auth.NormalizeEmail(user.Email)
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return auth.ErrUserAlreadyExists
		}
	}
	if _, ok := r.s.users[user.ID]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = auth.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

// List orders by creation time, newest first.
func (r *UserRepository) List(_ context.Context, limit, offset int) ([]auth.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]auth.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return window(all, limit, offset), len(all), nil
}

func (r *UserRepository) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.ErrNotFound
	}
	u.Active = active
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[id] = u
	return nil
}

func window[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	if offset < 0 {
		offset = 0
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
