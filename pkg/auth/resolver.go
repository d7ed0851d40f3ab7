package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
)

var (
	ErrIdentityUnknown  = fmt.Errorf("%w: identity not found", apperr.ErrUnauthenticated)
	ErrIdentityInactive = fmt.Errorf("%w: identity is inactive", apperr.ErrUnauthenticated)
)

// IdentityResolver turns credentials into live identities.
type IdentityResolver interface {
	// VerifyAndResolve verifies token and resolves the identity it names.
	VerifyAndResolve(ctx context.Context, token string) (Identity, error)
	// Resolve loads an active identity, failing with ErrUnauthenticated.
	Resolve(ctx context.Context, id uuid.UUID) (Identity, error)
	// Lookup loads any existing identity, failing with ErrNotFound. It is
	// used for references to other accounts, such as a task assignee.
	Lookup(ctx context.Context, id uuid.UUID) (Identity, error)
}

// Resolver reads the user store on every call; the active flag is never
// cached so a deactivation applies to the very next request.
type Resolver struct {
	users  UserRepository
	tokens TokenVerifier
}

func NewResolver(users UserRepository, tokens TokenVerifier) *Resolver {
	return &Resolver{users: users, tokens: tokens}
}

func (r *Resolver) VerifyAndResolve(ctx context.Context, token string) (Identity, error) {
	id, err := r.tokens.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	return r.Resolve(ctx, id)
}

func (r *Resolver) Resolve(ctx context.Context, id uuid.UUID) (Identity, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Identity{}, ErrIdentityUnknown
		}
		return Identity{}, fmt.Errorf("auth.Resolve: %w", err)
	}
	if !user.Active {
		return Identity{}, ErrIdentityInactive
	}
	return user.Identity(), nil
}

func (r *Resolver) Lookup(ctx context.Context, id uuid.UUID) (Identity, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, fmt.Errorf("auth.Lookup: %w", err)
	}
	return user.Identity(), nil
}
