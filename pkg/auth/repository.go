package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = fmt.Errorf("%w: user", apperr.ErrNotFound)
	ErrUserAlreadyExists  = fmt.Errorf("%w: user already exists", apperr.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	ErrAccountDisabled    = fmt.Errorf("%w: account has been deactivated", apperr.ErrForbidden)
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc. Lookups of a missing
// user return ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, limit, offset int) ([]User, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
