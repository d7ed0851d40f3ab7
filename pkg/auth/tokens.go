package auth

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
)

// ErrTokenInvalid covers malformed, forged and expired tokens alike.
var ErrTokenInvalid = fmt.Errorf("%w: token is invalid or expired", apperr.ErrUnauthenticated)

// TokenIssuer abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// TokenVerifier returns the identity id a token is bound to. Every failure
// wraps ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}
