package jwt

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/taskverse/api/http/presenter"
	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
)

const identityKey = "identity"

// NewAuthMiddleware returns a Fiber middleware that verifies the bearer
// token and resolves it to a live identity on every request.
// On success the identity is available to handlers through IdentityFrom.
func NewAuthMiddleware(resolver auth.IdentityResolver, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return presenter.Error(c, http.StatusUnauthorized, "not authorized, no token provided")
		}
		identity, err := resolver.VerifyAndResolve(c.UserContext(), tokenStr)
		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthenticated) {
				return fmt.Errorf("resolve identity: %w", err)
			}
			logger.Debug("request not authenticated",
				"path", c.Path(),
				"reason", failureReason(err),
				"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			)
			return presenter.Fail(c, err)
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by the auth middleware.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}

// Support both "Bearer <token>" and "<token>" (no prefix).
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

// failureReason separates expired from otherwise invalid tokens for logs.
// Responses use the same message for both.
func failureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, auth.ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(err, auth.ErrIdentityInactive):
		return "identity_inactive"
	case errors.Is(err, auth.ErrIdentityUnknown):
		return "identity_unknown"
	default:
		return "unauthenticated"
	}
}
