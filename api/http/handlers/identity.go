package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/taskverse/api/http/presenter"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/security/jwt"
)

func currentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	return jwt.IdentityFrom(c)
}

// Route was mounted without the auth middleware.
func unauthenticated(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "not authorized, no token provided")
}

func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
