package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskverse/pkg/apperr"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Fail maps err onto the error taxonomy. Messages are fixed per category,
// except for validation errors whose text describes the bad input.
// Errors outside the taxonomy are returned as is: the app error handler
// logs the cause and answers 500.
func Fail(c *fiber.Ctx, err error) error {
	status, message := Status(err)
	if status == http.StatusInternalServerError {
		return err
	}
	return Error(c, status, message)
}

// Status returns the HTTP status and public message for err.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, "not authorized, token invalid or expired"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "you do not have permission to perform this action"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
