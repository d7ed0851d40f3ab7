package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskverse/api/http/presenter"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/users"
)

type UsersHandler struct {
	uc users.UseCase
}

func NewUsersHandler(uc users.UseCase) *UsersHandler { return &UsersHandler{uc: uc} }

type userListResponse struct {
	Users  []auth.Identity `json:"users"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type setStatusRequest struct {
	Active *bool `json:"active"`
}

// @Summary  List users
// @Tags     users
// @Produce  json
// @Param    limit  query int false "page size"
// @Param    offset query int false "offset"
// @Security BearerAuth
// @Success  200 {object} userListResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	limit, offset := parseLimitOffset(c, 20)
	list, total, err := h.uc.List(c.UserContext(), actor, limit, offset)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if list == nil {
		list = []auth.Identity{}
	}
	return presenter.JSON(c, http.StatusOK, userListResponse{Users: list, Total: total, Limit: limit, Offset: offset})
}

// @Summary     Activate or deactivate a user
// @Description Deactivation takes effect on the user's next request.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id    path string           true "user id"
// @Param       input body setStatusRequest true "new status"
// @Security    BearerAuth
// @Success     200 {object} auth.Identity
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /users/{id}/status [patch]
func (h *UsersHandler) SetStatus(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Fail(c, auth.ErrNotFound)
	}
	var req setStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Active == nil {
		return presenter.Error(c, http.StatusBadRequest, "active must be true or false")
	}
	updated, err := h.uc.SetActive(c.UserContext(), actor, id, *req.Active)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}
