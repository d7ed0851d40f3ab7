package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskverse/api/http/presenter"
	"github.com/artem13815/taskverse/pkg/analytics"
)

type AnalyticsHandler struct {
	uc analytics.UseCase
}

func NewAnalyticsHandler(uc analytics.UseCase) *AnalyticsHandler { return &AnalyticsHandler{uc: uc} }

// @Summary  Task analytics
// @Tags     analytics
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} analytics.Report
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /analytics [get]
func (h *AnalyticsHandler) Get(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	rep, err := h.uc.Get(c.UserContext(), actor)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, rep)
}
