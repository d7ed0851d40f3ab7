package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/taskverse/api/http/presenter"
	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

// taskRequest is shared by create and update; absent fields stay nil.
type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	AssignedTo  *string `json:"assignedTo"`
}

type taskResponse struct {
	Task task.Task `json:"task"`
}

type taskListResponse struct {
	Tasks       []task.Task `json:"tasks"`
	Total       int         `json:"total"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

// parseDueDate accepts RFC 3339 or a bare date.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, apperr.Validation("dueDate must be RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}

func parseAssignee(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, apperr.Validation("assignedTo must be a user id")
	}
	return id, nil
}

func (r taskRequest) draft() (task.Draft, error) {
	var d task.Draft
	if r.Title != nil {
		d.Title = *r.Title
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	if r.Status != nil {
		d.Status = task.Status(*r.Status)
	}
	if r.Priority != nil {
		d.Priority = task.Priority(*r.Priority)
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := parseDueDate(*r.DueDate)
		if err != nil {
			return task.Draft{}, err
		}
		d.DueDate = due
	}
	if r.AssignedTo != nil && *r.AssignedTo != "" {
		id, err := parseAssignee(*r.AssignedTo)
		if err != nil {
			return task.Draft{}, err
		}
		d.AssignedTo = &id
	}
	return d, nil
}

func (r taskRequest) patch() (task.Patch, error) {
	p := task.Patch{Title: r.Title, Description: r.Description}
	if r.Status != nil {
		s := task.Status(*r.Status)
		p.Status = &s
	}
	if r.Priority != nil {
		pr := task.Priority(*r.Priority)
		p.Priority = &pr
	}
	if r.DueDate != nil {
		var due time.Time
		if *r.DueDate != "" {
			var err error
			if due, err = parseDueDate(*r.DueDate); err != nil {
				return task.Patch{}, err
			}
		}
		p.DueDate = &due
	}
	if r.AssignedTo != nil {
		id, err := parseAssignee(*r.AssignedTo)
		if err != nil {
			return task.Patch{}, err
		}
		p.AssignedTo = &id
	}
	return p, nil
}

// @Summary     Create task
// @Description Creates a task owned by the caller. Without assignedTo the caller is the assignee.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       input body taskRequest true "task"
// @Security    BearerAuth
// @Success     201 {object} taskResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	d, err := req.draft()
	if err != nil {
		return presenter.Fail(c, err)
	}
	created, err := h.uc.Create(c.UserContext(), actor, d)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, taskResponse{Task: created})
}

// @Summary     List tasks
// @Description Admins see every task, other users the tasks they created or are assigned to.
// @Tags        tasks
// @Produce     json
// @Param       status   query string false "pending, in-progress, completed, overdue"
// @Param       priority query string false "low, medium, high, urgent"
// @Param       page     query int    false "page, from 1"
// @Param       limit    query int    false "page size, max 100"
// @Security    BearerAuth
// @Success     200 {object} taskListResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Router      /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	page, p := parsePage(c)
	res, err := h.uc.List(c.UserContext(), actor, task.Status(c.Query("status")), task.Priority(c.Query("priority")), p)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if res.Tasks == nil {
		res.Tasks = []task.Task{}
	}
	return presenter.JSON(c, http.StatusOK, taskListResponse{
		Tasks:       res.Tasks,
		Total:       res.Total,
		TotalPages:  totalPages(res.Total, p.Limit),
		CurrentPage: page,
	})
}

// @Summary  Get task
// @Tags     tasks
// @Produce  json
// @Param    id path string true "task id"
// @Security BearerAuth
// @Success  200 {object} taskResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	// a malformed id answers like a missing task
	id, ok := pathID(c)
	if !ok {
		return presenter.Fail(c, task.ErrNotFound)
	}
	t, err := h.uc.Get(c.UserContext(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, taskResponse{Task: t})
}

// @Summary     Update task
// @Description Partial update. Creator, assignee and admins may update; only they may reassign.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id    path string      true "task id"
// @Param       input body taskRequest true "fields to change"
// @Security    BearerAuth
// @Success     200 {object} taskResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Fail(c, task.ErrNotFound)
	}
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := req.patch()
	if err != nil {
		return presenter.Fail(c, err)
	}
	updated, err := h.uc.Update(c.UserContext(), actor, id, p)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, taskResponse{Task: updated})
}

// @Summary     Delete task
// @Description Only the creator or an admin may delete.
// @Tags        tasks
// @Param       id path string true "task id"
// @Security    BearerAuth
// @Success     204
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentIdentity(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Fail(c, task.ErrNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), actor, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
