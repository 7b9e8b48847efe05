package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/middleware"
	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/repository"
)

// TaskStore is satisfied by *repository.TaskRepo.
type TaskStore interface {
	Create(ctx context.Context, t *model.Task) error
	List(ctx context.Context, assignedTo string) ([]model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, id string, in model.TaskInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}

// TaskHandler implements the /tasks endpoints.
type TaskHandler struct {
	Tasks TaskStore
}

func NewTaskHandler(tasks TaskStore) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

// Create handles POST /tasks. New tasks always start offen; created_by is
// stamped from the authenticated caller.
func (h *TaskHandler) Create(c echo.Context) error {
	var in model.TaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.CustomerID) == "" || strings.TrimSpace(in.AssignedTo) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and assigned_to required"})
	}

	actor := middleware.CurrentUser(c)
	t := &model.Task{
		ID:        uuid.NewString(),
		TaskInput: in,
		Status:    model.StatusOffen,
		CreatedBy: actor.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Tasks.Create(c.Request().Context(), t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// List handles GET /tasks with an optional ?assigned_to= filter.
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.Tasks.List(c.Request().Context(), c.QueryParam("assigned_to"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, tasks)
}

// My handles GET /tasks/my: tasks assigned to the calling user.
func (h *TaskHandler) My(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	tasks, err := h.Tasks.List(c.Request().Context(), actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	t, err := h.Tasks.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /tasks/:id as a full replace of the mutable fields;
// status, created_by and created_at survive.
func (h *TaskHandler) Update(c echo.Context) error {
	var in model.TaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.CustomerID) == "" || strings.TrimSpace(in.AssignedTo) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and assigned_to required"})
	}
	t, err := h.Tasks.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// UpdateStatus handles PUT /tasks/:id/status?status=offen|erledigt. The
// status set is closed; anything else is rejected.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	status := model.Status(c.QueryParam("status"))
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be offen or erledigt"})
	}
	if err := h.Tasks.UpdateStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task status updated"})
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.Tasks.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted"})
}
