package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/repository"
)

// EmployeeStore is satisfied by *repository.EmployeeRepo.
type EmployeeStore interface {
	Create(ctx context.Context, e *model.Employee) error
	List(ctx context.Context) ([]model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	Update(ctx context.Context, id string, in model.EmployeeInput) (*model.Employee, error)
	Delete(ctx context.Context, id string) error
}

// EmployeeHandler implements the /employees endpoints.
type EmployeeHandler struct {
	Employees EmployeeStore
}

func NewEmployeeHandler(employees EmployeeStore) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees}
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	var in model.EmployeeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.Vorname) == "" || strings.TrimSpace(in.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vorname and name required"})
	}

	e := &model.Employee{
		ID:            uuid.NewString(),
		EmployeeInput: in,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.Employees.Create(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create employee failed"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.Employees.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c echo.Context) error {
	e, err := h.Employees.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	var in model.EmployeeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.Vorname) == "" || strings.TrimSpace(in.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vorname and name required"})
	}
	e, err := h.Employees.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.Employees.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Employee deleted"})
}
