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

// ExperienceStore is satisfied by *repository.ExperienceRepo.
type ExperienceStore interface {
	Create(ctx context.Context, ce *model.ClientExperience) error
	List(ctx context.Context) ([]model.ClientExperience, error)
	GetByID(ctx context.Context, id string) (*model.ClientExperience, error)
	Update(ctx context.Context, id string, in model.ClientExperienceInput) (*model.ClientExperience, error)
	AppendSolution(ctx context.Context, id string, s model.Solution) error
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}

// ExperienceHandler implements the /client-experience endpoints.
type ExperienceHandler struct {
	Cases ExperienceStore
}

func NewExperienceHandler(cases ExperienceStore) *ExperienceHandler {
	return &ExperienceHandler{Cases: cases}
}

// Create handles POST /client-experience. The customer link is optional;
// walk-in complaints carry only the typed name.
func (h *ExperienceHandler) Create(c echo.Context) error {
	var in model.ClientExperienceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.Marke) == "" || strings.TrimSpace(in.Modell) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "marke and modell required"})
	}
	if strings.TrimSpace(in.Kundenreklamation) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kundenreklamation required"})
	}

	actor := middleware.CurrentUser(c)
	ce := &model.ClientExperience{
		ID:                    uuid.NewString(),
		ClientExperienceInput: in,
		Loesungen:             []model.Solution{},
		Status:                model.StatusOffen,
		CreatedBy:             actor.ID,
		CreatedAt:             time.Now().UTC(),
	}
	if err := h.Cases.Create(c.Request().Context(), ce); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create case failed"})
	}
	return c.JSON(http.StatusOK, ce)
}

// List handles GET /client-experience.
func (h *ExperienceHandler) List(c echo.Context) error {
	cases, err := h.Cases.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cases)
}

// Get handles GET /client-experience/:id.
func (h *ExperienceHandler) Get(c echo.Context) error {
	ce, err := h.Cases.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "case not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, ce)
}

// Update handles PUT /client-experience/:id; the action log, status and
// creation metadata are untouched.
func (h *ExperienceHandler) Update(c echo.Context) error {
	var in model.ClientExperienceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.Marke) == "" || strings.TrimSpace(in.Modell) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "marke and modell required"})
	}
	ce, err := h.Cases.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "case not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, ce)
}

type solutionReq struct {
	Text string `json:"text"`
}

// AddSolution handles POST /client-experience/:id/solution. Timestamp and
// author are server-set; prior entries and their order are preserved.
func (h *ExperienceHandler) AddSolution(c echo.Context) error {
	var req solutionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}
	actor := middleware.CurrentUser(c)
	s := model.Solution{
		Text:      req.Text,
		Timestamp: time.Now().UTC(),
		User:      actor.Name,
	}
	if err := h.Cases.AppendSolution(c.Request().Context(), c.Param("id"), s); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "case not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "append failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateStatus handles PUT /client-experience/:id/status?status=....
func (h *ExperienceHandler) UpdateStatus(c echo.Context) error {
	status := model.Status(c.QueryParam("status"))
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be offen or erledigt"})
	}
	if err := h.Cases.UpdateStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "case not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated"})
}

// Delete handles DELETE /client-experience/:id.
func (h *ExperienceHandler) Delete(c echo.Context) error {
	if err := h.Cases.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "case not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Case deleted"})
}
