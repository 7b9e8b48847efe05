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

// VehicleStore is the slice of the vehicle repository the handlers
// consume. Satisfied by *repository.VehicleRepo.
type VehicleStore interface {
	Create(ctx context.Context, v *model.Vehicle) error
	List(ctx context.Context, customerID string) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id string) (*model.Vehicle, error)
	Update(ctx context.Context, id string, in model.VehicleInput) (*model.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

// CustomerResolver resolves customers by their external business key for
// the CSV importer.
type CustomerResolver interface {
	GetByKundenNr(ctx context.Context, kundenNr string) (*model.Customer, error)
}

// VehicleHandler implements the /vehicles endpoints.
type VehicleHandler struct {
	Vehicles  VehicleStore
	Customers CustomerResolver
}

func NewVehicleHandler(vehicles VehicleStore, customers CustomerResolver) *VehicleHandler {
	return &VehicleHandler{Vehicles: vehicles, Customers: customers}
}

// Create handles POST /vehicles.
func (h *VehicleHandler) Create(c echo.Context) error {
	var in model.VehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id required"})
	}
	if strings.TrimSpace(in.Marke) == "" || strings.TrimSpace(in.Modell) == "" || strings.TrimSpace(in.ChassisNr) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "marke, modell and chassis_nr required"})
	}

	v := &model.Vehicle{
		ID:           uuid.NewString(),
		VehicleInput: in,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Vehicles.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create vehicle failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// List handles GET /vehicles with an optional ?customer_id= filter.
func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.Vehicles.List(c.Request().Context(), c.QueryParam("customer_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, vehicles)
}

// Get handles GET /vehicles/:id.
func (h *VehicleHandler) Get(c echo.Context) error {
	v, err := h.Vehicles.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, v)
}

// Update handles PUT /vehicles/:id as a full replace of the mutable fields.
func (h *VehicleHandler) Update(c echo.Context) error {
	var in model.VehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id required"})
	}
	if strings.TrimSpace(in.Marke) == "" || strings.TrimSpace(in.Modell) == "" || strings.TrimSpace(in.ChassisNr) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "marke, modell and chassis_nr required"})
	}
	v, err := h.Vehicles.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// Delete handles DELETE /vehicles/:id.
func (h *VehicleHandler) Delete(c echo.Context) error {
	if err := h.Vehicles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vehicle deleted"})
}
