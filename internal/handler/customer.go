package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/middleware"
	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/queue"
	"github.com/jaguar8340/crm-KS/internal/repository"
)

// CustomerStore is the slice of the customer repository the handlers
// consume. Satisfied by *repository.CustomerRepo.
type CustomerStore interface {
	Create(ctx context.Context, cu *model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetByKundenNr(ctx context.Context, kundenNr string) (*model.Customer, error)
	Update(ctx context.Context, id string, in model.CustomerInput) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
	AppendRemark(ctx context.Context, id string, r model.Remark) error
	AppendCorrespondence(ctx context.Context, id string, e model.Correspondence) error
}

// VehicleCascade is the part of the vehicle repository the customer
// handlers need for the cascade delete.
type VehicleCascade interface {
	DeleteByCustomer(ctx context.Context, customerID string) (int64, error)
}

// PublishDeleted sends a CustomerDeletedEvent to the broker. Publishing is
// best effort: the cascade has already happened when it is called.
type PublishDeleted func(ctx context.Context, ev queue.CustomerDeletedEvent) error

// CustomerHandler implements the /customers endpoints including the two
// append-only logs.
type CustomerHandler struct {
	Customers CustomerStore
	Vehicles  VehicleCascade
	Publish   PublishDeleted // may be nil when no broker is configured
}

func NewCustomerHandler(customers CustomerStore, vehicles VehicleCascade, publish PublishDeleted) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Vehicles: vehicles, Publish: publish}
}

// Create handles POST /customers. Id, created_at and the empty logs are
// assigned server-side; duplicate kunden_nr values are accepted.
func (h *CustomerHandler) Create(c echo.Context) error {
	var in model.CustomerInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.KundenNr) == "" || strings.TrimSpace(in.Vorname) == "" || strings.TrimSpace(in.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kunden_nr, vorname and name required"})
	}

	cu := &model.Customer{
		ID:            uuid.NewString(),
		CustomerInput: in,
		Bemerkungen:   []model.Remark{},
		Korrespondenz: []model.Correspondence{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.Customers.Create(c.Request().Context(), cu); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	return c.JSON(http.StatusOK, cu)
}

// List handles GET /customers.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.Customers.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, customers)
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	cu, err := h.Customers.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cu)
}

// Update handles PUT /customers/:id as a full replace of the business
// fields. Logs, id and created_at are never touched.
func (h *CustomerHandler) Update(c echo.Context) error {
	var in model.CustomerInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(in.KundenNr) == "" || strings.TrimSpace(in.Vorname) == "" || strings.TrimSpace(in.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kunden_nr, vorname and name required"})
	}
	cu, err := h.Customers.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cu)
}

// Delete handles DELETE /customers/:id. Vehicles cascade; tasks and client
// experience cases keep their dangling customer reference on purpose. The
// two deletes are sequential, not transactional; the published event lets
// the queue consumer close the orphan window after a crash in between.
func (h *CustomerHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	cu, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Customers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	deleted, err := h.Vehicles.DeleteByCustomer(ctx, id)
	if err != nil {
		// The customer document is already gone; report success and leave
		// the orphans to the sweep.
		log.Printf("cascade delete vehicles for customer %s failed: %v", id, err)
	}

	if h.Publish != nil {
		actor := ""
		if u := middleware.CurrentUser(c); u != nil {
			actor = u.ID
		}
		ev := queue.CustomerDeletedEvent{
			CustomerID:      id,
			KundenNr:        cu.KundenNr,
			DeletedBy:       actor,
			VehiclesDeleted: deleted,
			DeletedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		_ = h.Publish(ctx, ev)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted"})
}

type remarkReq struct {
	Text string `json:"text"`
}

// AddRemark handles POST /customers/:id/remarks. Timestamp and author are
// stamped server-side from the authenticated caller; any client-supplied
// values for them are ignored.
func (h *CustomerHandler) AddRemark(c echo.Context) error {
	var req remarkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}
	actor := middleware.CurrentUser(c)
	remark := model.Remark{
		Text:      req.Text,
		Timestamp: time.Now().UTC(),
		User:      actor.Name,
	}
	if err := h.Customers.AppendRemark(c.Request().Context(), c.Param("id"), remark); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "append failed"})
	}
	return c.JSON(http.StatusOK, remark)
}

type correspondenceReq struct {
	Bemerkung string `json:"bemerkung"`
	Datum     string `json:"datum"`
	Zeit      string `json:"zeit"`
	Textfeld  string `json:"textfeld"`
	Upload1   string `json:"upload1"`
	Upload2   string `json:"upload2"`
	Upload3   string `json:"upload3"`
}

// AddCorrespondence handles POST /customers/:id/correspondence. Up to three
// attachment references are accepted; timestamp and author are server-set.
func (h *CustomerHandler) AddCorrespondence(c echo.Context) error {
	var req correspondenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Bemerkung) == "" || strings.TrimSpace(req.Datum) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bemerkung and datum required"})
	}
	actor := middleware.CurrentUser(c)
	entry := model.Correspondence{
		Bemerkung: req.Bemerkung,
		Datum:     req.Datum,
		Zeit:      req.Zeit,
		Textfeld:  req.Textfeld,
		Upload1:   req.Upload1,
		Upload2:   req.Upload2,
		Upload3:   req.Upload3,
		Timestamp: time.Now().UTC(),
		User:      actor.Name,
	}
	if err := h.Customers.AppendCorrespondence(c.Request().Context(), c.Param("id"), entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "append failed"})
	}
	return c.JSON(http.StatusOK, entry)
}
