package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaguar8340/crm-KS/internal/model"
)

func seedVehicle(t *testing.T, store *fakeVehicleStore, id, customerID string) *model.Vehicle {
	t.Helper()
	v := &model.Vehicle{
		ID: id,
		VehicleInput: model.VehicleInput{
			CustomerID: customerID,
			Marke:      "VW",
			Modell:     "Golf",
			ChassisNr:  "WVWZZZ" + id,
			Farbe:      "blau",
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Create(t.Context(), v))
	return v
}

func TestVehicleCreateAndGet(t *testing.T) {
	store := newFakeVehicleStore()
	h := NewVehicleHandler(store, newFakeCustomerStore())

	c, rec := newTestContext(http.MethodPost, "/api/vehicles",
		`{"customer_id":"c1","marke":"VW","modell":"Golf","chassis_nr":"WVWZZZ1","farbe":"blau"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "c1", created.CustomerID)
	assert.False(t, created.CreatedAt.IsZero())

	c, rec = newTestContext(http.MethodGet, "/api/vehicles/"+created.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "WVWZZZ1", got.ChassisNr)
}

func TestVehicleCreateRequiredFields(t *testing.T) {
	h := NewVehicleHandler(newFakeVehicleStore(), newFakeCustomerStore())

	c, rec := newTestContext(http.MethodPost, "/api/vehicles", `{"marke":"VW"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodPost, "/api/vehicles",
		`{"customer_id":"c1","marke":"VW","modell":"Golf"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "chassis_nr")
}

func TestVehicleListFiltersByCustomer(t *testing.T) {
	store := newFakeVehicleStore()
	seedVehicle(t, store, "v1", "c1")
	seedVehicle(t, store, "v2", "c2")
	seedVehicle(t, store, "v3", "c1")
	h := NewVehicleHandler(store, newFakeCustomerStore())

	c, rec := newTestContext(http.MethodGet, "/api/vehicles?customer_id=c1", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var vehicles []model.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vehicles))
	assert.Len(t, vehicles, 2)
	for _, v := range vehicles {
		assert.Equal(t, "c1", v.CustomerID)
	}
}

func TestVehicleUpdatePreservesIDAndCreatedAt(t *testing.T) {
	store := newFakeVehicleStore()
	v := seedVehicle(t, store, "v1", "c1")
	h := NewVehicleHandler(store, newFakeCustomerStore())

	c, rec := newTestContext(http.MethodPut, "/api/vehicles/v1",
		`{"customer_id":"c1","marke":"VW","modell":"Polo","chassis_nr":"WVWZZZv1","km_stand":"42000"}`)
	c.SetParamNames("id")
	c.SetParamValues("v1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "v1", got.ID)
	assert.Equal(t, "Polo", got.Modell)
	assert.Equal(t, "42000", got.KmStand)
	// Full replace: the colour was not sent, so it is gone.
	assert.Empty(t, got.Farbe)
	assert.Equal(t, v.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestVehicleUpdateRequiredFields(t *testing.T) {
	store := newFakeVehicleStore()
	seedVehicle(t, store, "v1", "c1")
	h := NewVehicleHandler(store, newFakeCustomerStore())

	// A PUT must not blank out fields a POST would reject.
	c, rec := newTestContext(http.MethodPut, "/api/vehicles/v1",
		`{"customer_id":"c1","marke":"VW","modell":"Golf","chassis_nr":""}`)
	c.SetParamNames("id")
	c.SetParamValues("v1")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	v, err := store.GetByID(t.Context(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "WVWZZZv1", v.ChassisNr)
}

func TestVehicleDeleteThenGet(t *testing.T) {
	store := newFakeVehicleStore()
	seedVehicle(t, store, "v1", "c1")
	h := NewVehicleHandler(store, newFakeCustomerStore())

	c, rec := newTestContext(http.MethodDelete, "/api/vehicles/v1", "")
	c.SetParamNames("id")
	c.SetParamValues("v1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/api/vehicles/v1", "")
	c.SetParamNames("id")
	c.SetParamValues("v1")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVehicleUpdateNotFound(t *testing.T) {
	h := NewVehicleHandler(newFakeVehicleStore(), newFakeCustomerStore())

	c, rec := newTestContext(http.MethodPut, "/api/vehicles/ghost",
		`{"customer_id":"c1","marke":"VW","modell":"Golf","chassis_nr":"X"}`)
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
