package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmacia-chavarria/backend/internal/models"
)

func TestCreateMovement(t *testing.T) {
	env := newTestEnv(t)
	pub := &stubPublisher{}
	h := &InventoryHandler{DB: env.DB, Producer: pub}

	rec, c := env.doJSONRequest(http.MethodPost, "/inventory", models.InventoryMovement{
		ProductID: 1, MovementType: "out", Quantity: 3,
		MovementDate: day(2025, time.March, 5), UserID: 1,
	})
	require.NoError(t, h.CreateMovement(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, pub.events, 1)
	require.Equal(t, "inventory_events", pub.events[0].Topic)
	require.Equal(t, "stock_movement", pub.events[0].Event["type"])
	require.Equal(t, "out", pub.events[0].Event["direction"])
}

func TestCreateMovementMissingType(t *testing.T) {
	env := newTestEnv(t)
	h := &InventoryHandler{DB: env.DB}

	_, c := env.doJSONRequest(http.MethodPost, "/inventory", models.InventoryMovement{ProductID: 1, Quantity: 3})
	require.Equal(t, http.StatusBadRequest, httpCode(t, h.CreateMovement(c)))
}

func TestGetMovementsByProduct(t *testing.T) {
	env := newTestEnv(t)
	h := &InventoryHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.InventoryMovement{ProductID: 1, MovementType: "in", Quantity: 10, MovementDate: day(2025, time.March, 2)}).Error)
	require.NoError(t, env.DB.Create(&models.InventoryMovement{ProductID: 1, MovementType: "out", Quantity: 4, MovementDate: day(2025, time.March, 1)}).Error)
	require.NoError(t, env.DB.Create(&models.InventoryMovement{ProductID: 2, MovementType: "in", Quantity: 7, MovementDate: day(2025, time.March, 3)}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/inventory/product/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetMovementsByProduct(c))

	var items []models.InventoryMovement
	meta := decodePaged(t, rec, "movements", &items)
	require.EqualValues(t, 2, meta.TotalItems)
	require.Equal(t, "out", items[0].MovementType)
	require.Equal(t, "in", items[1].MovementType)
}
