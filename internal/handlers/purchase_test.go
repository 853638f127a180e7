package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmacia-chavarria/backend/internal/models"
)

func TestGetPurchasesBySupplier(t *testing.T) {
	env := newTestEnv(t)
	h := &PurchaseHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.Purchase{SupplierID: 1, PurchaseDate: day(2025, time.February, 10), Total: 300}).Error)
	require.NoError(t, env.DB.Create(&models.Purchase{SupplierID: 1, PurchaseDate: day(2025, time.January, 5), Total: 200}).Error)
	require.NoError(t, env.DB.Create(&models.Purchase{SupplierID: 2, PurchaseDate: day(2025, time.January, 8), Total: 999}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/purchases/supplier/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetPurchasesBySupplier(c))

	var items []models.Purchase
	meta := decodePaged(t, rec, "purchases", &items)
	require.EqualValues(t, 2, meta.TotalItems)
	require.Equal(t, 200.0, items[0].Total)
	require.Equal(t, 300.0, items[1].Total)
}

func TestPutPurchase(t *testing.T) {
	env := newTestEnv(t)
	h := &PurchaseHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.Purchase{SupplierID: 1, PurchaseDate: day(2025, time.January, 5), Total: 200}).Error)

	rec, c := env.doJSONRequest(http.MethodPut, "/purchases/1", models.Purchase{ID: 1, SupplierID: 2, PurchaseDate: day(2025, time.January, 6), Total: 250})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.PutPurchase(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var stored models.Purchase
	require.NoError(t, env.DB.First(&stored, 1).Error)
	require.Equal(t, 2, stored.SupplierID)
	require.Equal(t, 250.0, stored.Total)
}

func TestPurchaseLinesByPurchase(t *testing.T) {
	env := newTestEnv(t)
	h := &PurchaseLineHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.PurchaseLine{PurchaseID: 1, ProductID: 1, Quantity: 4, UnitPrice: 2}).Error)
	require.NoError(t, env.DB.Create(&models.PurchaseLine{PurchaseID: 2, ProductID: 1, Quantity: 9, UnitPrice: 2}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/purchase-lines/purchase/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetPurchaseLinesByPurchase(c))

	var items []models.PurchaseLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, 8.0, items[0].Subtotal)
}
