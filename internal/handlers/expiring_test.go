package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmacia-chavarria/backend/internal/models"
)

func TestExpiringProductsOrderedByDate(t *testing.T) {
	env := newTestEnv(t)
	h := &ExpiringProductHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.ExpiringProduct{ProductID: 1, Name: "Jarabe", ExpirationDate: day(2025, time.June, 1)}).Error)
	require.NoError(t, env.DB.Create(&models.ExpiringProduct{ProductID: 2, Name: "Crema", ExpirationDate: day(2025, time.April, 1)}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/expiring-products", nil)
	require.NoError(t, h.GetExpiringProducts(c))

	var items []models.ExpiringProduct
	meta := decodePaged(t, rec, "expiring_products", &items)
	require.EqualValues(t, 2, meta.TotalItems)
	require.Equal(t, "Crema", items[0].Name)
	require.Equal(t, "Jarabe", items[1].Name)
}

func TestCreateExpiringProductDuplicate(t *testing.T) {
	env := newTestEnv(t)
	h := &ExpiringProductHandler{DB: env.DB}

	rec, c := env.doJSONRequest(http.MethodPost, "/expiring-products", models.ExpiringProduct{ProductID: 1, Name: "Jarabe", ExpirationDate: day(2025, time.June, 1)})
	require.NoError(t, h.CreateExpiringProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, c = env.doJSONRequest(http.MethodPost, "/expiring-products", models.ExpiringProduct{ProductID: 1, Name: "Jarabe", ExpirationDate: day(2025, time.July, 1)})
	err := h.CreateExpiringProduct(c)
	require.Equal(t, http.StatusConflict, httpCode(t, err))
	require.Contains(t, err.Error(), "already exists")
}

func TestPutExpiringProduct(t *testing.T) {
	env := newTestEnv(t)
	h := &ExpiringProductHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.ExpiringProduct{ProductID: 3, Name: "Jarabe", ExpirationDate: day(2025, time.June, 1)}).Error)

	rec, c := env.doJSONRequest(http.MethodPut, "/expiring-products/3", models.ExpiringProduct{ProductID: 3, Name: "Jarabe 120ml", ExpirationDate: day(2025, time.August, 1)})
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, h.PutExpiringProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var stored models.ExpiringProduct
	require.NoError(t, env.DB.First(&stored, "product_id = ?", 3).Error)
	require.Equal(t, "Jarabe 120ml", stored.Name)
	require.True(t, stored.ExpirationDate.Equal(day(2025, time.August, 1)))
}

func TestDeleteExpiringProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	h := &ExpiringProductHandler{DB: env.DB}

	_, c := env.doJSONRequest(http.MethodDelete, "/expiring-products/9", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.Equal(t, http.StatusNotFound, httpCode(t, h.DeleteExpiringProduct(c)))
}
