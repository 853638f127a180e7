package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmacia-chavarria/backend/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetMonthlyRevenue(t *testing.T) {
	env := newTestEnv(t)
	h := &ReportsHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.January, 15), Total: 100, UserID: 1}).Error)
	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.January, 20), Total: 150, UserID: 1}).Error)
	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.February, 3), Total: 200, UserID: 2}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/reports/monthly-revenue", nil)
	require.NoError(t, h.GetMonthlyRevenue(c))

	var items []RevenueItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []RevenueItem{
		{Date: "Jan 2025", Revenue: 250},
		{Date: "Feb 2025", Revenue: 200},
	}, items)
}

func TestGetMonthlyRevenueFilters(t *testing.T) {
	env := newTestEnv(t)
	h := &ReportsHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.January, 15), Total: 100, UserID: 1}).Error)
	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.February, 3), Total: 200, UserID: 2}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/reports/monthly-revenue?user_id=2", nil)
	require.NoError(t, h.GetMonthlyRevenue(c))

	var items []RevenueItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []RevenueItem{{Date: "Feb 2025", Revenue: 200}}, items)

	// the range only applies when both bounds are given
	rec, c = env.doJSONRequest(http.MethodGet, "/reports/monthly-revenue?start=2025-02-01", nil)
	require.NoError(t, h.GetMonthlyRevenue(c))
	items = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	rec, c = env.doJSONRequest(http.MethodGet, "/reports/monthly-revenue?start=2025-02-01&end=2025-02-28", nil)
	require.NoError(t, h.GetMonthlyRevenue(c))
	items = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []RevenueItem{{Date: "Feb 2025", Revenue: 200}}, items)
}

// seedSales builds two laboratories with one product each and sells 10 units
// at 10 for the first product and 9 units at 10 for the second.
func seedSales(env *testEnv) {
	require.NoError(env.T, env.DB.Create(&models.Category{Name: "Antibioticos"}).Error)
	require.NoError(env.T, env.DB.Create(&models.Category{Name: "Analgesicos"}).Error)
	require.NoError(env.T, env.DB.Create(&models.Laboratory{Name: "Bayer"}).Error)
	require.NoError(env.T, env.DB.Create(&models.Laboratory{Name: "Pfizer"}).Error)
	require.NoError(env.T, env.DB.Create(&models.Product{Name: "Aspirina", CategoryID: 1, LaboratoryID: 1, Price: 10}).Error)
	require.NoError(env.T, env.DB.Create(&models.Product{Name: "Ibuprofeno", CategoryID: 2, LaboratoryID: 2, Price: 10}).Error)

	require.NoError(env.T, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.March, 5), Total: 190, UserID: 1}).Error)
	require.NoError(env.T, env.DB.Create(&models.InvoiceLine{InvoiceID: 1, ProductID: 1, Quantity: 10, UnitPrice: 10}).Error)
	require.NoError(env.T, env.DB.Create(&models.InvoiceLine{InvoiceID: 1, ProductID: 2, Quantity: 9, UnitPrice: 10}).Error)
}

func TestGetTopLaboratories(t *testing.T) {
	env := newTestEnv(t)
	h := &ReportsHandler{DB: env.DB}
	seedSales(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/reports/top-laboratories", nil)
	require.NoError(t, h.GetTopLaboratories(c))

	var items []LaboratorySales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []LaboratorySales{
		{LaboratoryID: 1, Name: "Bayer", TotalSales: 100},
		{LaboratoryID: 2, Name: "Pfizer", TotalSales: 90},
	}, items)
}

func TestGetTopCategories(t *testing.T) {
	env := newTestEnv(t)
	h := &ReportsHandler{DB: env.DB}
	seedSales(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/reports/top-categories", nil)
	require.NoError(t, h.GetTopCategories(c))

	var items []CategorySales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []CategorySales{
		{CategoryID: 1, Name: "Antibioticos", TotalSales: 100},
		{CategoryID: 2, Name: "Analgesicos", TotalSales: 90},
	}, items)
}

func TestGetTopProducts(t *testing.T) {
	env := newTestEnv(t)
	h := &ReportsHandler{DB: env.DB}
	seedSales(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/reports/top-products", nil)
	require.NoError(t, h.GetTopProducts(c))

	var items []ProductSales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []ProductSales{
		{ProductID: 1, Name: "Aspirina", TotalSales: 100},
		{ProductID: 2, Name: "Ibuprofeno", TotalSales: 90},
	}, items)
}

func TestGetTopProductsUserFilter(t *testing.T) {
	env := newTestEnv(t)
	h := &ReportsHandler{DB: env.DB}
	seedSales(env)

	// another user's sale must be excluded when user_id is set
	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.March, 6), Total: 500, UserID: 2}).Error)
	require.NoError(t, env.DB.Create(&models.InvoiceLine{InvoiceID: 2, ProductID: 2, Quantity: 50, UnitPrice: 10}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/reports/top-products?user_id=1", nil)
	require.NoError(t, h.GetTopProducts(c))

	var items []ProductSales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Equal(t, []ProductSales{
		{ProductID: 1, Name: "Aspirina", TotalSales: 100},
		{ProductID: 2, Name: "Ibuprofeno", TotalSales: 90},
	}, items)
}
