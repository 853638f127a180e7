package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmacia-chavarria/backend/internal/models"
)

func TestGetInvoicesByRange(t *testing.T) {
	env := newTestEnv(t)
	h := &InvoiceHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.January, 10), Total: 100, UserID: 1}).Error)
	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.January, 20), Total: 150, UserID: 2}).Error)
	require.NoError(t, env.DB.Create(&models.Invoice{SaleDate: day(2025, time.March, 1), Total: 300, UserID: 1}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/invoices/range?start=2025-01-01&end=2025-01-31", nil)
	require.NoError(t, h.GetInvoicesByRange(c))

	var items []models.Invoice
	meta := decodePaged(t, rec, "invoices", &items)
	require.EqualValues(t, 2, meta.TotalItems)
	require.Equal(t, 100.0, items[0].Total)
	require.Equal(t, 150.0, items[1].Total)

	rec, c = env.doJSONRequest(http.MethodGet, "/invoices/range?start=2025-01-01&end=2025-01-31&user_id=2", nil)
	require.NoError(t, h.GetInvoicesByRange(c))
	items = nil
	meta = decodePaged(t, rec, "invoices", &items)
	require.EqualValues(t, 1, meta.TotalItems)
	require.Equal(t, 150.0, items[0].Total)
}

func TestGetInvoicesByRangeMissingBounds(t *testing.T) {
	env := newTestEnv(t)
	h := &InvoiceHandler{DB: env.DB}

	for _, q := range []string{"", "?start=2025-01-01", "?end=2025-01-31", "?start=bad&end=2025-01-31"} {
		_, c := env.doJSONRequest(http.MethodGet, "/invoices/range"+q, nil)
		require.Equal(t, http.StatusBadRequest, httpCode(t, h.GetInvoicesByRange(c)))
	}
}

func TestCreateInvoicePublishesSale(t *testing.T) {
	env := newTestEnv(t)
	pub := &stubPublisher{}
	h := &InvoiceHandler{DB: env.DB, Producer: pub}

	rec, c := env.doJSONRequest(http.MethodPost, "/invoices", models.Invoice{SaleDate: day(2025, time.March, 5), Total: 190, UserID: 1})
	require.NoError(t, h.CreateInvoice(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, pub.events, 1)
	require.Equal(t, "sale_events", pub.events[0].Topic)
	require.Equal(t, "sale_recorded", pub.events[0].Event["type"])
}

func TestInvoiceLineSubtotal(t *testing.T) {
	env := newTestEnv(t)
	h := &InvoiceLineHandler{DB: env.DB}

	rec, c := env.doJSONRequest(http.MethodPost, "/invoice-lines", models.InvoiceLine{InvoiceID: 1, ProductID: 1, Quantity: 3, UnitPrice: 2.5})
	require.NoError(t, h.CreateInvoiceLine(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.InvoiceLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, 7.5, created.Subtotal)

	// the subtotal is recomputed on read, never stored
	rec, c = env.doJSONRequest(http.MethodGet, "/invoice-lines/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetInvoiceLine(c))

	var fetched models.InvoiceLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, 7.5, fetched.Subtotal)
}

func TestGetInvoiceLinesByInvoice(t *testing.T) {
	env := newTestEnv(t)
	h := &InvoiceLineHandler{DB: env.DB}

	require.NoError(t, env.DB.Create(&models.InvoiceLine{InvoiceID: 1, ProductID: 1, Quantity: 2, UnitPrice: 5}).Error)
	require.NoError(t, env.DB.Create(&models.InvoiceLine{InvoiceID: 1, ProductID: 2, Quantity: 1, UnitPrice: 3}).Error)
	require.NoError(t, env.DB.Create(&models.InvoiceLine{InvoiceID: 2, ProductID: 1, Quantity: 9, UnitPrice: 5}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/invoice-lines/invoice/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetInvoiceLinesByInvoice(c))

	var items []models.InvoiceLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, 10.0, items[0].Subtotal)
	require.Equal(t, 3.0, items[1].Subtotal)
}
