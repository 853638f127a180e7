package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/models"
	"github.com/farmacia-chavarria/backend/internal/util"
)

type RevenueItem struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type LaboratorySales struct {
	LaboratoryID int     `json:"laboratory_id"`
	Name         string  `json:"name"`
	TotalSales   float64 `json:"total_sales"`
}

type CategorySales struct {
	CategoryID int     `json:"category_id"`
	Name       string  `json:"name"`
	TotalSales float64 `json:"total_sales"`
}

type ProductSales struct {
	ProductID  int     `json:"product_id"`
	Name       string  `json:"name"`
	TotalSales float64 `json:"total_sales"`
}

const (
	topLaboratories = 10
	topCategories   = 10
	topProducts     = 15
)

type ReportsHandler struct {
	DB *gorm.DB
}

// rangeAndUser reads the common report filters. The date range only applies
// when both bounds are present, a user id of 0 means no user filter.
func rangeAndUser(c echo.Context) (start, end time.Time, ranged bool, userID int) {
	var okStart, okEnd bool
	start, okStart = parseDate(c.QueryParam("start"))
	end, okEnd = parseDate(c.QueryParam("end"))
	userID = util.ParseIntDefault(c.QueryParam("user_id"), 0)
	return start, end, okStart && okEnd, userID
}

// GetMonthlyRevenue buckets qualifying invoices by calendar month of the
// sale date and sums their stored totals. Grouping happens here rather than
// in SQL so the month arithmetic does not depend on the store's date
// functions.
func (h *ReportsHandler) GetMonthlyRevenue(c echo.Context) error {
	start, end, ranged, userID := rangeAndUser(c)

	query := h.DB.Model(&models.Invoice{})
	if ranged {
		query = query.Where("sale_date >= ? AND sale_date <= ?", start, end)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	buckets := make(map[time.Time]float64)
	for _, inv := range invoices {
		month := time.Date(inv.SaleDate.Year(), inv.SaleDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month] += inv.Total
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	items := make([]RevenueItem, 0, len(months))
	for _, month := range months {
		items = append(items, RevenueItem{
			Date:    month.Format("Jan 2006"),
			Revenue: buckets[month],
		})
	}

	return c.JSON(http.StatusOK, items)
}

// Rankings sum quantity * unit_price per line, never the invoice's stored
// total.
func (h *ReportsHandler) GetTopLaboratories(c echo.Context) error {
	start, end, ranged, userID := rangeAndUser(c)

	query := h.DB.Table("invoices").
		Select("laboratories.id AS laboratory_id, laboratories.name AS name, " +
			"SUM(invoice_lines.quantity * invoice_lines.unit_price) AS total_sales").
		Joins("JOIN invoice_lines ON invoice_lines.invoice_id = invoices.id").
		Joins("JOIN products ON products.id = invoice_lines.product_id").
		Joins("JOIN laboratories ON laboratories.id = products.laboratory_id")
	if ranged {
		query = query.Where("invoices.sale_date >= ? AND invoices.sale_date <= ?", start, end)
	}
	if userID != 0 {
		query = query.Where("invoices.user_id = ?", userID)
	}

	var items []LaboratorySales
	if err := query.Group("laboratories.id, laboratories.name").
		Order("total_sales DESC").
		Limit(topLaboratories).
		Scan(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ReportsHandler) GetTopCategories(c echo.Context) error {
	start, end, ranged, userID := rangeAndUser(c)

	query := h.DB.Table("invoices").
		Select("categories.id AS category_id, categories.name AS name, " +
			"SUM(invoice_lines.quantity * invoice_lines.unit_price) AS total_sales").
		Joins("JOIN invoice_lines ON invoice_lines.invoice_id = invoices.id").
		Joins("JOIN products ON products.id = invoice_lines.product_id").
		Joins("JOIN categories ON categories.id = products.category_id")
	if ranged {
		query = query.Where("invoices.sale_date >= ? AND invoices.sale_date <= ?", start, end)
	}
	if userID != 0 {
		query = query.Where("invoices.user_id = ?", userID)
	}

	var items []CategorySales
	if err := query.Group("categories.id, categories.name").
		Order("total_sales DESC").
		Limit(topCategories).
		Scan(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ReportsHandler) GetTopProducts(c echo.Context) error {
	start, end, ranged, userID := rangeAndUser(c)

	query := h.DB.Table("invoices").
		Select("products.id AS product_id, products.name AS name, " +
			"SUM(invoice_lines.quantity * invoice_lines.unit_price) AS total_sales").
		Joins("JOIN invoice_lines ON invoice_lines.invoice_id = invoices.id").
		Joins("JOIN products ON products.id = invoice_lines.product_id")
	if ranged {
		query = query.Where("invoices.sale_date >= ? AND invoices.sale_date <= ?", start, end)
	}
	if userID != 0 {
		query = query.Where("invoices.user_id = ?", userID)
	}

	var items []ProductSales
	if err := query.Group("products.id, products.name").
		Order("total_sales DESC").
		Limit(topProducts).
		Scan(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}
