package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/models"
)

type DashboardReport struct {
	MonthlyRevenue     float64 `json:"monthly_revenue"`
	MonthlyInvoices    int64   `json:"monthly_invoices"`
	MonthlyUnitsSold   int64   `json:"monthly_units_sold"`
	LowStockCount      int64   `json:"low_stock_count"`
	InStockCount       int64   `json:"in_stock_count"`
	TotalProducts      int64   `json:"total_products"`
	TotalCategories    int64   `json:"total_categories"`
	TotalSuppliers     int64   `json:"total_suppliers"`
	TotalUsers         int64   `json:"total_users"`
	BestSellingProduct string  `json:"best_selling_product"`
	InventoryHealthPct float64 `json:"inventory_health_pct"`
	InventoryHealth    string  `json:"inventory_health"`
}

const healthyStockThreshold = 30.0

type DashboardHandler struct {
	DB *gorm.DB
	// Rand breaks best-seller ties, injected so tests can pin the pick.
	// A nil Rand is seeded on first use.
	Rand *rand.Rand
	// Now is overridable in tests, nil means time.Now.
	Now func() time.Time
}

func (h *DashboardHandler) clock() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *DashboardHandler) pick(n int) int {
	if h.Rand == nil {
		h.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return h.Rand.Intn(n)
}

func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	now := h.clock()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	report := DashboardReport{}

	if err := h.DB.Model(&models.Invoice{}).
		Where("sale_date >= ? AND sale_date < ?", monthStart, monthEnd).
		Select("COALESCE(SUM(total), 0)").
		Scan(&report.MonthlyRevenue).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Model(&models.Invoice{}).
		Where("sale_date >= ? AND sale_date < ?", monthStart, monthEnd).
		Count(&report.MonthlyInvoices).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Table("invoice_lines").
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoices.sale_date >= ? AND invoices.sale_date < ?", monthStart, monthEnd).
		Select("COALESCE(SUM(invoice_lines.quantity), 0)").
		Scan(&report.MonthlyUnitsSold).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Model(&models.Product{}).Where("stock <= minimum_stock").Count(&report.LowStockCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Product{}).Where("stock > 0").Count(&report.InStockCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Product{}).Count(&report.TotalProducts).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Category{}).Count(&report.TotalCategories).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Supplier{}).Count(&report.TotalSuppliers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.User{}).Count(&report.TotalUsers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	best, err := h.bestSellerOfMonth(monthStart, monthEnd)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	report.BestSellingProduct = best

	// An empty catalog counts as 0%, never a division by zero.
	if report.TotalProducts > 0 {
		report.InventoryHealthPct = float64(report.InStockCount) / float64(report.TotalProducts) * 100
	}
	if report.InventoryHealthPct >= healthyStockThreshold {
		report.InventoryHealth = "healthy"
	} else {
		report.InventoryHealth = "needs attention"
	}

	return c.JSON(http.StatusOK, report)
}

// bestSellerOfMonth picks the product with the highest unit count and
// resolves ties uniformly at random, every tied product keeps an equal
// chance of being shown.
func (h *DashboardHandler) bestSellerOfMonth(monthStart, monthEnd time.Time) (string, error) {
	type productUnits struct {
		ProductID int
		Units     int64
	}

	var rows []productUnits
	err := h.DB.Table("invoice_lines").
		Select("invoice_lines.product_id AS product_id, SUM(invoice_lines.quantity) AS units").
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoices.sale_date >= ? AND invoices.sale_date < ?", monthStart, monthEnd).
		Group("invoice_lines.product_id").
		Scan(&rows).Error
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	var max int64
	for _, row := range rows {
		if row.Units > max {
			max = row.Units
		}
	}

	var tied []int
	for _, row := range rows {
		if row.Units == max {
			tied = append(tied, row.ProductID)
		}
	}

	winner := tied[h.pick(len(tied))]

	var name string
	if err := h.DB.Model(&models.Product{}).Where("id = ?", winner).Select("name").Scan(&name).Error; err != nil {
		return "", err
	}
	return name, nil
}
