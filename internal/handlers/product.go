package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/logging"
	"github.com/farmacia-chavarria/backend/internal/models"
	"github.com/farmacia-chavarria/backend/internal/mykafka"
	"github.com/farmacia-chavarria/backend/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer EventPublisher
}

// ProductDetail is the get-by-id view joined with the category and
// laboratory names.
type ProductDetail struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	CategoryID        int       `json:"category_id"`
	LaboratoryID      int       `json:"laboratory_id"`
	CategoryName      string    `json:"category_name"`
	LaboratoryName    string    `json:"laboratory_name"`
	Price             float64   `json:"price"`
	Stock             int       `json:"stock"`
	MinimumStock      int       `json:"minimum_stock"`
	SideEffects       string    `json:"side_effects"`
	UsageInstructions string    `json:"usage_instructions"`
	ExpirationDate    time.Time `json:"expiration_date"`
}

// pagedProducts runs the count and the page fetch as two separate queries,
// the filter is applied to each one.
func (h *ProductHandler) pagedProducts(c echo.Context, filter func(*gorm.DB) *gorm.DB, order string, page, offset, limit int) error {
	var total int64
	if err := filter(h.DB.Model(&models.Product{})).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := filter(h.DB.Model(&models.Product{})).Order(order).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("products", items, total, page, limit))
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)
	all := func(q *gorm.DB) *gorm.DB { return q }
	return h.pagedProducts(c, all, "id ASC", page, offset, limit)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var detail ProductDetail
	err = h.DB.Table("products").
		Select("products.id, products.name, products.category_id, products.laboratory_id, "+
			"categories.name AS category_name, laboratories.name AS laboratory_name, "+
			"products.price, products.stock, products.minimum_stock, "+
			"products.side_effects, products.usage_instructions, products.expiration_date").
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN laboratories ON laboratories.id = products.laboratory_id").
		Where("products.id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *ProductHandler) GetProductsByName(c echo.Context) error {
	name := c.Param("name")
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	byName := func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	return h.pagedProducts(c, byName, "name ASC", page, offset, limit)
}

func (h *ProductHandler) GetProductsByCategory(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category id is not an integer")
	}
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	byCategory := func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID)
	}
	return h.pagedProducts(c, byCategory, "id ASC", page, offset, limit)
}

// Both predicates apply together.
func (h *ProductHandler) GetProductsByCategoryAndName(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category id is not an integer")
	}
	name := c.Param("name")
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	both := func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID).
			Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	return h.pagedProducts(c, both, "name ASC", page, offset, limit)
}

func (h *ProductHandler) GetLowStockProducts(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	scarce := func(q *gorm.DB) *gorm.DB {
		return q.Where("stock <= minimum_stock")
	}
	return h.pagedProducts(c, scarce, "id ASC", page, offset, limit)
}

func (h *ProductHandler) GetExpiringSoonProducts(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	// the window starts at midnight so a product expiring today still counts
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	until := today.AddDate(0, 3, 0)

	expiring := func(q *gorm.DB) *gorm.DB {
		return q.Where("expiration_date >= ? AND expiration_date <= ?", today, until)
	}
	return h.pagedProducts(c, expiring, "expiration_date ASC", page, offset, limit)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req models.Product
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product name cannot be empty")
	}

	if err := h.DB.Create(&req).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("create product failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, mykafka.TopicProductEvents, fmt.Sprint(req.ID), map[string]any{
		"type":      "product_created",
		"productID": req.ID,
		"name":      req.Name,
	})

	return c.JSON(http.StatusCreated, req)
}

func (h *ProductHandler) PutProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.Product
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product name cannot be empty")
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.Product{}).Where("id = ?", id).
		Select("name", "category_id", "laboratory_id", "price", "stock",
			"minimum_stock", "side_effects", "usage_instructions", "expiration_date").
		Updates(req)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.Product{}, "id", id)
	}

	publish(c, h.Producer, mykafka.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      "product_updated",
		"productID": id,
		"name":      req.Name,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "product does not exist")
	}

	publish(c, h.Producer, mykafka.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
