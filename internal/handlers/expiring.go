package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/models"
	"github.com/farmacia-chavarria/backend/internal/util"
)

// ExpiringProductHandler manages the independently written table of
// soon-to-expire products. Nothing syncs it from the products table.
type ExpiringProductHandler struct {
	DB *gorm.DB
}

func (h *ExpiringProductHandler) GetExpiringProducts(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	var total int64
	if err := h.DB.Model(&models.ExpiringProduct{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.ExpiringProduct
	if err := h.DB.Order("expiration_date ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("expiring_products", items, total, page, limit))
}

func (h *ExpiringProductHandler) GetExpiringProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var record models.ExpiringProduct
	if err := h.DB.First(&record, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "expiring product record does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, record)
}

func (h *ExpiringProductHandler) CreateExpiringProduct(c echo.Context) error {
	var req models.ExpiringProduct
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product name cannot be empty")
	}

	if err := h.DB.Create(&req).Error; err != nil {
		// product_id is the primary key, a second insert for the same
		// product is a duplicate.
		var n int64
		if probeErr := h.DB.Model(&models.ExpiringProduct{}).Where("product_id = ?", req.ProductID).Count(&n).Error; probeErr == nil && n > 0 {
			return echo.NewHTTPError(http.StatusConflict, "expiring product record already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, req)
}

func (h *ExpiringProductHandler) PutExpiringProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.ExpiringProduct
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id != req.ProductID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.ExpiringProduct{}).Where("product_id = ?", id).
		Select("name", "expiration_date").
		Updates(models.ExpiringProduct{Name: req.Name, ExpirationDate: req.ExpirationDate})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.ExpiringProduct{}, "product_id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ExpiringProductHandler) DeleteExpiringProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Where("product_id = ?", id).Delete(&models.ExpiringProduct{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "expiring product record does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
