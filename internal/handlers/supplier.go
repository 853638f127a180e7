package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/models"
	"github.com/farmacia-chavarria/backend/internal/util"
)

type SupplierHandler struct {
	DB *gorm.DB
}

func (h *SupplierHandler) GetSuppliers(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.SupplierPageSize)

	var total int64
	if err := h.DB.Model(&models.Supplier{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Supplier
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("suppliers", items, total, page, limit))
}

func (h *SupplierHandler) GetSupplier(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var supplier models.Supplier
	if err := h.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "supplier does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) SearchSuppliers(c echo.Context) error {
	name := c.QueryParam("name")
	page, _, offset, limit := pageParams(c, util.SupplierPageSize)

	pattern := "%" + strings.ToLower(name) + "%"

	var total int64
	if err := h.DB.Model(&models.Supplier{}).Where("LOWER(name) LIKE ?", pattern).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Supplier
	if err := h.DB.Where("LOWER(name) LIKE ?", pattern).Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("suppliers", items, total, page, limit))
}

func (h *SupplierHandler) CreateSupplier(c echo.Context) error {
	var req models.Supplier
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "supplier name cannot be empty")
	}

	supplier := models.Supplier{ID: req.ID, Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := h.DB.Create(&supplier).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) PutSupplier(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.Supplier
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "supplier name cannot be empty")
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.Supplier{}).Where("id = ?", id).
		Select("name", "phone", "address").
		Updates(models.Supplier{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.Supplier{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SupplierHandler) DeleteSupplier(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "supplier does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
