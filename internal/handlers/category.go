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

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	var total int64
	if err := h.DB.Model(&models.Category{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Category
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("categories", items, total, page, limit))
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetCategoriesByName(c echo.Context) error {
	name := c.Param("name")
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	pattern := "%" + strings.ToLower(name) + "%"

	var total int64
	if err := h.DB.Model(&models.Category{}).Where("LOWER(name) LIKE ?", pattern).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Category
	if err := h.DB.Where("LOWER(name) LIKE ?", pattern).Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("categories", items, total, page, limit))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.Category
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name cannot be empty")
	}

	category := models.Category{ID: req.ID, Name: req.Name}
	if err := h.DB.Create(&category).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) PutCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.Category
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name cannot be empty")
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.Category{}).Where("id = ?", id).Select("name").Updates(models.Category{Name: req.Name})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.Category{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "category does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
