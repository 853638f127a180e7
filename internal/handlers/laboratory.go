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

type LaboratoryHandler struct {
	DB *gorm.DB
}

func (h *LaboratoryHandler) GetLaboratories(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.LaboratoryPageSize)

	var total int64
	if err := h.DB.Model(&models.Laboratory{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Laboratory
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("laboratories", items, total, page, limit))
}

func (h *LaboratoryHandler) GetLaboratory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var laboratory models.Laboratory
	if err := h.DB.First(&laboratory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "laboratory does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, laboratory)
}

func (h *LaboratoryHandler) GetLaboratoriesByName(c echo.Context) error {
	name := c.Param("name")
	page, _, offset, limit := pageParams(c, util.LaboratoryPageSize)

	pattern := "%" + strings.ToLower(name) + "%"

	var total int64
	if err := h.DB.Model(&models.Laboratory{}).Where("LOWER(name) LIKE ?", pattern).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Laboratory
	if err := h.DB.Where("LOWER(name) LIKE ?", pattern).Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("laboratories", items, total, page, limit))
}

func (h *LaboratoryHandler) CreateLaboratory(c echo.Context) error {
	var req models.Laboratory
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "laboratory name cannot be empty")
	}

	laboratory := models.Laboratory{ID: req.ID, Name: req.Name}
	if err := h.DB.Create(&laboratory).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, laboratory)
}

func (h *LaboratoryHandler) PutLaboratory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.Laboratory
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "laboratory name cannot be empty")
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.Laboratory{}).Where("id = ?", id).Select("name").Updates(models.Laboratory{Name: req.Name})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.Laboratory{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *LaboratoryHandler) DeleteLaboratory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.Laboratory{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "laboratory does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
