package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/models"
	"github.com/farmacia-chavarria/backend/internal/mykafka"
	"github.com/farmacia-chavarria/backend/internal/util"
)

type InventoryHandler struct {
	DB       *gorm.DB
	Producer EventPublisher
}

func (h *InventoryHandler) GetMovements(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	var total int64
	if err := h.DB.Model(&models.InventoryMovement{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.InventoryMovement
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("movements", items, total, page, limit))
}

func (h *InventoryHandler) GetMovementsByProduct(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product id is not an integer")
	}
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	var total int64
	if err := h.DB.Model(&models.InventoryMovement{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.InventoryMovement
	if err := h.DB.Where("product_id = ?", productID).Order("movement_date ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("movements", items, total, page, limit))
}

func (h *InventoryHandler) GetMovement(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var movement models.InventoryMovement
	if err := h.DB.First(&movement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "inventory movement does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, movement)
}

func (h *InventoryHandler) CreateMovement(c echo.Context) error {
	var req models.InventoryMovement
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.MovementType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "movement type cannot be empty")
	}

	if err := h.DB.Create(&req).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, mykafka.TopicInventoryEvents, fmt.Sprint(req.ProductID), map[string]any{
		"type":       "stock_movement",
		"movementID": req.ID,
		"productID":  req.ProductID,
		"direction":  req.MovementType,
		"quantity":   req.Quantity,
	})

	return c.JSON(http.StatusCreated, req)
}

func (h *InventoryHandler) PutMovement(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.InventoryMovement
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.InventoryMovement{}).Where("id = ?", id).
		Select("product_id", "movement_type", "quantity", "movement_date", "user_id").
		Updates(req)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.InventoryMovement{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHandler) DeleteMovement(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.InventoryMovement{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "inventory movement does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
