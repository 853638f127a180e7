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

type InvoiceLineHandler struct {
	DB *gorm.DB
}

func (h *InvoiceLineHandler) GetInvoiceLines(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	var total int64
	if err := h.DB.Model(&models.InvoiceLine{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.InvoiceLine
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("invoice_lines", items, total, page, limit))
}

func (h *InvoiceLineHandler) GetInvoiceLinesByInvoice(c echo.Context) error {
	invoiceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invoice id is not an integer")
	}

	var items []models.InvoiceLine
	if err := h.DB.Where("invoice_id = ?", invoiceID).Order("id ASC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}

func (h *InvoiceLineHandler) GetInvoiceLine(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var line models.InvoiceLine
	if err := h.DB.First(&line, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice line does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, line)
}

func (h *InvoiceLineHandler) CreateInvoiceLine(c echo.Context) error {
	var req models.InvoiceLine
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.DB.Create(&req).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	req.Subtotal = float64(req.Quantity) * req.UnitPrice

	return c.JSON(http.StatusCreated, req)
}

func (h *InvoiceLineHandler) PutInvoiceLine(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.InvoiceLine
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.InvoiceLine{}).Where("id = ?", id).
		Select("invoice_id", "product_id", "quantity", "unit_price").
		Updates(req)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.InvoiceLine{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *InvoiceLineHandler) DeleteInvoiceLine(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.InvoiceLine{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "invoice line does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
