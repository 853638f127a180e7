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

type InvoiceHandler struct {
	DB       *gorm.DB
	Producer EventPublisher
}

func (h *InvoiceHandler) GetInvoices(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	var total int64
	if err := h.DB.Model(&models.Invoice{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Invoice
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("invoices", items, total, page, limit))
}

// GetInvoicesByRange lists invoices with sale_date inside [start, end],
// optionally narrowed to one user. A user id of 0 means no user filter.
func (h *InvoiceHandler) GetInvoicesByRange(c echo.Context) error {
	start, okStart := parseDate(c.QueryParam("start"))
	end, okEnd := parseDate(c.QueryParam("end"))
	if !okStart || !okEnd {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end must be YYYY-MM-DD dates")
	}
	userID := util.ParseIntDefault(c.QueryParam("user_id"), 0)
	page, _, offset, limit := pageParams(c, util.DefaultPageSize)

	filter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("sale_date >= ? AND sale_date <= ?", start, end)
		if userID != 0 {
			q = q.Where("user_id = ?", userID)
		}
		return q
	}

	var total int64
	if err := filter(h.DB.Model(&models.Invoice{})).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Invoice
	if err := filter(h.DB.Model(&models.Invoice{})).Order("sale_date ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("invoices", items, total, page, limit))
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var invoice models.Invoice
	if err := h.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, invoice)
}

// The stored total is trusted as sent, it is not recomputed from the lines.
func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	var req models.Invoice
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.DB.Create(&req).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, mykafka.TopicSaleEvents, fmt.Sprint(req.ID), map[string]any{
		"type":      "sale_recorded",
		"invoiceID": req.ID,
		"total":     req.Total,
		"userID":    req.UserID,
	})

	return c.JSON(http.StatusCreated, req)
}

func (h *InvoiceHandler) PutInvoice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.Invoice
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.Invoice{}).Where("id = ?", id).
		Select("sale_date", "total", "user_id").
		Updates(req)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.Invoice{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *InvoiceHandler) DeleteInvoice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "invoice does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
