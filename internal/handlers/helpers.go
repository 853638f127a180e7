package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/logging"
	"github.com/farmacia-chavarria/backend/internal/util"
)

// EventPublisher is what handlers need from the kafka producer. A nil
// publisher disables events, tests run without a broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

func publish(c echo.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}

func pagedResponse(key string, items any, total int64, page, size int) map[string]any {
	return map[string]any{
		key:            items,
		"total_items":  total,
		"total_pages":  util.TotalPages(total, size),
		"current_page": page,
		"page_size":    size,
	}
}

func pageParams(c echo.Context, def int) (page, size, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size = util.ParseIntDefault(c.QueryParam("page_size"), def)
	offset, limit = util.Calculate(page, size, def)
	return page, size, offset, limit
}

// replaceFailure classifies a full-row UPDATE that touched no rows: the row
// is either gone or a concurrent writer interfered.
func replaceFailure(db *gorm.DB, model any, column string, id int) *echo.HTTPError {
	var n int64
	if err := db.Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "record does not exist")
	}
	return echo.NewHTTPError(http.StatusConflict, "record was modified concurrently")
}

// parseDate accepts the YYYY-MM-DD wire format used by every date filter.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
