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

type UserHandler struct {
	DB *gorm.DB
}

func validUserPayload(u *models.User) *echo.HTTPError {
	if u.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user name cannot be empty")
	}
	if u.PIN < 1000 || u.PIN > 9999 {
		return echo.NewHTTPError(http.StatusBadRequest, "pin must be exactly 4 digits")
	}
	return nil
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	page, _, offset, limit := pageParams(c, util.UserPageSize)

	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.User
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("users", items, total, page, limit))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	name := c.QueryParam("name")
	page, _, offset, limit := pageParams(c, util.UserPageSize)

	pattern := "%" + strings.ToLower(name) + "%"

	var total int64
	if err := h.DB.Model(&models.User{}).Where("LOWER(name) LIKE ?", pattern).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.User
	if err := h.DB.Where("LOWER(name) LIKE ?", pattern).Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagedResponse("users", items, total, page, limit))
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.User
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if herr := validUserPayload(&req); herr != nil {
		return herr
	}

	if err := h.DB.Create(&req).Error; err != nil {
		var n int64
		if probeErr := h.DB.Model(&models.User{}).Where("name = ?", req.Name).Count(&n).Error; probeErr == nil && n > 0 {
			return echo.NewHTTPError(http.StatusConflict, "user name already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, req)
}

func (h *UserHandler) PutUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.User
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if herr := validUserPayload(&req); herr != nil {
		return herr
	}
	if id != req.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
	}

	res := h.DB.Model(&models.User{}).Where("id = ?", id).
		Select("name", "pin", "role").
		Updates(req)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return replaceFailure(h.DB, &models.User{}, "id", id)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	res := h.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user does not exist")
	}

	return c.NoContent(http.StatusNoContent)
}
