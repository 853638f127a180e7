package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/logging"
	"github.com/farmacia-chavarria/backend/internal/mailer"
	"github.com/farmacia-chavarria/backend/internal/models"
	"github.com/farmacia-chavarria/backend/internal/token"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *token.Issuer
	Mailer mailer.PinSender
	// Rand drives the recovery PIN generation, injected so tests can pin it.
	Rand *rand.Rand
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		PIN      int    `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := h.DB.Where("name = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if user.PIN != req.PIN {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect pin")
	}

	signed, err := h.Tokens.Generate(user.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not sign token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": signed})
}

// RecoverPin overwrites the PIN before the email goes out. A failed send
// leaves the new PIN in place and surfaces as a fatal error.
func (h *AuthHandler) RecoverPin(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := h.DB.Where("name = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	newPin := 1000 + h.Rand.Intn(9000)
	if err := h.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("pin", newPin).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.Mailer.SendPin(req.Email, newPin); err != nil {
		logging.FromContext(c.Request().Context()).Error("pin email failed", "user", user.Name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not send recovery email")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "the PIN has been sent to the given email address"})
}
