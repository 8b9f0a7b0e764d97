package rest

import (
	"net/http"
	"time"

	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
	"pricingAdvisor/pkg/utils"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	validator         *validator.Validate
	adminUsername     string
	adminPasswordHash string
}

func NewAuthHandler(adminUsername, adminPasswordHash string) *AuthHandler {
	return &AuthHandler{
		validator:         validator.New(),
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind login request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Username != h.adminUsername || !utils.CheckPassword(req.Password, h.adminPasswordHash) {
		return domain.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(req.Username, "admin", tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	}))
}
