package middleware

import (
	"errors"
	"net/http"

	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
	"pricingAdvisor/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler maps domain error kinds to HTTP statuses so handlers can
// return service errors unwrapped.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrNotTrained):
		status = http.StatusConflict
		code = "NOT_TRAINED"
	case errors.Is(err, domain.ErrDataFormat):
		status = http.StatusBadRequest
		code = "DATA_FORMAT"
	case errors.Is(err, domain.ErrDatasetNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "UNAUTHORIZED"
	default:
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			code = http.StatusText(status)
			if msg, ok := httpErr.Message.(string); ok {
				_ = c.JSON(status, response.Error(code, msg, nil))
				return
			}
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", c.Path(), "error", err)
	}

	_ = c.JSON(status, response.Error(code, err.Error(), nil))
}
