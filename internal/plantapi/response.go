package plantapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/plantstore/internal/webserver"
	"go.uber.org/zap"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	if status >= http.StatusInternalServerError {
		zap.L().Error(message,
			zap.String("code", code),
			zap.String("uri", c.Request().RequestURI))
	}
	return c.JSON(status, webserver.ErrorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

// failBind reports a body that could not be decoded, keeping the status echo chose (400, 413, 415).
func failBind(c echo.Context, err error, message string) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return he
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", message, err.Error())
}

func handleValidationError(c echo.Context, err error) error {
	if messages, ok := webserver.ValidationMessages(err); ok {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", messages)
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
