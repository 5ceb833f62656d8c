package plantapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports liveness and database reachability
// @Summary service health
// @Tags System
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := GetAppContext(c).Ping(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Database: "unreachable"})
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}

type indexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Index reports the service name and version
// @Summary service info
// @Tags System
// @Produce json
// @Success 200 {object} indexResponse
// @Router / [get]
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, indexResponse{
		Name:    GetAppContext(c).Config().System.Appid,
		Version: Version,
	})
}
