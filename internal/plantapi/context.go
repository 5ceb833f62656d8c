package plantapi

import (
	"github.com/labstack/echo/v4"
	"github.com/talkincode/plantstore/internal/app"
	"github.com/talkincode/plantstore/internal/repository"
	"github.com/talkincode/plantstore/internal/webserver"
)

// GetAppContext returns the application context installed by the web server.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func GetPlantRepo(c echo.Context) repository.PlantRepository {
	return GetAppContext(c).PlantRepo()
}
