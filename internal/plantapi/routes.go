package plantapi

import "github.com/talkincode/plantstore/internal/webserver"

// Version is reported by the index route.
var Version = "1.0.0"

// RegisterRoutes mounts the plant endpoints on srv.
func RegisterRoutes(srv *webserver.Server) {
	srv.GET("/", Index)
	srv.GET("/health", Health)

	srv.GET("/plants", ListPlants)
	srv.POST("/plants", CreatePlant)
	srv.GET("/plants/:id", GetPlant)
	srv.PATCH("/plants/:id", UpdatePlant)
	srv.DELETE("/plants/:id", DeletePlant)
}
