package app

import (
	"context"

	"github.com/talkincode/plantstore/config"
	"github.com/talkincode/plantstore/internal/repository"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// PlantRepoProvider provides the plant storage layer
type PlantRepoProvider interface {
	PlantRepo() repository.PlantRepository
}

// AppContext combines all provider interfaces for full application context.
// Handlers receive it explicitly through the web server.
type AppContext interface {
	DBProvider
	ConfigProvider
	PlantRepoProvider

	// Ping checks the database connection
	Ping(ctx context.Context) error

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb() error
	DropAll()
	SeedPlants(ctx context.Context) (int, error)
}
