package app

import (
	"context"

	"github.com/talkincode/plantstore/internal/domain"
	"go.uber.org/zap"
)

var defaultPlants = []domain.Plant{
	{Name: "Aloe", Image: "./images/aloe.jpg", Price: 11.5},
	{Name: "ZZ Plant", Image: "./images/zz-plant.jpg", Price: 25.98},
	{Name: "Pilea peperomioides", Image: "./images/pilea.jpg", Price: 5.99},
	{Name: "Pothos", Image: "./images/pothos.jpg", Price: 12.11},
	{Name: "Jade", Image: "./images/jade.jpg", Price: 10.37},
	{Name: "Monstera Deliciosa", Image: "./images/monstera.jpg", Price: 25.99},
	{Name: "Fiddle Leaf Fig", Image: "./images/fiddle-leaf-fig.jpg", Price: 55},
}

// SeedPlants inserts the demo catalog entries that are not present yet and
// returns how many were created.
func (a *Application) SeedPlants(ctx context.Context) (int, error) {
	created := 0
	for _, p := range defaultPlants {
		var count int64
		if err := a.gormDB.WithContext(ctx).Model(&domain.Plant{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		plant := p
		if err := a.plantRepo.Create(ctx, &plant); err != nil {
			zap.L().Error("failed to create default plant", zap.String("name", p.Name), zap.Error(err))
			return created, err
		}
		zap.L().Info("initialized default plant", zap.String("name", plant.Name), zap.Int64("id", plant.ID))
		created++
	}
	return created, nil
}
