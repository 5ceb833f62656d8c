package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/plantstore/internal/domain"
	"gorm.io/gorm"
)

// PlantRepository handles database operations for plant records
type PlantRepository interface {
	// List returns every plant ordered by id
	List(ctx context.Context) ([]*domain.Plant, error)

	// Create inserts a new plant and fills in the assigned ID
	Create(ctx context.Context, plant *domain.Plant) error

	// GetByID returns domain.ErrPlantNotFound when no row has the id
	GetByID(ctx context.Context, id int64) (*domain.Plant, error)

	// UpdateByID applies the non-nil patch fields and returns the updated plant
	UpdateByID(ctx context.Context, id int64, patch domain.PlantPatch) (*domain.Plant, error)

	// DeleteByID reports whether a row was removed
	DeleteByID(ctx context.Context, id int64) (bool, error)

	Count(ctx context.Context) (int64, error)
}

// GormPlantRepository is the GORM implementation of PlantRepository
type GormPlantRepository struct {
	db *gorm.DB
}

var _ PlantRepository = (*GormPlantRepository)(nil)

// NewGormPlantRepository creates a new GORM-based repository
func NewGormPlantRepository(db *gorm.DB) *GormPlantRepository {
	return &GormPlantRepository{db: db}
}

func (r *GormPlantRepository) List(ctx context.Context) ([]*domain.Plant, error) {
	plants := make([]*domain.Plant, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plants).Error; err != nil {
		return nil, errors.Wrap(err, "list plants")
	}
	return plants, nil
}

func (r *GormPlantRepository) Create(ctx context.Context, plant *domain.Plant) error {
	plant.Normalize()
	if err := plant.Validate(); err != nil {
		return err
	}
	// ids are always assigned by the database
	plant.ID = 0
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		return errors.Wrap(err, "create plant")
	}
	return nil
}

func (r *GormPlantRepository) GetByID(ctx context.Context, id int64) (*domain.Plant, error) {
	var plant domain.Plant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPlantNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "query plant %d", id)
	}
	return &plant, nil
}

func (r *GormPlantRepository) UpdateByID(ctx context.Context, id int64, patch domain.PlantPatch) (*domain.Plant, error) {
	var plant domain.Plant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&plant).Error; err != nil {
			return err
		}
		if patch.Empty() {
			return nil
		}

		patch.Apply(&plant)
		if err := plant.Validate(); err != nil {
			return err
		}

		updates := patch.Columns()
		updates["updated_at"] = time.Now()
		return tx.Model(&domain.Plant{}).Where("id = ?", id).Updates(updates).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrPlantNotFound
	case errors.Is(err, domain.ErrInvalidPlant):
		return nil, err
	case err != nil:
		return nil, errors.Wrapf(err, "update plant %d", id)
	}
	return &plant, nil
}

func (r *GormPlantRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Plant{})
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "delete plant %d", id)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormPlantRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Plant{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "count plants")
	}
	return total, nil
}
