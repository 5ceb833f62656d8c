package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/plantstore/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *GormPlantRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "plants.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGormPlantRepository(db)
}

func mustCreate(t *testing.T, repo *GormPlantRepository, name string, price float64) *domain.Plant {
	t.Helper()
	plant := &domain.Plant{Name: name, Image: name + ".jpg", Price: price}
	require.NoError(t, repo.Create(context.Background(), plant))
	return plant
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestGormPlantRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("List_EmptyTableReturnsEmptySlice", func(t *testing.T) {
		repo := newTestRepository(t)

		plants, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, plants)
		require.Len(t, plants, 0)
	})

	t.Run("Create_AssignsIDAndGetReturnsSameRecord", func(t *testing.T) {
		repo := newTestRepository(t)

		plant := &domain.Plant{ID: 42, Name: "Fern", Image: "fern.jpg", Price: 12.5}
		require.NoError(t, repo.Create(ctx, plant))
		require.Equal(t, int64(1), plant.ID)

		stored, err := repo.GetByID(ctx, plant.ID)
		require.NoError(t, err)
		require.Equal(t, plant.ID, stored.ID)
		require.Equal(t, "Fern", stored.Name)
		require.Equal(t, "fern.jpg", stored.Image)
		require.Equal(t, 12.5, stored.Price)
	})

	t.Run("Create_TrimsNameAndImage", func(t *testing.T) {
		repo := newTestRepository(t)

		plant := &domain.Plant{Name: "  Fern ", Image: " fern.jpg\n", Price: 1}
		require.NoError(t, repo.Create(ctx, plant))

		stored, err := repo.GetByID(ctx, plant.ID)
		require.NoError(t, err)
		require.Equal(t, "Fern", stored.Name)
		require.Equal(t, "fern.jpg", stored.Image)
	})

	t.Run("Create_IDsAreUnique", func(t *testing.T) {
		repo := newTestRepository(t)

		seen := map[int64]bool{}
		for i := 0; i < 5; i++ {
			plant := mustCreate(t, repo, "plant", float64(i))
			require.False(t, seen[plant.ID], "id %d reused", plant.ID)
			seen[plant.ID] = true
		}
	})

	t.Run("Create_IDsAreNotReusedAfterDelete", func(t *testing.T) {
		repo := newTestRepository(t)

		mustCreate(t, repo, "Fern", 1)
		last := mustCreate(t, repo, "Aloe", 2)
		removed, err := repo.DeleteByID(ctx, last.ID)
		require.NoError(t, err)
		require.True(t, removed)

		next := mustCreate(t, repo, "Cactus", 3)
		require.Greater(t, next.ID, last.ID)
	})

	t.Run("Create_FailsOnMissingFields", func(t *testing.T) {
		repo := newTestRepository(t)

		err := repo.Create(ctx, &domain.Plant{Image: "fern.jpg", Price: 1})
		require.True(t, errors.Is(err, domain.ErrInvalidPlant))

		err = repo.Create(ctx, &domain.Plant{Name: "Fern", Image: "fern.jpg", Price: -3})
		require.True(t, errors.Is(err, domain.ErrInvalidPlant))

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, total)
	})

	t.Run("GetByID_MissingReturnsNotFound", func(t *testing.T) {
		repo := newTestRepository(t)

		plant, err := repo.GetByID(ctx, 99)
		require.Nil(t, plant)
		require.True(t, errors.Is(err, domain.ErrPlantNotFound))
	})

	t.Run("UpdateByID_PriceOnlyLeavesOtherFields", func(t *testing.T) {
		repo := newTestRepository(t)
		plant := mustCreate(t, repo, "Fern", 12.5)

		updated, err := repo.UpdateByID(ctx, plant.ID, domain.PlantPatch{Price: floatPtr(15)})
		require.NoError(t, err)
		require.Equal(t, 15.0, updated.Price)
		require.Equal(t, "Fern", updated.Name)
		require.Equal(t, "Fern.jpg", updated.Image)

		stored, err := repo.GetByID(ctx, plant.ID)
		require.NoError(t, err)
		require.Equal(t, 15.0, stored.Price)
		require.Equal(t, "Fern", stored.Name)
		require.Equal(t, "Fern.jpg", stored.Image)
	})

	t.Run("UpdateByID_EmptyPatchReturnsCurrentRecord", func(t *testing.T) {
		repo := newTestRepository(t)
		plant := mustCreate(t, repo, "Fern", 12.5)

		updated, err := repo.UpdateByID(ctx, plant.ID, domain.PlantPatch{})
		require.NoError(t, err)
		require.Equal(t, plant.ID, updated.ID)
		require.Equal(t, 12.5, updated.Price)
	})

	t.Run("UpdateByID_InvalidValueLeavesRowUntouched", func(t *testing.T) {
		repo := newTestRepository(t)
		plant := mustCreate(t, repo, "Fern", 12.5)

		_, err := repo.UpdateByID(ctx, plant.ID, domain.PlantPatch{Name: strPtr(" ")})
		require.True(t, errors.Is(err, domain.ErrInvalidPlant))

		stored, err := repo.GetByID(ctx, plant.ID)
		require.NoError(t, err)
		require.Equal(t, "Fern", stored.Name)
	})

	t.Run("UpdateByID_MissingReturnsNotFound", func(t *testing.T) {
		repo := newTestRepository(t)

		_, err := repo.UpdateByID(ctx, 7, domain.PlantPatch{Price: floatPtr(1)})
		require.True(t, errors.Is(err, domain.ErrPlantNotFound))
	})

	t.Run("DeleteByID_SecondDeleteReportsNothingRemoved", func(t *testing.T) {
		repo := newTestRepository(t)
		plant := mustCreate(t, repo, "Fern", 12.5)

		removed, err := repo.DeleteByID(ctx, plant.ID)
		require.NoError(t, err)
		require.True(t, removed)

		removed, err = repo.DeleteByID(ctx, plant.ID)
		require.NoError(t, err)
		require.False(t, removed)

		_, err = repo.GetByID(ctx, plant.ID)
		require.True(t, errors.Is(err, domain.ErrPlantNotFound))
	})

	t.Run("List_AfterCreatesAndOneDelete", func(t *testing.T) {
		repo := newTestRepository(t)
		var ids []int64
		for _, name := range []string{"Fern", "Aloe", "Cactus", "Ivy"} {
			ids = append(ids, mustCreate(t, repo, name, 5).ID)
		}

		removed, err := repo.DeleteByID(ctx, ids[1])
		require.NoError(t, err)
		require.True(t, removed)

		plants, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, plants, 3)
		assert.Equal(t, []string{"Fern", "Cactus", "Ivy"}, []string{plants[0].Name, plants[1].Name, plants[2].Name})

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), total)
	})
}
