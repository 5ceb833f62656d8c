package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestPlantValidate(t *testing.T) {
	t.Run("complete plant is valid", func(t *testing.T) {
		p := &Plant{Name: "Fern", Image: "fern.jpg", Price: 12.5}
		assert.NoError(t, p.Validate())
	})

	t.Run("zero price is valid", func(t *testing.T) {
		p := &Plant{Name: "Cutting", Image: "cutting.jpg"}
		assert.NoError(t, p.Validate())
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		for _, p := range []*Plant{
			{Image: "fern.jpg", Price: 1},
			{Name: "  ", Image: "fern.jpg", Price: 1},
			{Name: "Fern", Price: 1},
			{Name: "Fern", Image: "fern.jpg", Price: -1},
		} {
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlant))
		}
	})
}

func TestPlantNormalize(t *testing.T) {
	p := &Plant{Name: "  Fern\t", Image: " fern.jpg ", Price: 1}
	p.Normalize()

	assert.Equal(t, "Fern", p.Name)
	assert.Equal(t, "fern.jpg", p.Image)
}

func TestPlantPatch(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, PlantPatch{}.Empty())
		assert.Empty(t, PlantPatch{}.Columns())
	})

	t.Run("price only leaves name and image", func(t *testing.T) {
		plant := &Plant{ID: 1, Name: "Fern", Image: "fern.jpg", Price: 12.5}
		patch := PlantPatch{Price: floatPtr(15)}

		patch.Apply(plant)

		assert.False(t, patch.Empty())
		assert.Equal(t, map[string]interface{}{"price": 15.0}, patch.Columns())
		assert.Equal(t, &Plant{ID: 1, Name: "Fern", Image: "fern.jpg", Price: 15}, plant)
	})

	t.Run("strings are trimmed", func(t *testing.T) {
		plant := &Plant{Name: "Fern", Image: "fern.jpg"}
		patch := PlantPatch{Name: strPtr(" Aloe "), Image: strPtr(" aloe.png")}

		patch.Apply(plant)

		assert.Equal(t, "Aloe", plant.Name)
		assert.Equal(t, "aloe.png", plant.Image)
		assert.Equal(t, map[string]interface{}{"name": "Aloe", "image": "aloe.png"}, patch.Columns())
	})
}
