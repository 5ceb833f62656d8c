package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrPlantNotFound = errors.New("plant not found")
	ErrInvalidPlant  = errors.New("invalid plant")
)

// Plant is a catalog entry. Only id, name, image and price are exposed over the API.
type Plant struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Image     string    `gorm:"size:1024;not null" json:"image"` // URL or path
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName Specify table name
func (Plant) TableName() string {
	return "plants"
}

// Normalize trims the text fields the way they are stored.
func (p *Plant) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Image = strings.TrimSpace(p.Image)
}

// Validate checks the fields required on every stored plant.
func (p *Plant) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.WithMessage(ErrInvalidPlant, "name is required")
	case strings.TrimSpace(p.Image) == "":
		return errors.WithMessage(ErrInvalidPlant, "image is required")
	case p.Price < 0:
		return errors.WithMessage(ErrInvalidPlant, "price must be >= 0")
	}
	return nil
}

// PlantPatch carries a partial update. Nil fields are left untouched.
type PlantPatch struct {
	Name  *string
	Image *string
	Price *float64
}

func (p PlantPatch) Empty() bool {
	return p.Name == nil && p.Image == nil && p.Price == nil
}

// Apply copies the supplied fields onto plant.
func (p PlantPatch) Apply(plant *Plant) {
	if p.Name != nil {
		plant.Name = *p.Name
	}
	if p.Image != nil {
		plant.Image = *p.Image
	}
	if p.Price != nil {
		plant.Price = *p.Price
	}
	plant.Normalize()
}

// Columns returns the column updates for the supplied fields.
func (p PlantPatch) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Image != nil {
		updates["image"] = strings.TrimSpace(*p.Image)
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	return updates
}
