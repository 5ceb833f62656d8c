package plantapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/plantstore/internal/domain"
	"go.uber.org/zap"
)

type plantCreatePayload struct {
	Name  *string  `json:"name" validate:"required,min=1,max=255"`
	Image *string  `json:"image" validate:"required,min=1,max=1024"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

// plantUpdatePayload relaxes validation rules for partial updates
type plantUpdatePayload struct {
	Name  *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Image *string  `json:"image" validate:"omitempty,min=1,max=1024"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (p plantUpdatePayload) patch() domain.PlantPatch {
	return domain.PlantPatch{Name: p.Name, Image: p.Image, Price: p.Price}
}

// ListPlants returns every plant
// @Summary list all plants
// @Tags Plants
// @Produce json
// @Success 200 {array} domain.Plant
// @Failure 500 {object} webserver.ErrorResponse
// @Router /plants [get]
func ListPlants(c echo.Context) error {
	plants, err := GetPlantRepo(c).List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query plants", nil)
	}
	return ok(c, plants)
}

// CreatePlant creates a plant
// @Summary create a plant
// @Tags Plants
// @Accept json
// @Produce json
// @Param plant body plantCreatePayload true "Plant information"
// @Success 201 {object} domain.Plant
// @Failure 400 {object} webserver.ErrorResponse
// @Failure 500 {object} webserver.ErrorResponse
// @Router /plants [post]
func CreatePlant(c echo.Context) error {
	var payload plantCreatePayload
	if err := c.Bind(&payload); err != nil {
		return failBind(c, err, "Unable to parse plant")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	plant := domain.Plant{
		Name:  *payload.Name,
		Image: *payload.Image,
		Price: *payload.Price,
	}
	if err := GetPlantRepo(c).Create(c.Request().Context(), &plant); errors.Is(err, domain.ErrInvalidPlant) {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create plant", nil)
	}

	zap.L().Info("plant created", zap.Int64("id", plant.ID), zap.String("name", plant.Name))
	return created(c, plant)
}

// GetPlant fetches a single plant
// @Summary get plant detail
// @Tags Plants
// @Produce json
// @Param id path int true "Plant ID"
// @Success 200 {object} domain.Plant
// @Failure 404 {object} webserver.ErrorResponse
// @Router /plants/{id} [get]
func GetPlant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid plant ID", nil)
	}

	plant, err := GetPlantRepo(c).GetByID(c.Request().Context(), id)
	if errors.Is(err, domain.ErrPlantNotFound) {
		return fail(c, http.StatusNotFound, "PLANT_NOT_FOUND", "Plant not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query plant", nil)
	}
	return ok(c, plant)
}

// UpdatePlant applies a partial update
// @Summary partially update a plant
// @Tags Plants
// @Accept json
// @Produce json
// @Param id path int true "Plant ID"
// @Param plant body plantUpdatePayload true "Fields to change"
// @Success 200 {object} domain.Plant
// @Failure 400 {object} webserver.ErrorResponse
// @Failure 404 {object} webserver.ErrorResponse
// @Failure 500 {object} webserver.ErrorResponse
// @Router /plants/{id} [patch]
func UpdatePlant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid plant ID", nil)
	}

	var payload plantUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return failBind(c, err, "Unable to parse plant")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	plant, err := GetPlantRepo(c).UpdateByID(c.Request().Context(), id, payload.patch())
	switch {
	case errors.Is(err, domain.ErrPlantNotFound):
		return fail(c, http.StatusNotFound, "PLANT_NOT_FOUND", "Plant not found", nil)
	case errors.Is(err, domain.ErrInvalidPlant):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update plant", nil)
	}
	return ok(c, plant)
}

// DeletePlant removes a plant
// @Summary delete a plant
// @Tags Plants
// @Param id path int true "Plant ID"
// @Success 204
// @Failure 404 {object} webserver.ErrorResponse
// @Failure 500 {object} webserver.ErrorResponse
// @Router /plants/{id} [delete]
func DeletePlant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid plant ID", nil)
	}

	removed, err := GetPlantRepo(c).DeleteByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete plant", nil)
	}
	if !removed {
		return fail(c, http.StatusNotFound, "PLANT_NOT_FOUND", "Plant not found", nil)
	}

	zap.L().Info("plant deleted", zap.Int64("id", id))
	return c.NoContent(http.StatusNoContent)
}
