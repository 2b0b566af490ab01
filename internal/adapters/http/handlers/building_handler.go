package handlers

import (
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BuildingHandler handles property endpoints
type BuildingHandler struct {
	buildingService *services.BuildingService
}

// NewBuildingHandler creates a new building handler
func NewBuildingHandler(buildingService *services.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

// List returns all buildings
// @Summary List buildings
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /buildings [get]
func (h *BuildingHandler) List(c *fiber.Ctx) error {
	buildings, err := h.buildingService.List(c.Context(), authOf(c))
	if err != nil {
		return fail(c, err, "list buildings")
	}
	return response.Success(c, "Buildings retrieved successfully", buildings)
}

// Get returns one building
// @Summary Get building
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id} [get]
func (h *BuildingHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get building")
	}
	building, err := h.buildingService.Get(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get building")
	}
	return response.Success(c, "Building retrieved successfully", building)
}

// Create adds a building
// @Summary Create building
// @Tags Buildings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBuildingInput true "Building"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBuildingInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create building")
	}
	building, err := h.buildingService.Create(c.Context(), authOf(c), &input)
	if err != nil {
		return fail(c, err, "create building")
	}
	return response.Created(c, "Building created successfully", building)
}

// Update edits a building
// @Summary Update building
// @Tags Buildings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Param body body services.UpdateBuildingInput true "Changes"
// @Success 200 {object} response.Response
// @Router /buildings/{id} [put]
func (h *BuildingHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update building")
	}
	var input services.UpdateBuildingInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update building")
	}
	building, err := h.buildingService.Update(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update building")
	}
	return response.Success(c, "Building updated successfully", building)
}

// Delete removes a building without rooms (Admin only)
// @Summary Delete building
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete building")
	}
	if err := h.buildingService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete building")
	}
	return response.Success(c, "Building deleted successfully", nil)
}
