package handlers

import (
	"strings"

	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MaintenanceHandler handles repair ticket endpoints
type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenanceService *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// List returns tickets
// @Summary List maintenance requests
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param status query string false "submitted, in_progress or completed"
// @Param priority query string false "urgent, normal or low"
// @Param room_id query int false "Room filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /maintenance [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	filter := repositories.MaintenanceFilter{
		Status:   strings.ToLower(c.Query("status")),
		Priority: strings.ToLower(c.Query("priority")),
	}
	var err error
	if filter.RoomID, err = queryUint(c, "room_id"); err != nil {
		return fail(c, err, "list maintenance requests")
	}

	params := pagination.GetParams(c)
	reqs, total, err := h.maintenanceService.List(c.Context(), authOf(c), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "list maintenance requests")
	}
	return paged(c, "Maintenance requests retrieved successfully", reqs, params, total)
}

// Get returns one ticket
// @Summary Get maintenance request
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Router /maintenance/{id} [get]
func (h *MaintenanceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get maintenance request")
	}
	req, err := h.maintenanceService.Get(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get maintenance request")
	}
	return response.Success(c, "Maintenance request retrieved successfully", req)
}

// Create files a ticket
// @Summary Create maintenance request
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMaintenanceInput true "Request"
// @Success 201 {object} response.Response
// @Router /maintenance [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMaintenanceInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create maintenance request")
	}
	req, err := h.maintenanceService.Create(c.Context(), authOf(c), &input)
	if err != nil {
		return fail(c, err, "create maintenance request")
	}
	return response.Created(c, "Maintenance request created successfully", req)
}

// Update edits a ticket
// @Summary Update maintenance request
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body services.UpdateMaintenanceInput true "Changes"
// @Success 200 {object} response.Response
// @Router /maintenance/{id} [put]
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update maintenance request")
	}
	var input services.UpdateMaintenanceInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update maintenance request")
	}
	req, err := h.maintenanceService.Update(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update maintenance request")
	}
	return response.Success(c, "Maintenance request updated successfully", req)
}

// UpdateStatus moves a ticket through its workflow
// @Summary Update maintenance status
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body services.MaintenanceStatusInput true "Status"
// @Success 200 {object} response.Response
// @Router /maintenance/{id}/status [put]
func (h *MaintenanceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update maintenance status")
	}
	var input services.MaintenanceStatusInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update maintenance status")
	}
	req, err := h.maintenanceService.UpdateStatus(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update maintenance status")
	}
	return response.Success(c, "Maintenance status updated successfully", req)
}

// Delete removes a ticket (Admin only)
// @Summary Delete maintenance request
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Router /maintenance/{id} [delete]
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete maintenance request")
	}
	if err := h.maintenanceService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete maintenance request")
	}
	return response.Success(c, "Maintenance request deleted successfully", nil)
}
