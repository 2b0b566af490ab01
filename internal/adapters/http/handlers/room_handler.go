package handlers

import (
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// List returns rooms
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param building_id query int false "Building filter"
// @Param status query string false "available, occupied, needs_cleaning or maintenance"
// @Success 200 {object} response.Response
// @Router /rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	buildingID, err := queryUint(c, "building_id")
	if err != nil {
		return fail(c, err, "list rooms")
	}
	rooms, err := h.roomService.List(c.Context(), authOf(c), buildingID, c.Query("status"))
	if err != nil {
		return fail(c, err, "list rooms")
	}
	return response.Success(c, "Rooms retrieved successfully", rooms)
}

// Get returns one room
// @Summary Get room
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get room")
	}
	room, err := h.roomService.Get(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get room")
	}
	return response.Success(c, "Room retrieved successfully", room)
}

// Create adds a room
// @Summary Create room
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRoomInput true "Room"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var input services.CreateRoomInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create room")
	}
	room, err := h.roomService.Create(c.Context(), authOf(c), &input)
	if err != nil {
		return fail(c, err, "create room")
	}
	return response.Created(c, "Room created successfully", room)
}

// Update edits room details
// @Summary Update room
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body services.UpdateRoomInput true "Changes"
// @Success 200 {object} response.Response
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update room")
	}
	var input services.UpdateRoomInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update room")
	}
	room, err := h.roomService.Update(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update room")
	}
	return response.Success(c, "Room updated successfully", room)
}

// Delete removes a room (Admin only)
// @Summary Delete room
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete room")
	}
	if err := h.roomService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete room")
	}
	return response.Success(c, "Room deleted successfully", nil)
}

// ChangeStatus moves a room to a new status
// @Summary Change room status
// @Description Entering maintenance requires notes and files a maintenance request
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body services.ChangeStatusInput true "Transition"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /rooms/{id}/status [put]
func (h *RoomHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "change room status")
	}
	var input services.ChangeStatusInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "change room status")
	}
	result, err := h.roomService.ChangeStatus(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "change room status")
	}
	return response.Success(c, "Room status updated successfully", result)
}

// Release hands an occupied room to housekeeping. Safe to retry.
// @Summary Release room
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Router /rooms/{id}/release [post]
func (h *RoomHandler) Release(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "release room")
	}
	room, err := h.roomService.ReleaseRoom(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "release room")
	}
	return response.Success(c, "Room released successfully", room)
}

// History returns the room's activity trail
// @Summary Room history
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Router /rooms/{id}/history [get]
func (h *RoomHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get room history")
	}
	activities, err := h.roomService.History(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get room history")
	}
	return response.Success(c, "Room history retrieved successfully", activities)
}
