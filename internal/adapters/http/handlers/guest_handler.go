package handlers

import (
	"strings"

	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GuestHandler handles guest endpoints
type GuestHandler struct {
	guestService *services.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *services.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// List returns guests
// @Summary List guests
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Active filter"
// @Param moved_out query bool false "Moved-out filter"
// @Param room_id query int false "Room filter"
// @Param q query string false "Search name, email or phone"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /guests [get]
func (h *GuestHandler) List(c *fiber.Ctx) error {
	var filter services.GuestFilter
	var err error
	if filter.Active, err = queryBool(c, "active"); err != nil {
		return fail(c, err, "list guests")
	}
	if filter.MovedOut, err = queryBool(c, "moved_out"); err != nil {
		return fail(c, err, "list guests")
	}
	if filter.RoomID, err = queryUint(c, "room_id"); err != nil {
		return fail(c, err, "list guests")
	}
	filter.Query = strings.TrimSpace(c.Query("q"))

	params := pagination.GetParams(c)
	guests, total, err := h.guestService.List(c.Context(), authOf(c), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "list guests")
	}
	return paged(c, "Guests retrieved successfully", guests, params, total)
}

// Get returns one guest
// @Summary Get guest
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Response
// @Router /guests/{id} [get]
func (h *GuestHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get guest")
	}
	guest, err := h.guestService.Get(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get guest")
	}
	return response.Success(c, "Guest retrieved successfully", guest)
}

// Create registers a guest, occupying the room when one is given
// @Summary Create guest
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateGuestInput true "Guest"
// @Success 201 {object} response.Response
// @Success 207 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /guests [post]
func (h *GuestHandler) Create(c *fiber.Ctx) error {
	var input services.CreateGuestInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create guest")
	}
	guest, err := h.guestService.Create(c.Context(), authOf(c), &input)
	if pf, ok := domain.AsPartialFailure(err); ok {
		return partial(c, pf, "create guest", guest)
	}
	if err != nil {
		return fail(c, err, "create guest")
	}
	return response.Created(c, "Guest created successfully", guest)
}

// Update edits a guest
// @Summary Update guest
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Param body body services.UpdateGuestInput true "Changes"
// @Success 200 {object} response.Response
// @Router /guests/{id} [put]
func (h *GuestHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update guest")
	}
	var input services.UpdateGuestInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update guest")
	}
	guest, err := h.guestService.Update(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update guest")
	}
	return response.Success(c, "Guest updated successfully", guest)
}

// Delete removes a guest record (Admin only)
// @Summary Delete guest
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Response
// @Router /guests/{id} [delete]
func (h *GuestHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete guest")
	}
	if err := h.guestService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete guest")
	}
	return response.Success(c, "Guest deleted successfully", nil)
}

// PaymentReceived records a payment and advances the due date
// @Summary Mark payment received
// @Description Retrying with the same reference never records a second payment
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Param body body services.PaymentReceivedInput true "Payment"
// @Success 201 {object} response.Response
// @Success 200 {object} response.Response "Replayed reference"
// @Success 207 {object} response.Response "Payment saved, due date not advanced"
// @Router /guests/{id}/payment-received [post]
func (h *GuestHandler) PaymentReceived(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "record payment")
	}
	var input services.PaymentReceivedInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "record payment")
	}

	result, err := h.guestService.MarkPaymentReceived(c.Context(), authOf(c), id, &input)
	if pf, ok := domain.AsPartialFailure(err); ok {
		return partial(c, pf, "record payment", result)
	}
	if err != nil {
		return fail(c, err, "record payment")
	}
	if result.Replayed {
		return response.Success(c, "Payment already recorded", result)
	}
	return response.Created(c, "Payment recorded successfully", result)
}

// MoveOut ends a guest's stay and releases the room
// @Summary Mark guest moved out
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Param body body services.MoveOutInput false "Move-out date"
// @Success 200 {object} response.Response
// @Success 207 {object} response.Response "Guest moved out, room not released"
// @Router /guests/{id}/move-out [post]
func (h *GuestHandler) MoveOut(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "move out guest")
	}
	var input services.MoveOutInput
	if len(c.Body()) > 0 {
		if err := parseBody(c, &input); err != nil {
			return fail(c, err, "move out guest")
		}
	}

	guest, err := h.guestService.MarkMovedOut(c.Context(), authOf(c), id, &input)
	if pf, ok := domain.AsPartialFailure(err); ok {
		return partial(c, pf, "move out guest", guest)
	}
	if err != nil {
		return fail(c, err, "move out guest")
	}
	return response.Success(c, "Guest moved out successfully", guest)
}

// History returns the guest's activity trail
// @Summary Guest history
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Response
// @Router /guests/{id}/history [get]
func (h *GuestHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get guest history")
	}
	activities, err := h.guestService.History(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get guest history")
	}
	return response.Success(c, "Guest history retrieved successfully", activities)
}
