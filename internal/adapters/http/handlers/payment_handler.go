package handlers

import (
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment ledger endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List returns payments
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param guest_id query int false "Guest filter"
// @Param room_id query int false "Room filter"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var filter repositories.PaymentFilter
	var err error
	if filter.GuestID, err = queryUint(c, "guest_id"); err != nil {
		return fail(c, err, "list payments")
	}
	if filter.RoomID, err = queryUint(c, "room_id"); err != nil {
		return fail(c, err, "list payments")
	}
	if filter.From, err = queryDate(c, "from"); err != nil {
		return fail(c, err, "list payments")
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		return fail(c, err, "list payments")
	}

	params := pagination.GetParams(c)
	payments, total, err := h.paymentService.List(c.Context(), authOf(c), filter, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "list payments")
	}
	return paged(c, "Payments retrieved successfully", payments, params, total)
}

// Get returns one payment
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get payment")
	}
	payment, err := h.paymentService.Get(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get payment")
	}
	return response.Success(c, "Payment retrieved successfully", payment)
}

// Create records a payment that does not move a due date
// @Summary Create payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "Payment"
// @Success 201 {object} response.Response
// @Success 200 {object} response.Response "Reference already recorded"
// @Router /payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var input services.CreatePaymentInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create payment")
	}
	payment, created, err := h.paymentService.Create(c.Context(), authOf(c), &input)
	if err != nil {
		return fail(c, err, "create payment")
	}
	if !created {
		return response.Success(c, "Payment already recorded", payment)
	}
	return response.Created(c, "Payment created successfully", payment)
}

// UpdateStatus refunds or reinstates a payment (Admin only)
// @Summary Change payment status
// @Description Refunded payments are excluded from revenue reports
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body services.PaymentStatusInput true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update payment")
	}
	var input services.PaymentStatusInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update payment")
	}
	payment, err := h.paymentService.UpdateStatus(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update payment")
	}
	return response.Success(c, "Payment status updated", payment)
}

// Delete removes a payment (Admin only)
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete payment")
	}
	if err := h.paymentService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete payment")
	}
	return response.Success(c, "Payment deleted successfully", nil)
}
