package handlers

import (
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReceiptHandler handles expense endpoints
type ReceiptHandler struct {
	receiptService *services.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List returns receipts
// @Summary List receipts
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	receipts, total, err := h.receiptService.List(c.Context(), authOf(c), c.Query("category"), params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "list receipts")
	}
	return paged(c, "Receipts retrieved successfully", receipts, params, total)
}

// Get returns one receipt
// @Summary Get receipt
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Receipt ID"
// @Success 200 {object} response.Response
// @Router /receipts/{id} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get receipt")
	}
	receipt, err := h.receiptService.Get(c.Context(), authOf(c), id)
	if err != nil {
		return fail(c, err, "get receipt")
	}
	return response.Success(c, "Receipt retrieved successfully", receipt)
}

// Create records an expense
// @Summary Create receipt
// @Description Amount defaults to the sum of line items
// @Tags Receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ReceiptInput true "Receipt"
// @Success 201 {object} response.Response
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var input services.ReceiptInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create receipt")
	}
	receipt, err := h.receiptService.Create(c.Context(), authOf(c), &input)
	if err != nil {
		return fail(c, err, "create receipt")
	}
	return response.Created(c, "Receipt created successfully", receipt)
}

// Update replaces a receipt
// @Summary Update receipt
// @Tags Receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Receipt ID"
// @Param body body services.ReceiptInput true "Receipt"
// @Success 200 {object} response.Response
// @Router /receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update receipt")
	}
	var input services.ReceiptInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update receipt")
	}
	receipt, err := h.receiptService.Update(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update receipt")
	}
	return response.Success(c, "Receipt updated successfully", receipt)
}

// Delete removes a receipt (Admin only)
// @Summary Delete receipt
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Receipt ID"
// @Success 200 {object} response.Response
// @Router /receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete receipt")
	}
	if err := h.receiptService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete receipt")
	}
	return response.Success(c, "Receipt deleted successfully", nil)
}
