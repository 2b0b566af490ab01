package handlers

import (
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InquiryHandler handles contact-form endpoints
type InquiryHandler struct {
	inquiryService *services.InquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// Create accepts a public inquiry
// @Summary Submit inquiry
// @Description Public endpoint, rate limited per IP
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param body body services.CreateInquiryInput true "Inquiry"
// @Success 201 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /inquiries [post]
func (h *InquiryHandler) Create(c *fiber.Ctx) error {
	var input services.CreateInquiryInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "submit inquiry")
	}

	meta := map[string]interface{}{
		"ip":         c.IP(),
		"user_agent": c.Get(fiber.HeaderUserAgent),
	}
	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		meta["referer"] = ref
	}

	inquiry, err := h.inquiryService.Create(c.Context(), &input, meta)
	if err != nil {
		return fail(c, err, "submit inquiry")
	}
	return response.Created(c, "Thank you, we will contact you soon", fiber.Map{"id": inquiry.ID})
}

// List returns inquiries
// @Summary List inquiries
// @Tags Inquiries
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, contacted or closed"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /inquiries [get]
func (h *InquiryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	inquiries, total, err := h.inquiryService.List(c.Context(), authOf(c), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "list inquiries")
	}
	return paged(c, "Inquiries retrieved successfully", inquiries, params, total)
}

// UpdateStatus marks an inquiry contacted or closed
// @Summary Update inquiry status
// @Tags Inquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inquiry ID"
// @Param body body services.InquiryStatusInput true "Status"
// @Success 200 {object} response.Response
// @Router /inquiries/{id}/status [put]
func (h *InquiryHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update inquiry")
	}
	var input services.InquiryStatusInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update inquiry")
	}
	inquiry, err := h.inquiryService.UpdateStatus(c.Context(), authOf(c), id, &input)
	if err != nil {
		return fail(c, err, "update inquiry")
	}
	return response.Success(c, "Inquiry updated successfully", inquiry)
}

// Delete removes an inquiry
// @Summary Delete inquiry
// @Tags Inquiries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inquiry ID"
// @Success 200 {object} response.Response
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete inquiry")
	}
	if err := h.inquiryService.Delete(c.Context(), authOf(c), id); err != nil {
		return fail(c, err, "delete inquiry")
	}
	return response.Success(c, "Inquiry deleted successfully", nil)
}
