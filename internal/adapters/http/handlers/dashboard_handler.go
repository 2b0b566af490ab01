package handlers

import (
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Overview returns the landing dashboard
// @Summary Dashboard overview
// @Description Occupancy, payments due, overdue count and this month's financials
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	data, err := h.dashboardService.Overview(c.Context(), authOf(c))
	if err != nil {
		return fail(c, err, "get dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Occupancy returns occupancy statistics
// @Summary Occupancy
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param building_id query int false "Building filter"
// @Success 200 {object} response.Response
// @Router /dashboard/occupancy [get]
func (h *DashboardHandler) Occupancy(c *fiber.Ctx) error {
	buildingID, err := queryUint(c, "building_id")
	if err != nil {
		return fail(c, err, "get occupancy")
	}
	data, err := h.dashboardService.Occupancy(c.Context(), authOf(c), buildingID)
	if err != nil {
		return fail(c, err, "get occupancy")
	}
	return response.Success(c, "Occupancy retrieved successfully", data)
}

// PaymentsDue lists guests with a payment due in a window
// @Summary Payments due
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param window query string false "today, week or custom" default(week)
// @Param start query string false "Custom window start (YYYY-MM-DD)"
// @Param end query string false "Custom window end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/payments-due [get]
func (h *DashboardHandler) PaymentsDue(c *fiber.Ctx) error {
	data, err := h.dashboardService.PaymentsDue(c.Context(), authOf(c), c.Query("window"), c.Query("start"), c.Query("end"))
	if err != nil {
		return fail(c, err, "get payments due")
	}
	return response.Success(c, "Payments due retrieved successfully", data)
}

// Overdue lists overdue guests
// @Summary Overdue payments
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/overdue [get]
func (h *DashboardHandler) Overdue(c *fiber.Ctx) error {
	guests, err := h.dashboardService.Overdue(c.Context(), authOf(c))
	if err != nil {
		return fail(c, err, "get overdue payments")
	}
	return response.Success(c, "Overdue payments retrieved successfully", fiber.Map{
		"guests": guests,
		"count":  len(guests),
	})
}

// Financial returns the financial summary for a period
// @Summary Financial summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "current-month, last-month, current-year or last-year" default(current-month)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/financial [get]
func (h *DashboardHandler) Financial(c *fiber.Ctx) error {
	data, err := h.dashboardService.Financial(c.Context(), authOf(c), c.Query("period"))
	if err != nil {
		return fail(c, err, "get financial summary")
	}
	return response.Success(c, "Financial summary retrieved successfully", data)
}

// Trend returns the trailing six-month trend
// @Summary Monthly trend
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/trend [get]
func (h *DashboardHandler) Trend(c *fiber.Ctx) error {
	points, err := h.dashboardService.Trend(c.Context(), authOf(c))
	if err != nil {
		return fail(c, err, "get trend")
	}
	return response.Success(c, "Trend retrieved successfully", points)
}
