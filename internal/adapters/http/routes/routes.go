package routes

import (
	"time"

	"rentdesk/internal/adapters/http/handlers"
	"rentdesk/internal/adapters/http/middleware"
	"rentdesk/internal/bootstrap"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, c *bootstrap.Container) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(c.Config, c.Hub, nil)
	authHandler := handlers.NewAuthHandler(c.Auth, c.Config)
	userHandler := handlers.NewUserHandler(c.Users)
	buildingHandler := handlers.NewBuildingHandler(c.Buildings)
	roomHandler := handlers.NewRoomHandler(c.Rooms)
	guestHandler := handlers.NewGuestHandler(c.Guests)
	paymentHandler := handlers.NewPaymentHandler(c.Payments)
	receiptHandler := handlers.NewReceiptHandler(c.Receipts)
	maintenanceHandler := handlers.NewMaintenanceHandler(c.Maintenance)
	inquiryHandler := handlers.NewInquiryHandler(c.Inquiries)
	dashboardHandler := handlers.NewDashboardHandler(c.Dashboard)
	eventsHandler := handlers.NewEventsHandler(c.Hub)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(c.Auth)

	// API v1 group
	router := app.Group("/api/v1")
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)

	// Inquiry form is public, everything else needs a login
	router.Post("/inquiries", middleware.PublicFormLimiter(), inquiryHandler.Create)

	// Event stream
	router.Get("/events", auth, eventsHandler.Stream)

	// User management routes (Admin only, except own password)
	router.Put("/users/me/password", auth, userHandler.ChangePassword)
	userRoutes := router.Group("/users", auth, middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	setupBuildingRoutes(router.Group("/buildings", auth), buildingHandler)
	setupRoomRoutes(router.Group("/rooms", auth), roomHandler)
	setupGuestRoutes(router.Group("/guests", auth), guestHandler)
	setupPaymentRoutes(router.Group("/payments", auth), paymentHandler)
	setupReceiptRoutes(router.Group("/receipts", auth), receiptHandler)
	setupMaintenanceRoutes(router.Group("/maintenance", auth), maintenanceHandler)
	setupInquiryRoutes(router.Group("/inquiries", auth), inquiryHandler)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard", auth, middleware.NoCacheHeaders())
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

// setupBuildingRoutes configures building routes
func setupBuildingRoutes(router fiber.Router, handler *handlers.BuildingHandler) {
	router.Get("/", middleware.CacheControl(30*time.Second), handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupRoomRoutes configures room routes
func setupRoomRoutes(router fiber.Router, handler *handlers.RoomHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
	router.Put("/:id/status", handler.ChangeStatus)
	router.Post("/:id/release", handler.Release)
	router.Get("/:id/history", handler.History)
}

// setupGuestRoutes configures guest routes
func setupGuestRoutes(router fiber.Router, handler *handlers.GuestHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
	router.Post("/:id/payment-received", handler.PaymentReceived)
	router.Post("/:id/move-out", handler.MoveOut)
	router.Get("/:id/history", handler.History)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id/status", middleware.AdminOnly(), handler.UpdateStatus)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupReceiptRoutes configures expense receipt routes
func setupReceiptRoutes(router fiber.Router, handler *handlers.ReceiptHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupMaintenanceRoutes configures maintenance request routes
func setupMaintenanceRoutes(router fiber.Router, handler *handlers.MaintenanceHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Put("/:id/status", handler.UpdateStatus)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupInquiryRoutes configures inquiry routes for staff
func setupInquiryRoutes(router fiber.Router, handler *handlers.InquiryHandler) {
	router.Get("/", handler.List)
	router.Put("/:id/status", handler.UpdateStatus)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/", handler.Overview)
	router.Get("/occupancy", handler.Occupancy)
	router.Get("/payments-due", handler.PaymentsDue)
	router.Get("/overdue", handler.Overdue)
	router.Get("/financial", handler.Financial)
	router.Get("/trend", handler.Trend)
}
