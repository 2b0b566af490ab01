// Package bootstrap builds the repositories and services shared by the HTTP
// server and the CLI jobs.
package bootstrap

import (
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/config"
	"rentdesk/internal/core/services"
	"rentdesk/internal/events"

	"gorm.io/gorm"
)

// Container holds the wired application services
type Container struct {
	Config *config.Config
	Hub    *events.Hub
	Cache  *services.ReportCache
	Clock  services.Clock

	Auth        *services.AuthService
	Users       *services.UserService
	Buildings   *services.BuildingService
	Rooms       *services.RoomService
	Guests      *services.GuestService
	Payments    *services.PaymentService
	Receipts    *services.ReceiptService
	Maintenance *services.MaintenanceService
	Inquiries   *services.InquiryService
	Dashboard   *services.DashboardService
	Notifier    *services.NotificationService
	Cron        *services.CronService
}

// New wires every service against db
func New(db *gorm.DB, cfg *config.Config) *Container {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	buildingRepo := repositories.NewBuildingRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	guestRepo := repositories.NewGuestRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)
	inquiryRepo := repositories.NewInquiryRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	hub := events.NewHub()
	cache := services.NewReportCache(cfg.Reports.CacheSize, cfg.Reports.CacheTTL)
	cache.Subscribe(hub)
	clock := services.NewClock(cfg.Location())
	notifier := services.NewNotificationService(cfg.Notify.WebhookURL, cfg.Notify.Timeout)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	roomService := services.NewRoomService(roomRepo, buildingRepo, guestRepo, maintenanceRepo, activityRepo, hub)
	guestService := services.NewGuestService(guestRepo, roomRepo, paymentRepo, roomService, activityRepo, hub, notifier, clock)

	c := &Container{
		Config:      cfg,
		Hub:         hub,
		Cache:       cache,
		Clock:       clock,
		Auth:        authService,
		Users:       services.NewUserService(userRepo),
		Buildings:   services.NewBuildingService(buildingRepo, hub),
		Rooms:       roomService,
		Guests:      guestService,
		Payments:    services.NewPaymentService(paymentRepo, guestRepo, roomRepo, hub, clock),
		Receipts:    services.NewReceiptService(receiptRepo, buildingRepo, hub),
		Maintenance: services.NewMaintenanceService(maintenanceRepo, roomRepo, activityRepo, hub, clock),
		Inquiries:   services.NewInquiryService(inquiryRepo, hub),
		Notifier:    notifier,
	}
	c.Dashboard = services.NewDashboardService(
		buildingRepo,
		roomRepo,
		paymentRepo,
		receiptRepo,
		maintenanceRepo,
		inquiryRepo,
		guestService,
		cache,
		clock,
	)
	c.Cron = services.NewCronService(services.CronSchedules{
		PaymentSweep: cfg.Cron.PaymentSweep,
		DueReminder:  cfg.Cron.DueReminder,
		TokenPurge:   cfg.Cron.TokenPurge,
	}, guestService, authService, notifier, clock)

	return c
}

// Close releases the cache janitor
func (c *Container) Close() {
	c.Cache.Stop()
}
