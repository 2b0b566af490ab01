package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	staff = domain.AuthContext{UserID: 2, Username: "frontdesk", Role: domain.RoleStaff, Via: "jwt"}
	admin = domain.AuthContext{UserID: 1, Username: "admin", Role: domain.RoleAdmin, Via: "jwt"}
)

var errInjected = errors.New("injected write failure")

// failingRoomRepo fails UpdateFields while fail is set
type failingRoomRepo struct {
	repositories.RoomRepository
	fail bool
}

func (r *failingRoomRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if r.fail {
		return errInjected
	}
	return r.RoomRepository.UpdateFields(ctx, id, fields)
}

// failingGuestRepo fails UpdateFields while fail is set
type failingGuestRepo struct {
	repositories.GuestRepository
	fail bool
}

func (r *failingGuestRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if r.fail {
		return errInjected
	}
	return r.GuestRepository.UpdateFields(ctx, id, fields)
}

// recordingNotifier captures partial-failure alerts
type recordingNotifier struct {
	partials []*domain.PartialFailureError
	due      []domain.Guest
	overdue  []domain.Guest
}

func (n *recordingNotifier) IsEnabled() bool { return true }

func (n *recordingNotifier) NotifyDueReminder(_ context.Context, due, overdue []domain.Guest) error {
	n.due, n.overdue = due, overdue
	return nil
}

func (n *recordingNotifier) NotifyPartialFailure(_ context.Context, pf *domain.PartialFailureError) {
	n.partials = append(n.partials, pf)
}

type testEnv struct {
	db       *gorm.DB
	hub      *events.Hub
	clock    Clock
	notifier *recordingNotifier

	roomRepo  *failingRoomRepo
	guestRepo *failingGuestRepo

	rooms       *RoomService
	guests      *GuestService
	payments    *PaymentService
	receipts    *ReceiptService
	maintenance *MaintenanceService
	cache       *ReportCache
	dashboard   *DashboardService
}

// today is the fixed business date used by service tests (a Wednesday)
var today = time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:       db,
		hub:      events.NewHub(),
		clock:    Clock{Now: func() time.Time { return today }, Location: time.UTC},
		notifier: &recordingNotifier{},
	}

	env.roomRepo = &failingRoomRepo{RoomRepository: repositories.NewRoomRepository(db)}
	env.guestRepo = &failingGuestRepo{GuestRepository: repositories.NewGuestRepository(db)}
	buildingRepo := repositories.NewBuildingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)
	inquiryRepo := repositories.NewInquiryRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	env.rooms = NewRoomService(env.roomRepo, buildingRepo, env.guestRepo, maintenanceRepo, activityRepo, env.hub)
	env.guests = NewGuestService(env.guestRepo, env.roomRepo, paymentRepo, env.rooms, activityRepo, env.hub, env.notifier, env.clock)
	env.payments = NewPaymentService(paymentRepo, env.guestRepo, env.roomRepo, env.hub, env.clock)
	env.receipts = NewReceiptService(receiptRepo, buildingRepo, env.hub)
	env.maintenance = NewMaintenanceService(maintenanceRepo, env.roomRepo, activityRepo, env.hub, env.clock)

	env.cache = NewReportCache(100, time.Minute)
	env.cache.Subscribe(env.hub)
	t.Cleanup(env.cache.Stop)

	env.dashboard = NewDashboardService(buildingRepo, env.roomRepo, paymentRepo, receiptRepo, maintenanceRepo, inquiryRepo, env.guests, env.cache, env.clock)
	return env
}

func (e *testEnv) building(t *testing.T, name string) *models.Building {
	t.Helper()
	b := &models.Building{Name: name}
	require.NoError(t, e.db.Create(b).Error)
	return b
}

func (e *testEnv) room(t *testing.T, buildingID uint, number string, status domain.RoomStatus) *models.Room {
	t.Helper()
	r := &models.Room{Number: number, BuildingID: buildingID, Status: string(status)}
	require.NoError(t, e.db.Create(r).Error)
	return r
}

// guest checks a monthly guest into roomID with the given due date
func (e *testEnv) guest(t *testing.T, roomID uint, due string, amount string) *models.Guest {
	t.Helper()
	g, err := e.guests.Create(context.Background(), staff, &CreateGuestInput{
		RoomID:         &roomID,
		Name:           "Guest " + due,
		BookingType:    string(domain.BookingMonthly),
		CheckInDate:    "2024-05-10",
		PaymentAmount:  decimal.RequireFromString(amount),
		NextPaymentDue: due,
	})
	require.NoError(t, err)
	return g
}

func (e *testEnv) reloadGuest(t *testing.T, id uint) *models.Guest {
	t.Helper()
	var g models.Guest
	require.NoError(t, e.db.First(&g, id).Error)
	return &g
}

func (e *testEnv) reloadRoom(t *testing.T, id uint) *models.Room {
	t.Helper()
	var r models.Room
	require.NoError(t, e.db.First(&r, id).Error)
	return &r
}

func ymd(t time.Time) string {
	return t.Format(DateLayout)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
