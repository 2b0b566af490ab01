package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"rentdesk/internal/adapters/http/middleware"
	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/bootstrap"
	"rentdesk/internal/config"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const serviceToken = "svc-token-for-tests"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Field   string          `json:"field"`
}

type testServer struct {
	app       *fiber.App
	container *bootstrap.Container
	cfg       *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode:  "dev",
		Timezone: "UTC",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Admin:   config.AdminConfig{Token: serviceToken},
		Reports: config.ReportsConfig{CacheTTL: time.Minute, CacheSize: 100},
		Cron:    config.CronConfig{PaymentSweep: "@daily", DueReminder: "@daily", TokenPurge: "@hourly"},
		Notify:  config.NotifyConfig{Timeout: time.Second},
	}

	c := bootstrap.New(db, cfg)
	t.Cleanup(c.Close)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, c)
	return &testServer{app: app, container: c, cfg: cfg}
}

func (s *testServer) staffToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(2, "frontdesk", string(domain.RoleStaff), s.cfg.JWT.Secret, 15)
	require.NoError(t, err)
	return token
}

// do sends a request; auth is either "admin" for the service token, a bearer
// token, or empty.
func (s *testServer) do(t *testing.T, method, path, auth string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case auth == "admin":
		req.Header.Set(middleware.AdminTokenHeader, serviceToken)
	case auth != "":
		req.Header.Set("Authorization", "Bearer "+auth)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestRoutes_AuthRequired(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/v1/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.Header.Set(middleware.AdminTokenHeader, "wrong")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	status, _ = s.do(t, http.MethodGet, "/api/v1/rooms", "admin", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/rooms", s.staffToken(t), nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRoutes_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	staff := s.staffToken(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/users", staff, nil)
	assert.Equal(t, http.StatusForbidden, status)

	b, err := s.container.Buildings.Create(context.Background(), domain.SystemAuth(), &services.CreateBuildingInput{Name: "Harbor"})
	require.NoError(t, err)

	status, _ = s.do(t, http.MethodDelete, "/api/v1/buildings/"+itoa(b.ID), staff, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodDelete, "/api/v1/buildings/"+itoa(b.ID), "admin", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRoutes_ValidationFailure(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/v1/buildings", "admin", map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.CodeRequired, env.Code)
	assert.Equal(t, "name", env.Field)

	ctx := context.Background()
	b, err := s.container.Buildings.Create(ctx, domain.SystemAuth(), &services.CreateBuildingInput{Name: "Harbor"})
	require.NoError(t, err)
	room, err := s.container.Rooms.Create(ctx, domain.SystemAuth(), &services.CreateRoomInput{Number: "101", BuildingID: b.ID})
	require.NoError(t, err)

	status, env = s.do(t, http.MethodPut, "/api/v1/rooms/"+itoa(room.ID)+"/status", "admin", map[string]string{"status": "demolished"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.CodeInvalidStatus, env.Code)

	status, env = s.do(t, http.MethodPut, "/api/v1/rooms/"+itoa(room.ID)+"/status", "admin", map[string]string{"status": "maintenance"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.CodeNotesRequired, env.Code)

	status, _ = s.do(t, http.MethodGet, "/api/v1/rooms/abc", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(t, http.MethodGet, "/api/v1/dashboard/payments-due?window=fortnight", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "window", env.Field)
}

func TestRoutes_GuestPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	sys := domain.SystemAuth()

	b, err := s.container.Buildings.Create(ctx, sys, &services.CreateBuildingInput{Name: "Harbor"})
	require.NoError(t, err)
	room, err := s.container.Rooms.Create(ctx, sys, &services.CreateRoomInput{Number: "101", BuildingID: b.ID})
	require.NoError(t, err)

	status, env := s.do(t, http.MethodPost, "/api/v1/guests", "admin", map[string]interface{}{
		"room_id":          room.ID,
		"name":             "Jane",
		"booking_type":     "monthly",
		"check_in_date":    "2099-01-10",
		"payment_amount":   "4500",
		"next_payment_due": "2099-01-10",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var guest models.Guest
	require.NoError(t, json.Unmarshal(env.Data, &guest))

	path := "/api/v1/guests/" + itoa(guest.ID) + "/payment-received"
	body := map[string]string{"method": "transfer", "reference": "TX-1"}

	status, env = s.do(t, http.MethodPost, path, "admin", body)
	require.Equal(t, http.StatusCreated, status, env.Error)
	var result services.PaymentReceivedResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.Guest.NextPaymentDue)
	assert.Equal(t, "2099-02-10", result.Guest.NextPaymentDue.Format("2006-01-02"))

	status, env = s.do(t, http.MethodPost, path, "admin", body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Payment already recorded", env.Message)

	status, _ = s.do(t, http.MethodPost, "/api/v1/guests/"+itoa(guest.ID)+"/move-out", "admin", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodPost, path, "admin", map[string]string{"method": "cash"})
	assert.Equal(t, http.StatusConflict, status, env.Error)
}

func TestRoutes_ReleaseAndRefund(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	sys := domain.SystemAuth()

	b, err := s.container.Buildings.Create(ctx, sys, &services.CreateBuildingInput{Name: "Harbor"})
	require.NoError(t, err)
	room, err := s.container.Rooms.Create(ctx, sys, &services.CreateRoomInput{Number: "101", BuildingID: b.ID})
	require.NoError(t, err)

	status, env := s.do(t, http.MethodPost, "/api/v1/guests", "admin", map[string]interface{}{
		"room_id":          room.ID,
		"name":             "Jane",
		"booking_type":     "monthly",
		"check_in_date":    "2099-01-10",
		"payment_amount":   "4500",
		"next_payment_due": "2099-01-10",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var guest models.Guest
	require.NoError(t, json.Unmarshal(env.Data, &guest))

	status, _ = s.do(t, http.MethodPost, "/api/v1/rooms/"+itoa(room.ID)+"/release", "admin", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(t, http.MethodPost, "/api/v1/guests/"+itoa(guest.ID)+"/payment-received", "admin", map[string]string{"method": "cash"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var result services.PaymentReceivedResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.Payment)

	path := "/api/v1/payments/" + itoa(result.Payment.ID) + "/status"
	status, _ = s.do(t, http.MethodPut, path, s.staffToken(t), map[string]string{"status": "refunded"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(t, http.MethodPut, path, "admin", map[string]string{"status": "refunded"})
	require.Equal(t, http.StatusOK, status, env.Error)
	var payment models.Payment
	require.NoError(t, json.Unmarshal(env.Data, &payment))
	assert.Equal(t, models.PaymentRefunded, payment.Status)
}

func TestRoutes_PublicInquiry(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/v1/inquiries", "", map[string]string{"name": "Ann", "email": "ann@example.com"})
	assert.Equal(t, http.StatusCreated, status, env.Error)

	status, _ = s.do(t, http.MethodPost, "/api/v1/inquiries", "", map[string]string{"name": "Ann"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/inquiries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoutes_DashboardNoStore(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/occupancy", nil)
	req.Header.Set(middleware.AdminTokenHeader, serviceToken)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}

func TestRoutes_HealthReportsMissingDatabase(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
