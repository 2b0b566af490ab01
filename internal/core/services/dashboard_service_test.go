package services

import (
	"context"
	"testing"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/rules"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Occupancy(t *testing.T) {
	env := newTestEnv(t)
	harbor := env.building(t, "Harbor")
	river := env.building(t, "Riverside")
	env.room(t, harbor.ID, "101", domain.RoomOccupied)
	env.room(t, harbor.ID, "102", domain.RoomAvailable)
	env.room(t, harbor.ID, "103", domain.RoomMaintenance)
	env.room(t, river.ID, "1", domain.RoomNeedsCleaning)

	data, err := env.dashboard.Occupancy(context.Background(), staff, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, data.Overall.Total)
	assert.Equal(t, 1, data.Overall.Occupied)
	assert.Equal(t, 25.0, data.Overall.OccupancyRate)
	require.Len(t, data.ByBuilding, 2)
	assert.Equal(t, "Harbor", data.ByBuilding[0].BuildingName)
	assert.Equal(t, 3, data.ByBuilding[0].Total)

	id := river.ID
	only, err := env.dashboard.Occupancy(context.Background(), staff, &id)
	require.NoError(t, err)
	assert.Equal(t, 1, only.Overall.Total)
	assert.Equal(t, 1, only.Overall.NeedsCleaning)

	_, err = env.dashboard.Occupancy(context.Background(), domain.Anonymous, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDashboardService_FinancialExcludesRefunds(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomAvailable)
	g := env.guest(t, r.ID, "2024-06-10", "4500")
	ctx := context.Background()

	_, err := env.guests.MarkPaymentReceived(ctx, staff, g.ID, &PaymentReceivedInput{Method: "cash"})
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.Payment{
		Amount:      decimal.RequireFromString("999"),
		PaymentDate: date(2024, 6, 5),
		Method:      "cash",
		Status:      models.PaymentRefunded,
		Reference:   "REFUNDED-1",
	}).Error)

	_, err = env.receipts.Create(ctx, staff, &ReceiptInput{
		Vendor:      "Hardware Co",
		Category:    "Repairs",
		ReceiptDate: "2024-06-03",
		LineItems: []LineItem{
			{Description: "Tap", Quantity: 2, Amount: decimal.RequireFromString("600")},
		},
	})
	require.NoError(t, err)

	summary, err := env.dashboard.Financial(ctx, staff, "current-month")
	require.NoError(t, err)
	assert.Equal(t, "4500", summary.TotalRevenue.String())
	assert.Equal(t, "1200", summary.TotalExpenses.String())
	assert.Equal(t, "3300", summary.NetProfit.String())
	require.Len(t, summary.Properties, 1)
	assert.Equal(t, "Harbor", summary.Properties[0].BuildingName)

	_, err = env.dashboard.Financial(ctx, staff, "fortnight")
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "period", ve.Field)
}

func TestDashboardService_CacheClearedOnMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.dashboard.Financial(ctx, staff, "")
	require.NoError(t, err)
	assert.True(t, first.TotalExpenses.IsZero())
	assert.Equal(t, 1, env.cache.Len())

	amount := decimal.RequireFromString("250")
	_, err = env.receipts.Create(ctx, staff, &ReceiptInput{Amount: &amount, ReceiptDate: "2024-06-01"})
	require.NoError(t, err)
	assert.Zero(t, env.cache.Len())

	second, err := env.dashboard.Financial(ctx, staff, "")
	require.NoError(t, err)
	assert.Equal(t, "250", second.TotalExpenses.String())
	require.Len(t, second.Categories, 1)
	assert.Equal(t, domain.DefaultExpenseCategory, second.Categories[0].Category)
}

func TestDashboardService_PaymentsDueWindows(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r1 := env.room(t, b.ID, "101", domain.RoomAvailable)
	r2 := env.room(t, b.ID, "102", domain.RoomAvailable)
	r3 := env.room(t, b.ID, "103", domain.RoomAvailable)
	env.guest(t, r1.ID, "2024-06-12", "1000.50")
	env.guest(t, r2.ID, "2024-06-15", "2000")
	env.guest(t, r3.ID, "2024-06-16", "3000")
	ctx := context.Background()

	todayData, err := env.dashboard.PaymentsDue(ctx, staff, WindowToday, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, todayData.Count)

	week, err := env.dashboard.PaymentsDue(ctx, staff, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, WindowWeek, week.Window)
	assert.Equal(t, 2, week.Count)
	assert.Equal(t, "3000.5", week.TotalDue.String())
	assert.Equal(t, date(2024, 6, 9), week.Range.Start)

	custom, err := env.dashboard.PaymentsDue(ctx, staff, WindowCustom, "2024-06-13", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2, custom.Count)
	assert.Equal(t, "2024-06-15", ymd(*custom.Guests[0].NextPaymentDue))
}

func TestDashboardService_ResolveWindowErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name               string
		window, start, end string
		field              string
	}{
		{"unknown window", "fortnight", "", "", "window"},
		{"bad start", WindowCustom, "June", "2024-06-30", "start"},
		{"end before start", WindowCustom, "2024-06-30", "2024-06-01", "end"},
		{"too long", WindowCustom, "2024-01-01", "2025-06-01", "end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.dashboard.ResolveWindow(tt.window, tt.start, tt.end)
			ve, ok := domain.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	r, err := env.dashboard.ResolveWindow(WindowCustom, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, 366, r.Days())
}

func TestDashboardService_OverviewAndOverdue(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r1 := env.room(t, b.ID, "101", domain.RoomAvailable)
	r2 := env.room(t, b.ID, "102", domain.RoomAvailable)
	env.guest(t, r1.ID, "2024-06-01", "1000")
	env.guest(t, r2.ID, "2024-06-12", "2000")
	ctx := context.Background()

	overdue, err := env.dashboard.Overdue(ctx, staff)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, domain.PaymentOverdue, overdue[0].PaymentStatus)

	overview, err := env.dashboard.Overview(ctx, staff)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.Occupancy.Occupied)
	assert.Equal(t, 1, overview.DueToday)
	assert.Equal(t, 1, overview.Overdue)
	assert.Equal(t, 1, overview.DueThisWeek)
	assert.Equal(t, rules.PeriodCurrentMonth, overview.Financial.Period)
}

func TestDashboardService_Trend(t *testing.T) {
	env := newTestEnv(t)

	points, err := env.dashboard.Trend(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, points, rules.TrendMonths)
	assert.Equal(t, "2024-06", points[len(points)-1].Month)
}
