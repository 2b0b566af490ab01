package rules

import (
	"testing"
	"time"

	"rentdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestSelectPaymentsDue_Scenario(t *testing.T) {
	window := DateRange{Start: date(2024, 6, 9), End: date(2024, 6, 15)}
	guest := domain.Guest{ID: 1, NextPaymentDue: ptr(date(2024, 6, 10)), IsActive: true}

	got := SelectPaymentsDue([]domain.Guest{guest}, window)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	guest.HasMovedOut = true
	assert.Empty(t, SelectPaymentsDue([]domain.Guest{guest}, window))
}

func TestSelectPaymentsDue_NeverReturnsUntracked(t *testing.T) {
	window := DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 30)}
	due := ptr(date(2024, 6, 10))
	guests := []domain.Guest{
		{ID: 1, NextPaymentDue: due, IsActive: true},
		{ID: 2, NextPaymentDue: due, IsActive: false},
		{ID: 3, NextPaymentDue: due, IsActive: true, HasMovedOut: true},
		{ID: 4, NextPaymentDue: due, IsActive: false, HasMovedOut: true},
		{ID: 5, IsActive: true},
	}

	got := SelectPaymentsDue(guests, window)

	require.Len(t, got, 1)
	for _, g := range got {
		assert.True(t, g.IsActive)
		assert.False(t, g.HasMovedOut)
	}
}

func TestSelectPaymentsDue_InclusiveBoundsAndOrder(t *testing.T) {
	window := DateRange{Start: date(2024, 6, 9), End: date(2024, 6, 15)}
	guests := []domain.Guest{
		{ID: 1, IsActive: true, NextPaymentDue: ptr(time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC))},
		{ID: 2, IsActive: true, NextPaymentDue: ptr(date(2024, 6, 9))},
		{ID: 3, IsActive: true, NextPaymentDue: ptr(date(2024, 6, 16))},
		{ID: 4, IsActive: true, NextPaymentDue: ptr(date(2024, 6, 8))},
	}

	got := SelectPaymentsDue(guests, window)

	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
}

func TestThisWeek_StartsOnSunday(t *testing.T) {
	// 2024-06-12 is a Wednesday
	w := ThisWeek(time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, date(2024, 6, 9), w.Start)
	assert.Equal(t, date(2024, 6, 15), w.End)
	assert.Equal(t, 7, w.Days())

	sunday := ThisWeek(date(2024, 6, 9))
	assert.Equal(t, date(2024, 6, 9), sunday.Start)

	saturday := ThisWeek(date(2024, 6, 15))
	assert.Equal(t, date(2024, 6, 9), saturday.Start)
}

func TestIsOverdueAndDueToday(t *testing.T) {
	today := date(2024, 6, 12)
	tests := []struct {
		name     string
		due      *time.Time
		status   domain.PaymentStatus
		overdue  bool
		dueToday bool
	}{
		{"past pending", ptr(date(2024, 6, 11)), domain.PaymentPending, true, false},
		{"past paid", ptr(date(2024, 6, 11)), domain.PaymentPaid, false, false},
		{"today pending", ptr(date(2024, 6, 12)), domain.PaymentPending, false, true},
		{"future", ptr(date(2024, 6, 13)), domain.PaymentOverdue, false, false},
		{"no due date", nil, domain.PaymentPending, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.Guest{NextPaymentDue: tt.due, PaymentStatus: tt.status, IsActive: true}
			assert.Equal(t, tt.overdue, IsOverdue(g, today))
			assert.Equal(t, tt.dueToday, IsDueToday(g, today))
		})
	}
}

func TestSelectOverdue(t *testing.T) {
	today := date(2024, 6, 12)
	guests := []domain.Guest{
		{ID: 1, IsActive: true, NextPaymentDue: ptr(date(2024, 6, 10)), PaymentStatus: domain.PaymentPending},
		{ID: 2, IsActive: true, NextPaymentDue: ptr(date(2024, 6, 1)), PaymentStatus: domain.PaymentOverdue},
		{ID: 3, IsActive: true, HasMovedOut: true, NextPaymentDue: ptr(date(2024, 6, 1))},
	}

	got := SelectOverdue(guests, today)

	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		from time.Time
		bt   domain.BookingType
		want time.Time
	}{
		{date(2024, 6, 10), domain.BookingDaily, date(2024, 6, 11)},
		{date(2024, 6, 28), domain.BookingWeekly, date(2024, 7, 5)},
		{date(2024, 6, 10), domain.BookingMonthly, date(2024, 7, 10)},
		{date(2024, 1, 31), domain.BookingMonthly, date(2024, 2, 29)},
		{date(2023, 1, 31), domain.BookingMonthly, date(2023, 2, 28)},
		{date(2024, 12, 15), domain.BookingMonthly, date(2025, 1, 15)},
	}
	for _, tt := range tests {
		got, err := NextDueDate(tt.from, tt.bt)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s from %s", tt.bt, tt.from.Format("2006-01-02"))
	}

	_, err := NextDueDate(date(2024, 1, 1), "hourly")
	assert.Error(t, err)
}

func TestEffectivePaymentStatus(t *testing.T) {
	today := date(2024, 6, 12)
	tests := []struct {
		name   string
		due    *time.Time
		status domain.PaymentStatus
		want   domain.PaymentStatus
	}{
		{"paid, due later", ptr(date(2024, 7, 12)), domain.PaymentPaid, domain.PaymentPaid},
		{"paid, due today re-arms", ptr(today), domain.PaymentPaid, domain.PaymentPending},
		{"paid, due passed", ptr(date(2024, 6, 11)), domain.PaymentPaid, domain.PaymentOverdue},
		{"pending, due passed", ptr(date(2024, 6, 11)), domain.PaymentPending, domain.PaymentOverdue},
		{"pending, due today", ptr(today), domain.PaymentPending, domain.PaymentPending},
		{"overdue, moved forward", ptr(date(2024, 6, 20)), domain.PaymentOverdue, domain.PaymentPending},
		{"no due date keeps status", nil, domain.PaymentPaid, domain.PaymentPaid},
		{"empty status", ptr(date(2024, 6, 20)), "", domain.PaymentPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.Guest{NextPaymentDue: tt.due, PaymentStatus: tt.status}
			assert.Equal(t, tt.want, EffectivePaymentStatus(g, today))
		})
	}
}
