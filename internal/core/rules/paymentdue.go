package rules

import (
	"fmt"
	"log"
	"sort"
	"time"

	"rentdesk/internal/core/domain"
)

// ThisWeek returns the Sunday-to-Saturday week containing today
func ThisWeek(today time.Time) DateRange {
	start := civil(today).AddDate(0, 0, -int(today.Weekday()))
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// Today returns a single-day range
func Today(today time.Time) DateRange {
	d := civil(today)
	return DateRange{Start: d, End: d}
}

// IsTracked reports whether a guest belongs in payment-tracking views
func IsTracked(g domain.Guest) bool {
	return g.IsActive && !g.HasMovedOut
}

// SelectPaymentsDue returns tracked guests whose next payment falls in window,
// ordered by due date. Guests without a due date are skipped.
func SelectPaymentsDue(guests []domain.Guest, window DateRange) []domain.Guest {
	out := make([]domain.Guest, 0)
	for _, g := range guests {
		if !IsTracked(g) {
			continue
		}
		if g.NextPaymentDue == nil || g.NextPaymentDue.IsZero() {
			log.Printf("⚠️ Guest %d (%s) has no next payment due date, skipped", g.ID, g.Name)
			continue
		}
		if window.Contains(*g.NextPaymentDue) {
			out = append(out, g)
		}
	}
	sortByDue(out)
	return out
}

// IsOverdue reports whether the guest's payment date has passed unpaid
func IsOverdue(g domain.Guest, today time.Time) bool {
	if g.NextPaymentDue == nil || g.NextPaymentDue.IsZero() {
		return false
	}
	return BeforeDay(*g.NextPaymentDue, today) && g.PaymentStatus != domain.PaymentPaid
}

// IsDueToday reports whether the guest's next payment is due on today's date
func IsDueToday(g domain.Guest, today time.Time) bool {
	if g.NextPaymentDue == nil || g.NextPaymentDue.IsZero() {
		return false
	}
	return SameDay(*g.NextPaymentDue, today)
}

// SelectOverdue returns tracked guests that are overdue, oldest debt first
func SelectOverdue(guests []domain.Guest, today time.Time) []domain.Guest {
	out := make([]domain.Guest, 0)
	for _, g := range guests {
		if IsTracked(g) && IsOverdue(g, today) {
			out = append(out, g)
		}
	}
	sortByDue(out)
	return out
}

// NextDueDate advances a due date by one booking period. Monthly advances
// keep the day of month, clamped to the last day of a shorter month.
func NextDueDate(due time.Time, bt domain.BookingType) (time.Time, error) {
	switch bt {
	case domain.BookingDaily:
		return due.AddDate(0, 0, 1), nil
	case domain.BookingWeekly:
		return due.AddDate(0, 0, 7), nil
	case domain.BookingMonthly:
		return addMonthClamped(due), nil
	}
	return time.Time{}, fmt.Errorf("unknown booking type %q", bt)
}

// EffectivePaymentStatus applies the re-arm rule: a paid guest goes back to
// pending once the new due date arrives, and an unpaid guest becomes overdue
// the day after. An overdue guest whose due date moved forward is pending.
func EffectivePaymentStatus(g domain.Guest, today time.Time) domain.PaymentStatus {
	status := g.PaymentStatus
	if status == "" {
		status = domain.PaymentPending
	}
	if g.NextPaymentDue == nil || g.NextPaymentDue.IsZero() {
		return status
	}
	due := *g.NextPaymentDue

	if status == domain.PaymentPaid && !BeforeDay(today, due) {
		status = domain.PaymentPending
	}
	if status != domain.PaymentPaid && BeforeDay(due, today) {
		return domain.PaymentOverdue
	}
	if status == domain.PaymentOverdue {
		return domain.PaymentPending
	}
	return status
}

func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfNext := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func sortByDue(guests []domain.Guest) {
	sort.SliceStable(guests, func(i, j int) bool {
		return dayKey(*guests[i].NextPaymentDue) < dayKey(*guests[j].NextPaymentDue)
	})
}
