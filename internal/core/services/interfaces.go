package services

import (
	"context"

	"rentdesk/internal/core/domain"
)

// Notifier delivers operator notifications (reminders, alerts)
type Notifier interface {
	IsEnabled() bool
	NotifyDueReminder(ctx context.Context, due, overdue []domain.Guest) error
	NotifyPartialFailure(ctx context.Context, pf *domain.PartialFailureError)
}
