package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"rentdesk/internal/core/domain"
)

// NotificationService posts operator notifications to a webhook
type NotificationService struct {
	webhookURL string
	client     *http.Client
	enabled    bool
}

// NewNotificationService creates a new notification service. An empty URL
// disables it.
func NewNotificationService(webhookURL string, timeout time.Duration) *NotificationService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NotificationService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		enabled:    webhookURL != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// webhookMessage is the JSON body sent to the webhook
type webhookMessage struct {
	Event string      `json:"event"`
	Text  string      `json:"text"`
	Data  interface{} `json:"data,omitempty"`
	At    time.Time   `json:"at"`
}

// dueEntry is one guest in a reminder
type dueEntry struct {
	GuestID uint   `json:"guest_id"`
	Name    string `json:"name"`
	RoomID  *uint  `json:"room_id,omitempty"`
	Due     string `json:"due"`
	Amount  string `json:"amount"`
}

// send posts a message to the webhook
func (s *NotificationService) send(ctx context.Context, msg webhookMessage) error {
	if !s.enabled {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

// NotifyDueReminder sends the daily list of guests due today and overdue
func (s *NotificationService) NotifyDueReminder(ctx context.Context, due, overdue []domain.Guest) error {
	if len(due) == 0 && len(overdue) == 0 {
		return nil
	}

	text := fmt.Sprintf("⏰ Payment reminder\n\n📅 Due today: %d\n⚠️ Overdue: %d", len(due), len(overdue))
	return s.send(ctx, webhookMessage{
		Event: "payments.reminder",
		Text:  text,
		Data: map[string][]dueEntry{
			"due_today": toDueEntries(due),
			"overdue":   toDueEntries(overdue),
		},
		At: time.Now(),
	})
}

// NotifyPartialFailure alerts operators that a two-step write stopped halfway
func (s *NotificationService) NotifyPartialFailure(ctx context.Context, pf *domain.PartialFailureError) {
	text := fmt.Sprintf("❌ %s stopped at %s\n\n🔁 Retry: %s (id %d)", pf.Operation, pf.Failed, pf.RetryAction, pf.ResourceID)
	err := s.send(ctx, webhookMessage{
		Event: "operation.partial_failure",
		Text:  text,
		Data:  pf,
		At:    time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ Failed to send partial-failure notification: %v", err)
	}
}

func toDueEntries(guests []domain.Guest) []dueEntry {
	out := make([]dueEntry, 0, len(guests))
	for _, g := range guests {
		e := dueEntry{
			GuestID: g.ID,
			Name:    g.Name,
			RoomID:  g.RoomID,
			Amount:  g.PaymentAmount.StringFixed(2),
		}
		if g.NextPaymentDue != nil {
			e.Due = g.NextPaymentDue.Format(DateLayout)
		}
		out = append(out, e)
	}
	return out
}
