package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_PostsReminder(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotificationService(srv.URL, time.Second)
	require.True(t, n.IsEnabled())

	due := date(2024, 6, 12)
	err := n.NotifyDueReminder(context.Background(), []domain.Guest{
		{ID: 3, Name: "Jane", NextPaymentDue: &due, PaymentAmount: decimal.RequireFromString("4500")},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "payments.reminder", got["event"])
	assert.Contains(t, got["text"], "Due today: 1")

	data, ok := got["data"].(map[string]interface{})
	require.True(t, ok)
	dueToday, ok := data["due_today"].([]interface{})
	require.True(t, ok)
	require.Len(t, dueToday, 1)
	entry := dueToday[0].(map[string]interface{})
	assert.Equal(t, "Jane", entry["name"])
	assert.Equal(t, "2024-06-12", entry["due"])
	assert.Equal(t, "4500.00", entry["amount"])
}

func TestNotificationService_ReportsWebhookErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotificationService(srv.URL, time.Second)
	err := n.NotifyDueReminder(context.Background(), []domain.Guest{{ID: 1, Name: "A"}}, nil)
	assert.Error(t, err)
}

func TestNotificationService_DisabledIsNoop(t *testing.T) {
	n := NewNotificationService("", 0)
	assert.False(t, n.IsEnabled())
	assert.NoError(t, n.NotifyDueReminder(context.Background(), []domain.Guest{{ID: 1}}, nil))
	n.NotifyPartialFailure(context.Background(), &domain.PartialFailureError{Operation: "move_out"})
}
