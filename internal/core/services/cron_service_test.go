package services

import (
	"context"
	"testing"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_SweepAndReminder(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r1 := env.room(t, b.ID, "101", domain.RoomAvailable)
	r2 := env.room(t, b.ID, "102", domain.RoomAvailable)
	dueToday := env.guest(t, r1.ID, "2024-06-12", "1000")
	late := env.guest(t, r2.ID, "2024-06-20", "2000")
	require.NoError(t, env.db.Model(&models.Guest{}).Where("id = ?", late.ID).
		Updates(map[string]interface{}{"payment_status": "paid", "next_payment_due": date(2024, 6, 1)}).Error)

	cron := NewCronService(CronSchedules{}, env.guests, nil, env.notifier, env.clock)

	changed, err := cron.SweepPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	require.NoError(t, cron.SendDueReminder(context.Background()))
	require.Len(t, env.notifier.due, 1)
	assert.Equal(t, dueToday.ID, env.notifier.due[0].ID)
	require.Len(t, env.notifier.overdue, 1)
	assert.Equal(t, late.ID, env.notifier.overdue[0].ID)
}

func TestCronService_StartRejectsBadSchedule(t *testing.T) {
	env := newTestEnv(t)

	cron := NewCronService(CronSchedules{PaymentSweep: "every tuesday-ish"}, env.guests, nil, nil, env.clock)
	assert.Error(t, cron.Start())

	ok := NewCronService(CronSchedules{TokenPurge: "@every 1h"}, env.guests, nil, nil, env.clock)
	require.NoError(t, ok.Start())
	ok.Stop()
}

func TestCronService_ReminderSkippedWhenDisabled(t *testing.T) {
	env := newTestEnv(t)
	cron := NewCronService(CronSchedules{}, env.guests, nil, NewNotificationService("", 0), env.clock)
	assert.NoError(t, cron.SendDueReminder(context.Background()))
}
