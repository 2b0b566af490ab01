package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentdesk/internal/core/rules"

	"github.com/robfig/cron/v3"
)

// CronSchedules holds the background job schedules (six-field, with seconds)
type CronSchedules struct {
	PaymentSweep string
	DueReminder  string
	TokenPurge   string
}

// CronService runs the periodic payment sweep, due reminder and token purge
type CronService struct {
	cron      *cron.Cron
	schedules CronSchedules
	guests    *GuestService
	auth      *AuthService
	notifier  Notifier
	timeout   time.Duration
}

// NewCronService creates a new scheduler running in the clock's timezone
func NewCronService(schedules CronSchedules, guests *GuestService, auth *AuthService, notifier Notifier, clock Clock) *CronService {
	loc := clock.Location
	if loc == nil {
		loc = time.Local
	}
	return &CronService{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		schedules: schedules,
		guests:    guests,
		auth:      auth,
		notifier:  notifier,
		timeout:   4 * time.Minute,
	}
}

// Start registers the jobs and starts the scheduler. An empty schedule
// skips that job.
func (s *CronService) Start() error {
	jobs := []struct {
		name     string
		schedule string
		run      func(ctx context.Context) error
	}{
		{"payment sweep", s.schedules.PaymentSweep, s.runSweep},
		{"due reminder", s.schedules.DueReminder, s.SendDueReminder},
		{"token purge", s.schedules.TokenPurge, s.purgeTokens},
	}

	for _, job := range jobs {
		if job.schedule == "" {
			continue
		}
		job := job
		if _, err := s.cron.AddFunc(job.schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if err := job.run(ctx); err != nil {
				log.Printf("❌ Cron %s failed: %v", job.name, err)
			}
		}); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", job.name, job.schedule, err)
		}
		log.Printf("⏱️ Cron %s scheduled: %s", job.name, job.schedule)
	}

	s.cron.Start()
	log.Println("✅ Scheduler started")
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// SweepPayments persists the current payment status of every tracked guest
func (s *CronService) SweepPayments(ctx context.Context) (int, error) {
	changed, err := s.guests.SweepPaymentStatuses(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("✅ Payment sweep: %d guest(s) updated", changed)
	return changed, nil
}

func (s *CronService) runSweep(ctx context.Context) error {
	_, err := s.SweepPayments(ctx)
	return err
}

// SendDueReminder notifies the webhook with guests due today and overdue
func (s *CronService) SendDueReminder(ctx context.Context) error {
	if s.notifier == nil || !s.notifier.IsEnabled() {
		return nil
	}
	tracked, err := s.guests.Tracked(ctx)
	if err != nil {
		return err
	}
	today := s.guests.clock.Today()

	due := rules.SelectPaymentsDue(tracked, rules.Today(today))
	overdue := rules.SelectOverdue(tracked, today)
	if err := s.notifier.NotifyDueReminder(ctx, due, overdue); err != nil {
		return err
	}
	log.Printf("📡 Due reminder sent: %d due today, %d overdue", len(due), len(overdue))
	return nil
}

func (s *CronService) purgeTokens(ctx context.Context) error {
	if s.auth == nil {
		return nil
	}
	n, err := s.auth.PurgeExpiredTokens(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("🧹 Purged %d expired refresh token(s)", n)
	}
	return nil
}
