package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"gorm.io/gorm"
)

// Entities published on the event hub and recorded in the activity trail
const (
	EntityBuilding    = "building"
	EntityRoom        = "room"
	EntityGuest       = "guest"
	EntityPayment     = "payment"
	EntityReceipt     = "receipt"
	EntityMaintenance = "maintenance"
	EntityInquiry     = "inquiry"
)

// Clock supplies "now" in the business timezone
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a clock in loc (time.Local when nil)
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// Today returns the current instant in the business timezone
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location == nil {
		return now()
	}
	return now().In(c.Location)
}

// dateOnly returns t's calendar date as midnight UTC, the form dates are stored in
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireAuth(auth domain.AuthContext) error {
	if !auth.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	return nil
}

func requireAdmin(auth domain.AuthContext) error {
	if err := requireAuth(auth); err != nil {
		return err
	}
	if !auth.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// notFound maps gorm's missing-row error onto domain.ErrNotFound
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return err
}

// auditor writes activity rows; failures are logged, never returned
type auditor struct {
	repo repositories.ActivityRepository
}

func (a auditor) record(ctx context.Context, auth domain.AuthContext, entity string, id uint, action, from, to, description string) {
	if a.repo == nil {
		return
	}
	err := a.repo.Create(ctx, &models.Activity{
		Entity:      entity,
		EntityID:    id,
		Action:      action,
		FromValue:   from,
		ToValue:     to,
		Description: description,
		PerformedBy: auth.Username,
	})
	if err != nil {
		log.Printf("⚠️ Failed to record %s activity for %s %d: %v", action, entity, id, err)
	}
}

func publisherOrNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Nop{}
	}
	return p
}
