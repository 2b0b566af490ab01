package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/rules"
	"rentdesk/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// GuestService manages guests and their payment cycle
type GuestService struct {
	guestRepo   repositories.GuestRepository
	roomRepo    repositories.RoomRepository
	paymentRepo repositories.PaymentRepository
	rooms       *RoomService
	notifier    Notifier
	audit       auditor
	events      events.Publisher
	clock       Clock
}

// NewGuestService creates a new guest service
func NewGuestService(
	guestRepo repositories.GuestRepository,
	roomRepo repositories.RoomRepository,
	paymentRepo repositories.PaymentRepository,
	rooms *RoomService,
	activityRepo repositories.ActivityRepository,
	publisher events.Publisher,
	notifier Notifier,
	clock Clock,
) *GuestService {
	return &GuestService{
		guestRepo:   guestRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
		rooms:       rooms,
		notifier:    notifier,
		audit:       auditor{repo: activityRepo},
		events:      publisherOrNop(publisher),
		clock:       clock,
	}
}

// CreateGuestInput represents a new guest booking
type CreateGuestInput struct {
	RoomID         *uint           `json:"room_id"`
	Name           string          `json:"name" validate:"notblank,max=100"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone" validate:"max=30"`
	BookingType    string          `json:"booking_type" validate:"required,booking_type"`
	CheckInDate    string          `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate   string          `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentAmount  decimal.Decimal `json:"payment_amount"`
	NextPaymentDue string          `json:"next_payment_due" validate:"omitempty,datetime=2006-01-02"`
	Notes          string          `json:"notes"`
}

// UpdateGuestInput represents a partial guest update
type UpdateGuestInput struct {
	Name           *string          `json:"name" validate:"omitempty,notblank,max=100"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Phone          *string          `json:"phone" validate:"omitempty,max=30"`
	BookingType    *string          `json:"booking_type" validate:"omitempty,booking_type"`
	CheckOutDate   *string          `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentAmount  *decimal.Decimal `json:"payment_amount"`
	NextPaymentDue *string          `json:"next_payment_due" validate:"omitempty,datetime=2006-01-02"`
	IsActive       *bool            `json:"is_active"`
	Notes          *string          `json:"notes"`
}

// PaymentReceivedInput records a payment against a guest's current due date
type PaymentReceivedInput struct {
	Amount      *decimal.Decimal `json:"amount"`
	Method      string           `json:"method" validate:"required,payment_method"`
	Reference   string           `json:"reference" validate:"max=64"`
	PaymentDate string           `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       string           `json:"notes"`
}

// PaymentReceivedResult is the outcome of MarkPaymentReceived
type PaymentReceivedResult struct {
	Payment  *models.Payment `json:"payment"`
	Guest    *models.Guest   `json:"guest"`
	Replayed bool            `json:"replayed"`
}

// MoveOutInput optionally back-dates a move-out
type MoveOutInput struct {
	MoveOutDate string `json:"move_out_date" validate:"omitempty,datetime=2006-01-02"`
}

// GuestFilter narrows guest listings
type GuestFilter = repositories.GuestFilter

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.CodeInvalidValue, field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns guests with pagination
func (s *GuestService) List(ctx context.Context, auth domain.AuthContext, filter GuestFilter, offset, limit int) ([]*models.Guest, int64, error) {
	if err := requireAuth(auth); err != nil {
		return nil, 0, err
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return s.guestRepo.List(ctx, filter, offset, limit)
}

// Get returns one guest
func (s *GuestService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*models.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "guest", id)
	}
	return guest, nil
}

// Create registers a guest. When a room is given it is marked occupied
// with the guest as tenant.
func (s *GuestService) Create(ctx context.Context, auth domain.AuthContext, input *CreateGuestInput) (*models.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.CodeRequired, "name", "is required")
	}
	bt := domain.BookingType(input.BookingType)
	if !bt.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, "booking_type", "must be daily, weekly or monthly")
	}
	if input.PaymentAmount.IsNegative() {
		return nil, domain.NewValidationError(domain.CodeNegativeAmount, "payment_amount", "must not be negative")
	}
	checkIn, err := parseDate("check_in_date", input.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseOptionalDate("check_out_date", input.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if checkOut != nil && checkOut.Before(checkIn) {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, "check_out_date", "must not be before check_in_date")
	}
	due, err := parseOptionalDate("next_payment_due", input.NextPaymentDue)
	if err != nil {
		return nil, err
	}
	if due == nil {
		due = &checkIn
	}

	if input.RoomID != nil {
		if _, err := s.roomRepo.GetByID(ctx, *input.RoomID); err != nil {
			return nil, notFound(err, "room", *input.RoomID)
		}
		active, err := s.guestRepo.CountActiveByRoom(ctx, *input.RoomID, 0)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, fmt.Errorf("room %d already has an active guest: %w", *input.RoomID, domain.ErrConflict)
		}
	}

	guest := &models.Guest{
		RoomID:        input.RoomID,
		Name:          name,
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		BookingType:   string(bt),
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		PaymentAmount: input.PaymentAmount,
		PaymentStatus: string(domain.PaymentPending),
		IsActive:      true,
		Notes:         input.Notes,
	}
	guest.NextPaymentDue = due
	guest.PaymentStatus = string(rules.EffectivePaymentStatus(guest.ToDomain(), s.clock.Today()))

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	s.audit.record(ctx, auth, EntityGuest, guest.ID, models.ActionCreate, "", guest.PaymentStatus, guest.Name)
	s.events.Publish(EntityGuest, events.TypeCreated, guest.ID)

	if guest.RoomID != nil {
		if err := s.rooms.occupy(ctx, auth, *guest.RoomID, guest); err != nil {
			return guest, &domain.PartialFailureError{
				Operation:   "create_guest",
				Completed:   []string{"guest_created"},
				Failed:      "occupy_room",
				RetryAction: domain.RetryOccupyRoom,
				ResourceID:  *guest.RoomID,
				Err:         err,
			}
		}
	}

	log.Printf("✅ Guest created: %s (id=%d)", guest.Name, guest.ID)
	return guest, nil
}

// Update changes guest details. Moving the due date re-evaluates the
// payment status.
func (s *GuestService) Update(ctx context.Context, auth domain.AuthContext, id uint, input *UpdateGuestInput) (*models.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}

	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "guest", id)
	}

	if input.Name != nil {
		guest.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		guest.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		guest.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.BookingType != nil {
		guest.BookingType = *input.BookingType
	}
	if input.CheckOutDate != nil {
		guest.CheckOutDate, err = parseOptionalDate("check_out_date", *input.CheckOutDate)
		if err != nil {
			return nil, err
		}
	}
	if input.PaymentAmount != nil {
		if input.PaymentAmount.IsNegative() {
			return nil, domain.NewValidationError(domain.CodeNegativeAmount, "payment_amount", "must not be negative")
		}
		guest.PaymentAmount = *input.PaymentAmount
	}
	if input.NextPaymentDue != nil {
		guest.NextPaymentDue, err = parseOptionalDate("next_payment_due", *input.NextPaymentDue)
		if err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		guest.IsActive = *input.IsActive && !guest.HasMovedOut
	}
	if input.Notes != nil {
		guest.Notes = *input.Notes
	}

	previous := guest.PaymentStatus
	guest.PaymentStatus = string(rules.EffectivePaymentStatus(guest.ToDomain(), s.clock.Today()))

	guest.Room = nil
	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, fmt.Errorf("update guest %d: %w", id, err)
	}

	s.audit.record(ctx, auth, EntityGuest, id, models.ActionUpdate, previous, guest.PaymentStatus, "details updated")
	s.events.Publish(EntityGuest, events.TypeUpdated, id)
	return guest, nil
}

// Delete removes a guest record (admin only)
func (s *GuestService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.guestRepo.GetByID(ctx, id); err != nil {
		return notFound(err, "guest", id)
	}
	if err := s.guestRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete guest %d: %w", id, err)
	}
	s.events.Publish(EntityGuest, events.TypeDeleted, id)
	return nil
}

// Tracked returns every active, not-moved-out guest with the payment
// status re-evaluated for today
func (s *GuestService) Tracked(ctx context.Context) ([]domain.Guest, error) {
	rows, err := s.guestRepo.ListTracked(ctx)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	guests := models.GuestsToDomain(rows)
	for i := range guests {
		guests[i].PaymentStatus = rules.EffectivePaymentStatus(guests[i], today)
	}
	return guests, nil
}

// PaymentsDue lists tracked guests whose next payment falls in window
func (s *GuestService) PaymentsDue(ctx context.Context, auth domain.AuthContext, window rules.DateRange) ([]domain.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	guests, err := s.Tracked(ctx)
	if err != nil {
		return nil, err
	}
	return rules.SelectPaymentsDue(guests, window), nil
}

// Overdue lists tracked guests past their due date and not paid
func (s *GuestService) Overdue(ctx context.Context, auth domain.AuthContext) ([]domain.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	guests, err := s.Tracked(ctx)
	if err != nil {
		return nil, err
	}
	return rules.SelectOverdue(guests, s.clock.Today()), nil
}

// MarkPaymentReceived records a payment and advances the guest's due date
// one booking period. Replaying the same reference never records a second
// payment; it only finishes the due-date advance if that step had failed.
func (s *GuestService) MarkPaymentReceived(ctx context.Context, auth domain.AuthContext, id uint, input *PaymentReceivedInput) (*PaymentReceivedResult, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	if !domain.IsValidPaymentMethod(input.Method) {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, "method", "must be cash, transfer, card or other")
	}

	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "guest", id)
	}

	reference := strings.TrimSpace(input.Reference)
	if reference != "" {
		existing, err := s.paymentRepo.GetByReference(ctx, reference)
		switch {
		case err == nil:
			return s.replayPayment(ctx, auth, guest, existing)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	} else {
		reference = uuid.New().String()
	}

	if guest.HasMovedOut {
		return nil, fmt.Errorf("guest %d has moved out: %w", id, domain.ErrConflict)
	}

	amount := guest.PaymentAmount
	if input.Amount != nil {
		amount = *input.Amount
	}
	if amount.IsNegative() {
		return nil, domain.NewValidationError(domain.CodeNegativeAmount, "amount", "must not be negative")
	}

	today := s.clock.Today()
	paidOn := dateOnly(today)
	if input.PaymentDate != "" {
		if paidOn, err = parseDate("payment_date", input.PaymentDate); err != nil {
			return nil, err
		}
	}

	base := dateOnly(today)
	if guest.NextPaymentDue != nil && !guest.NextPaymentDue.IsZero() {
		base = dateOnly(*guest.NextPaymentDue)
	}
	if _, err := rules.NextDueDate(base, domain.BookingType(guest.BookingType)); err != nil {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, "booking_type", err.Error())
	}

	payment := &models.Payment{
		GuestID:     &guest.ID,
		RoomID:      guest.RoomID,
		Amount:      amount,
		PaymentDate: paidOn,
		Method:      input.Method,
		Status:      models.PaymentCompleted,
		Reference:   reference,
		CoversDue:   &base,
		Notes:       input.Notes,
		RecordedBy:  auth.UserID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment for guest %d: %w", id, err)
	}
	s.events.Publish(EntityPayment, events.TypeCreated, payment.ID)

	if err := s.advanceDue(ctx, auth, guest, base); err != nil {
		return &PaymentReceivedResult{Payment: payment, Guest: guest}, s.partial(ctx, &domain.PartialFailureError{
			Operation:   "mark_payment_received",
			Completed:   []string{"payment_recorded"},
			Failed:      "advance_due",
			RetryAction: domain.RetryAdvanceDue,
			ResourceID:  guest.ID,
			Err:         err,
		})
	}

	log.Printf("✅ Payment received: guest=%d amount=%s ref=%s next_due=%s",
		guest.ID, amount.StringFixed(2), reference, guest.NextPaymentDue.Format(DateLayout))
	return &PaymentReceivedResult{Payment: payment, Guest: guest}, nil
}

// replayPayment handles a retried reference
func (s *GuestService) replayPayment(ctx context.Context, auth domain.AuthContext, guest *models.Guest, existing *models.Payment) (*PaymentReceivedResult, error) {
	if existing.GuestID == nil || *existing.GuestID != guest.ID {
		return nil, fmt.Errorf("payment reference %s belongs to another guest: %w", existing.Reference, domain.ErrConflict)
	}

	result := &PaymentReceivedResult{Payment: existing, Guest: guest, Replayed: true}

	// The due date still equals the one this payment covered: the advance never happened.
	if existing.CoversDue != nil && guest.NextPaymentDue != nil &&
		rules.SameDay(*existing.CoversDue, *guest.NextPaymentDue) {
		if err := s.advanceDue(ctx, auth, guest, dateOnly(*existing.CoversDue)); err != nil {
			return result, s.partial(ctx, &domain.PartialFailureError{
				Operation:   "mark_payment_received",
				Completed:   []string{"payment_recorded"},
				Failed:      "advance_due",
				RetryAction: domain.RetryAdvanceDue,
				ResourceID:  guest.ID,
				Err:         err,
			})
		}
		log.Printf("✅ Payment %s replayed: due date advanced for guest %d", existing.Reference, guest.ID)
	}
	return result, nil
}

func (s *GuestService) advanceDue(ctx context.Context, auth domain.AuthContext, guest *models.Guest, base time.Time) error {
	next, err := rules.NextDueDate(base, domain.BookingType(guest.BookingType))
	if err != nil {
		return err
	}
	fields := map[string]interface{}{
		"next_payment_due": next,
		"payment_status":   string(domain.PaymentPaid),
	}
	if err := s.guestRepo.UpdateFields(ctx, guest.ID, fields); err != nil {
		return err
	}

	previous := guest.PaymentStatus
	guest.NextPaymentDue = &next
	guest.PaymentStatus = string(domain.PaymentPaid)

	s.audit.record(ctx, auth, EntityGuest, guest.ID, models.ActionPaymentReceived, previous, guest.PaymentStatus,
		"next due "+next.Format(DateLayout))
	s.events.Publish(EntityGuest, events.TypeUpdated, guest.ID)
	return nil
}

// MarkMovedOut ends a stay: the guest is deactivated first, then the room is
// released. If the room write fails the guest stays moved out and the caller
// receives a PartialFailureError telling it to retry ReleaseRoom.
func (s *GuestService) MarkMovedOut(ctx context.Context, auth domain.AuthContext, id uint, input *MoveOutInput) (*models.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}

	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "guest", id)
	}

	moveOut := dateOnly(s.clock.Today())
	if input != nil && input.MoveOutDate != "" {
		if moveOut, err = parseDate("move_out_date", input.MoveOutDate); err != nil {
			return nil, err
		}
	}
	if guest.HasMovedOut && guest.MoveOutDate != nil {
		moveOut = *guest.MoveOutDate
	}

	leaving := !guest.HasMovedOut || guest.IsActive
	if leaving {
		fields := map[string]interface{}{
			"has_moved_out": true,
			"is_active":     false,
			"move_out_date": moveOut,
		}
		if err := s.guestRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("move out guest %d: %w", id, err)
		}
		guest.HasMovedOut = true
		guest.IsActive = false
		guest.MoveOutDate = &moveOut

		s.audit.record(ctx, auth, EntityGuest, id, models.ActionMoveOut, "", "", "moved out "+moveOut.Format(DateLayout))
		s.events.Publish(EntityGuest, events.TypeUpdated, id)
	}

	if guest.RoomID != nil {
		// A retry only finishes a release that never happened; the room may
		// have been cleaned or let again since.
		if _, _, err := s.rooms.release(ctx, auth, *guest.RoomID, leaving); err != nil {
			return guest, s.partial(ctx, &domain.PartialFailureError{
				Operation:   "move_out",
				Completed:   []string{"guest_moved_out"},
				Failed:      "release_room",
				RetryAction: domain.RetryReleaseRoom,
				ResourceID:  *guest.RoomID,
				Err:         err,
			})
		}
	}

	log.Printf("✅ Guest moved out: %s (id=%d)", guest.Name, guest.ID)
	return guest, nil
}

// SweepPaymentStatuses persists the re-evaluated payment status of every
// tracked guest and returns how many changed
func (s *GuestService) SweepPaymentStatuses(ctx context.Context) (int, error) {
	rows, err := s.guestRepo.ListTracked(ctx)
	if err != nil {
		return 0, err
	}

	today := s.clock.Today()
	changed := 0
	for _, row := range rows {
		next := rules.EffectivePaymentStatus(row.ToDomain(), today)
		if string(next) == row.PaymentStatus {
			continue
		}
		if err := s.guestRepo.UpdateFields(ctx, row.ID, map[string]interface{}{"payment_status": string(next)}); err != nil {
			log.Printf("❌ Payment sweep: guest %d: %v", row.ID, err)
			continue
		}
		s.audit.record(ctx, domain.SystemAuth(), EntityGuest, row.ID, models.ActionStatusChange, row.PaymentStatus, string(next), "payment sweep")
		changed++
	}

	if changed > 0 {
		s.events.Publish(EntityGuest, events.TypeUpdated, 0)
	}
	return changed, nil
}

// History returns the activity trail of a guest
func (s *GuestService) History(ctx context.Context, auth domain.AuthContext, id uint) ([]*models.Activity, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	if _, err := s.guestRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err, "guest", id)
	}
	if s.audit.repo == nil {
		return nil, nil
	}
	return s.audit.repo.ListByEntity(ctx, EntityGuest, id, 100)
}

func (s *GuestService) partial(ctx context.Context, pf *domain.PartialFailureError) error {
	log.Printf("❌ %v", pf)
	if s.notifier != nil && s.notifier.IsEnabled() {
		s.notifier.NotifyPartialFailure(ctx, pf)
	}
	return pf
}
