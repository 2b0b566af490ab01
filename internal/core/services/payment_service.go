package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService handles payment ledger business logic
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	guestRepo   repositories.GuestRepository
	roomRepo    repositories.RoomRepository
	events      events.Publisher
	clock       Clock
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	guestRepo repositories.GuestRepository,
	roomRepo repositories.RoomRepository,
	publisher events.Publisher,
	clock Clock,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		guestRepo:   guestRepo,
		roomRepo:    roomRepo,
		events:      publisherOrNop(publisher),
		clock:       clock,
	}
}

// CreatePaymentInput records a payment that does not move a due date
type CreatePaymentInput struct {
	GuestID     *uint           `json:"guest_id"`
	RoomID      *uint           `json:"room_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" validate:"required,payment_method"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Reference   string          `json:"reference" validate:"max=64"`
	Notes       string          `json:"notes"`
}

// List returns payments with pagination
func (s *PaymentService) List(ctx context.Context, auth domain.AuthContext, filter repositories.PaymentFilter, offset, limit int) ([]*models.Payment, int64, error) {
	if err := requireAuth(auth); err != nil {
		return nil, 0, err
	}
	return s.paymentRepo.List(ctx, filter, offset, limit)
}

// Get returns one payment
func (s *PaymentService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*models.Payment, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payment", id)
	}
	return payment, nil
}

// Create records a payment. A repeated reference returns the stored payment
// and reports created=false.
func (s *PaymentService) Create(ctx context.Context, auth domain.AuthContext, input *CreatePaymentInput) (*models.Payment, bool, error) {
	if err := requireAuth(auth); err != nil {
		return nil, false, err
	}
	if !domain.IsValidPaymentMethod(input.Method) {
		return nil, false, domain.NewValidationError(domain.CodeInvalidValue, "method", "must be cash, transfer, card or other")
	}
	if input.Amount.IsNegative() {
		return nil, false, domain.NewValidationError(domain.CodeNegativeAmount, "amount", "must not be negative")
	}

	reference := strings.TrimSpace(input.Reference)
	if reference != "" {
		existing, err := s.paymentRepo.GetByReference(ctx, reference)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	} else {
		reference = uuid.New().String()
	}

	paidOn := dateOnly(s.clock.Today())
	if input.PaymentDate != "" {
		var err error
		if paidOn, err = parseDate("payment_date", input.PaymentDate); err != nil {
			return nil, false, err
		}
	}

	roomID := input.RoomID
	if input.GuestID != nil {
		guest, err := s.guestRepo.GetByID(ctx, *input.GuestID)
		if err != nil {
			return nil, false, notFound(err, "guest", *input.GuestID)
		}
		if roomID == nil {
			roomID = guest.RoomID
		}
	}
	if roomID != nil {
		if _, err := s.roomRepo.GetByID(ctx, *roomID); err != nil {
			return nil, false, notFound(err, "room", *roomID)
		}
	}

	payment := &models.Payment{
		GuestID:     input.GuestID,
		RoomID:      roomID,
		Amount:      input.Amount,
		PaymentDate: paidOn,
		Method:      input.Method,
		Status:      models.PaymentCompleted,
		Reference:   reference,
		Notes:       input.Notes,
		RecordedBy:  auth.UserID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, false, fmt.Errorf("create payment: %w", err)
	}

	s.events.Publish(EntityPayment, events.TypeCreated, payment.ID)
	return payment, true, nil
}

// PaymentStatusInput refunds a payment or reinstates a refunded one
type PaymentStatusInput struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// UpdateStatus marks a payment refunded or completed (admin only). Refunded
// payments no longer count as revenue; the guest's due date is not touched.
func (s *PaymentService) UpdateStatus(ctx context.Context, auth domain.AuthContext, id uint, input *PaymentStatusInput) (*models.Payment, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != models.PaymentCompleted && status != models.PaymentRefunded {
		return nil, domain.NewValidationError(domain.CodeInvalidStatus, "status", "must be completed or refunded")
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payment", id)
	}
	if payment.Status == status {
		return payment, nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update payment %d: %w", id, err)
	}
	previous := payment.Status
	payment.Status = status

	log.Printf("✅ Payment %s: %s → %s by %s %s", payment.Reference, previous, status, auth.Username, strings.TrimSpace(input.Notes))
	s.events.Publish(EntityPayment, events.TypeUpdated, id)
	return payment, nil
}

// Delete removes a payment (admin only)
func (s *PaymentService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		return notFound(err, "payment", id)
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}
	s.events.Publish(EntityPayment, events.TypeDeleted, id)
	return nil
}
