package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"gorm.io/datatypes"
)

// InquiryService handles contact-form submissions
type InquiryService struct {
	repo   repositories.InquiryRepository
	events events.Publisher
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(repo repositories.InquiryRepository, publisher events.Publisher) *InquiryService {
	return &InquiryService{repo: repo, events: publisherOrNop(publisher)}
}

// CreateInquiryInput is submitted by prospective guests
type CreateInquiryInput struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Email       string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone       string `json:"phone" validate:"max=30"`
	Message     string `json:"message" validate:"max=2000"`
	BookingType string `json:"booking_type" validate:"omitempty,booking_type"`
}

// InquiryStatusInput moves an inquiry through follow-up
type InquiryStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// Create stores an inquiry. It needs no authentication; meta carries
// request details such as the client IP.
func (s *InquiryService) Create(ctx context.Context, input *CreateInquiryInput, meta map[string]interface{}) (*models.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.CodeRequired, "name", "is required")
	}
	if strings.TrimSpace(input.Email) == "" && strings.TrimSpace(input.Phone) == "" {
		return nil, domain.NewValidationError(domain.CodeRequired, "email", "email or phone is required")
	}

	inquiry := &models.Inquiry{
		Name:        name,
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Message:     strings.TrimSpace(input.Message),
		BookingType: input.BookingType,
		Status:      string(domain.InquiryNew),
	}
	if len(meta) > 0 {
		inquiry.Metadata = datatypes.JSONMap(meta)
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	log.Printf("📩 New inquiry from %s (id=%d)", inquiry.Name, inquiry.ID)
	s.events.Publish(EntityInquiry, events.TypeCreated, inquiry.ID)
	return inquiry, nil
}

// List returns inquiries with pagination
func (s *InquiryService) List(ctx context.Context, auth domain.AuthContext, status string, offset, limit int) ([]*models.Inquiry, int64, error) {
	if err := requireAuth(auth); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, strings.ToLower(strings.TrimSpace(status)), offset, limit)
}

// UpdateStatus marks an inquiry contacted or closed
func (s *InquiryService) UpdateStatus(ctx context.Context, auth domain.AuthContext, id uint, input *InquiryStatusInput) (*models.Inquiry, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	status := domain.InquiryStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !status.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidStatus, "status", "must be new, contacted or closed")
	}

	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "inquiry", id)
	}
	inquiry.Status = string(status)
	if err := s.repo.Update(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("update inquiry %d: %w", id, err)
	}

	s.events.Publish(EntityInquiry, events.TypeUpdated, id)
	return inquiry, nil
}

// Delete removes an inquiry (admin only)
func (s *InquiryService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFound(err, "inquiry", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inquiry %d: %w", id, err)
	}
	s.events.Publish(EntityInquiry, events.TypeDeleted, id)
	return nil
}
