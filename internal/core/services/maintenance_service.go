package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"gorm.io/datatypes"
)

// MaintenanceService manages repair tickets
type MaintenanceService struct {
	repo     repositories.MaintenanceRepository
	roomRepo repositories.RoomRepository
	audit    auditor
	events   events.Publisher
	clock    Clock
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	repo repositories.MaintenanceRepository,
	roomRepo repositories.RoomRepository,
	activityRepo repositories.ActivityRepository,
	publisher events.Publisher,
	clock Clock,
) *MaintenanceService {
	return &MaintenanceService{
		repo:     repo,
		roomRepo: roomRepo,
		audit:    auditor{repo: activityRepo},
		events:   publisherOrNop(publisher),
		clock:    clock,
	}
}

// CreateMaintenanceInput files a new ticket
type CreateMaintenanceInput struct {
	RoomID      uint     `json:"room_id" validate:"required"`
	Priority    string   `json:"priority" validate:"omitempty,priority"`
	Description string   `json:"description" validate:"notblank"`
	ReportedBy  string   `json:"reported_by" validate:"max=100"`
	Photos      []string `json:"photos" validate:"dive,url"`
}

// UpdateMaintenanceInput edits a ticket
type UpdateMaintenanceInput struct {
	Priority    *string  `json:"priority" validate:"omitempty,priority"`
	Description *string  `json:"description" validate:"omitempty,notblank"`
	Photos      []string `json:"photos" validate:"omitempty,dive,url"`
}

// MaintenanceStatusInput moves a ticket through its workflow
type MaintenanceStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// List returns tickets with pagination
func (s *MaintenanceService) List(ctx context.Context, auth domain.AuthContext, filter repositories.MaintenanceFilter, offset, limit int) ([]*models.MaintenanceRequest, int64, error) {
	if err := requireAuth(auth); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter, offset, limit)
}

// Get returns one ticket
func (s *MaintenanceService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*models.MaintenanceRequest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "maintenance request", id)
	}
	return req, nil
}

// Create files a ticket for a room
func (s *MaintenanceService) Create(ctx context.Context, auth domain.AuthContext, input *CreateMaintenanceInput) (*models.MaintenanceRequest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.NewValidationError(domain.CodeRequired, "description", "is required")
	}
	priority := domain.MaintenancePriority(input.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, "priority", "must be urgent, normal or low")
	}
	if _, err := s.roomRepo.GetByID(ctx, input.RoomID); err != nil {
		return nil, notFound(err, "room", input.RoomID)
	}

	reportedBy := strings.TrimSpace(input.ReportedBy)
	if reportedBy == "" {
		reportedBy = auth.Username
	}
	req := &models.MaintenanceRequest{
		RoomID:      input.RoomID,
		Priority:    string(priority),
		Status:      string(domain.MaintenanceSubmitted),
		Description: strings.TrimSpace(input.Description),
		ReportedBy:  reportedBy,
	}
	if err := setPhotos(req, input.Photos); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create maintenance request: %w", err)
	}

	s.audit.record(ctx, auth, EntityMaintenance, req.ID, models.ActionCreate, "", req.Status, req.Description)
	s.events.Publish(EntityMaintenance, events.TypeCreated, req.ID)
	return req, nil
}

// Update edits priority, description or photos
func (s *MaintenanceService) Update(ctx context.Context, auth domain.AuthContext, id uint, input *UpdateMaintenanceInput) (*models.MaintenanceRequest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "maintenance request", id)
	}

	if input.Priority != nil {
		p := domain.MaintenancePriority(*input.Priority)
		if !p.IsValid() {
			return nil, domain.NewValidationError(domain.CodeInvalidValue, "priority", "must be urgent, normal or low")
		}
		req.Priority = string(p)
	}
	if input.Description != nil {
		req.Description = strings.TrimSpace(*input.Description)
	}
	if input.Photos != nil {
		if err := setPhotos(req, input.Photos); err != nil {
			return nil, err
		}
	}

	req.Room = nil
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("update maintenance request %d: %w", id, err)
	}
	s.events.Publish(EntityMaintenance, events.TypeUpdated, id)
	return req, nil
}

// UpdateStatus moves a ticket to status. Completing stamps CompletedAt,
// reopening clears it.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, auth domain.AuthContext, id uint, input *MaintenanceStatusInput) (*models.MaintenanceRequest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	status := domain.MaintenanceStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "in-progress" {
		status = domain.MaintenanceInProgress
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidStatus, "status", "must be submitted, in_progress or completed")
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "maintenance request", id)
	}
	previous := req.Status
	if previous == string(status) {
		return req, nil
	}

	req.Status = string(status)
	if status == domain.MaintenanceCompleted {
		now := s.clock.Today()
		req.CompletedAt = &now
	} else {
		req.CompletedAt = nil
	}

	req.Room = nil
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("update maintenance request %d: %w", id, err)
	}

	s.audit.record(ctx, auth, EntityMaintenance, id, models.ActionStatusChange, previous, req.Status, "")
	s.events.Publish(EntityMaintenance, events.TypeUpdated, id)
	return req, nil
}

// Delete removes a ticket
func (s *MaintenanceService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFound(err, "maintenance request", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete maintenance request %d: %w", id, err)
	}
	s.events.Publish(EntityMaintenance, events.TypeDeleted, id)
	return nil
}

func setPhotos(req *models.MaintenanceRequest, photos []string) error {
	if len(photos) == 0 {
		req.Photos = nil
		return nil
	}
	raw, err := json.Marshal(photos)
	if err != nil {
		return err
	}
	req.Photos = datatypes.JSON(raw)
	return nil
}
