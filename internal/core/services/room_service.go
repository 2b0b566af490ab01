package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/rules"
	"rentdesk/internal/events"

	"github.com/shopspring/decimal"
)

// RoomService manages rooms and their status board
type RoomService struct {
	roomRepo        repositories.RoomRepository
	buildingRepo    repositories.BuildingRepository
	guestRepo       repositories.GuestRepository
	maintenanceRepo repositories.MaintenanceRepository
	audit           auditor
	events          events.Publisher
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo repositories.RoomRepository,
	buildingRepo repositories.BuildingRepository,
	guestRepo repositories.GuestRepository,
	maintenanceRepo repositories.MaintenanceRepository,
	activityRepo repositories.ActivityRepository,
	publisher events.Publisher,
) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		buildingRepo:    buildingRepo,
		guestRepo:       guestRepo,
		maintenanceRepo: maintenanceRepo,
		audit:           auditor{repo: activityRepo},
		events:          publisherOrNop(publisher),
	}
}

// CreateRoomInput represents a new room
type CreateRoomInput struct {
	Number       string          `json:"number" validate:"notblank,max=20"`
	BuildingID   uint            `json:"building_id" validate:"required"`
	Status       string          `json:"status" validate:"omitempty,room_status"`
	TenantName   string          `json:"tenant_name" validate:"max=100"`
	TenantPhone  string          `json:"tenant_phone" validate:"max=30"`
	TenantEmail  string          `json:"tenant_email" validate:"omitempty,email"`
	RentalRate   decimal.Decimal `json:"rental_rate"`
	RentalPeriod string          `json:"rental_period" validate:"omitempty,booking_type"`
	Floor        int             `json:"floor"`
	AccessPIN    string          `json:"access_pin" validate:"omitempty,numeric,min=4,max=12"`
}

// UpdateRoomInput represents a partial room update.
// Status changes go through ChangeStatus.
type UpdateRoomInput struct {
	Number       *string          `json:"number" validate:"omitempty,notblank,max=20"`
	BuildingID   *uint            `json:"building_id"`
	RentalRate   *decimal.Decimal `json:"rental_rate"`
	RentalPeriod *string          `json:"rental_period" validate:"omitempty,booking_type"`
	Floor        *int             `json:"floor"`
	AccessPIN    *string          `json:"access_pin" validate:"omitempty,numeric,min=4,max=12"`
}

// ChangeStatusInput is a requested room status transition
type ChangeStatusInput struct {
	Status      string  `json:"status" validate:"required"`
	Notes       string  `json:"notes"`
	Priority    string  `json:"priority" validate:"omitempty,priority"`
	TenantName  *string `json:"tenant_name"`
	TenantPhone *string `json:"tenant_phone"`
	TenantEmail *string `json:"tenant_email"`
}

// StatusChangeResult is what ChangeStatus returns
type StatusChangeResult struct {
	Room               *models.Room               `json:"room"`
	Transition         rules.TransitionResult     `json:"transition"`
	MaintenanceRequest *models.MaintenanceRequest `json:"maintenance_request,omitempty"`
}

// List returns rooms, optionally filtered by building and status
func (s *RoomService) List(ctx context.Context, auth domain.AuthContext, buildingID *uint, status string) ([]*models.Room, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	filter := repositories.RoomFilter{BuildingID: buildingID}
	if status != "" {
		st := domain.NormalizeRoomStatus(status)
		if !st.IsValid() {
			return nil, domain.NewValidationError(domain.CodeInvalidStatus, "status", fmt.Sprintf("unknown room status %q", status))
		}
		filter.Status = string(st)
	}
	return s.roomRepo.List(ctx, filter)
}

// Get returns one room
func (s *RoomService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*models.Room, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "room", id)
	}
	return room, nil
}

// Create adds a room to a building
func (s *RoomService) Create(ctx context.Context, auth domain.AuthContext, input *CreateRoomInput) (*models.Room, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, domain.NewValidationError(domain.CodeRequired, "number", "is required")
	}
	if input.RentalRate.IsNegative() {
		return nil, domain.NewValidationError(domain.CodeNegativeAmount, "rental_rate", "must not be negative")
	}

	status := domain.RoomAvailable
	if input.Status != "" {
		status = domain.NormalizeRoomStatus(input.Status)
		if !status.IsValid() {
			return nil, domain.NewValidationError(domain.CodeInvalidStatus, "status", fmt.Sprintf("unknown room status %q", input.Status))
		}
	}

	if _, err := s.buildingRepo.GetByID(ctx, input.BuildingID); err != nil {
		return nil, notFound(err, "building", input.BuildingID)
	}
	if err := s.ensureUniqueNumber(ctx, input.BuildingID, number, 0); err != nil {
		return nil, err
	}

	room := &models.Room{
		Number:       number,
		BuildingID:   input.BuildingID,
		Status:       string(status),
		RentalRate:   input.RentalRate,
		RentalPeriod: input.RentalPeriod,
		Floor:        input.Floor,
		AccessPIN:    input.AccessPIN,
	}
	if !status.ClearsTenant() {
		room.TenantName = strings.TrimSpace(input.TenantName)
		room.TenantPhone = strings.TrimSpace(input.TenantPhone)
		room.TenantEmail = strings.TrimSpace(input.TenantEmail)
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.audit.record(ctx, auth, EntityRoom, room.ID, models.ActionCreate, "", room.Status, "room "+room.Number)
	s.events.Publish(EntityRoom, events.TypeCreated, room.ID)
	return room, nil
}

// Update changes room details other than status
func (s *RoomService) Update(ctx context.Context, auth domain.AuthContext, id uint, input *UpdateRoomInput) (*models.Room, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "room", id)
	}

	if input.BuildingID != nil && *input.BuildingID != room.BuildingID {
		if _, err := s.buildingRepo.GetByID(ctx, *input.BuildingID); err != nil {
			return nil, notFound(err, "building", *input.BuildingID)
		}
		room.BuildingID = *input.BuildingID
		room.Building = nil
	}
	if input.Number != nil {
		room.Number = strings.TrimSpace(*input.Number)
	}
	if input.Number != nil || input.BuildingID != nil {
		if err := s.ensureUniqueNumber(ctx, room.BuildingID, room.Number, room.ID); err != nil {
			return nil, err
		}
	}
	if input.RentalRate != nil {
		if input.RentalRate.IsNegative() {
			return nil, domain.NewValidationError(domain.CodeNegativeAmount, "rental_rate", "must not be negative")
		}
		room.RentalRate = *input.RentalRate
	}
	if input.RentalPeriod != nil {
		room.RentalPeriod = *input.RentalPeriod
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.AccessPIN != nil {
		room.AccessPIN = *input.AccessPIN
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}

	s.audit.record(ctx, auth, EntityRoom, room.ID, models.ActionUpdate, "", "", "details updated")
	s.events.Publish(EntityRoom, events.TypeUpdated, room.ID)
	return room, nil
}

// Delete removes a room with no tracked guest (admin only)
func (s *RoomService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.roomRepo.GetByID(ctx, id); err != nil {
		return notFound(err, "room", id)
	}

	active, err := s.guestRepo.CountActiveByRoom(ctx, id, 0)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("room %d has an active guest: %w", id, domain.ErrConflict)
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}

	s.events.Publish(EntityRoom, events.TypeDeleted, id)
	return nil
}

// ChangeStatus validates and applies a status transition. Entering
// maintenance also files a maintenance request with the notes.
func (s *RoomService) ChangeStatus(ctx context.Context, auth domain.AuthContext, id uint, input *ChangeStatusInput) (*StatusChangeResult, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "room", id)
	}

	current := room.ToDomain()
	transition, err := rules.CanTransitionRoom(current.Status, domain.RoomStatus(input.Status), rules.TransitionPayload{
		Notes:       input.Notes,
		TenantName:  input.TenantName,
		TenantPhone: input.TenantPhone,
		TenantEmail: input.TenantEmail,
	})
	if err != nil {
		return nil, err
	}

	next := transition.Apply(current)
	if err := s.roomRepo.UpdateFields(ctx, id, statusFields(next)); err != nil {
		return nil, notFound(err, "room", id)
	}
	room.ApplyDomain(next)

	result := &StatusChangeResult{Room: room, Transition: transition}

	if transition.To == domain.RoomMaintenance {
		priority := domain.MaintenancePriority(input.Priority)
		if !priority.IsValid() {
			priority = domain.PriorityNormal
		}
		req := &models.MaintenanceRequest{
			RoomID:      id,
			Priority:    string(priority),
			Status:      string(domain.MaintenanceSubmitted),
			Description: transition.Notes,
			ReportedBy:  auth.Username,
		}
		if err := s.maintenanceRepo.Create(ctx, req); err != nil {
			log.Printf("⚠️ Room %d moved to maintenance but request was not filed: %v", id, err)
		} else {
			result.MaintenanceRequest = req
			s.events.Publish(EntityMaintenance, events.TypeCreated, req.ID)
		}
	}

	s.audit.record(ctx, auth, EntityRoom, id, models.ActionStatusChange,
		string(transition.From), string(transition.To), transition.Notes)
	s.events.Publish(EntityRoom, events.TypeUpdated, id)

	log.Printf("✅ Room %d status: %s → %s", id, transition.From, transition.To)
	return result, nil
}

// ReleaseRoom turns an occupied room over to housekeeping and clears the
// tenant. It is safe to call repeatedly; a room that has already been
// released or cleaned keeps its status. A room still held by an active
// guest is refused with ErrConflict.
func (s *RoomService) ReleaseRoom(ctx context.Context, auth domain.AuthContext, id uint) (*models.Room, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	room, held, err := s.release(ctx, auth, id, false)
	if err != nil {
		return nil, err
	}
	if held {
		return room, fmt.Errorf("room %d still has an active guest: %w", id, domain.ErrConflict)
	}
	return room, nil
}

// release clears the tenant of room id. turnover sends the room to
// housekeeping whatever its status (a guest has just left); otherwise only
// an occupied room changes status. A room with an active guest is returned
// untouched and held is true.
func (s *RoomService) release(ctx context.Context, auth domain.AuthContext, id uint, turnover bool) (room *models.Room, held bool, err error) {
	room, err = s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, notFound(err, "room", id)
	}

	active, err := s.guestRepo.CountActiveByRoom(ctx, id, 0)
	if err != nil {
		return nil, false, fmt.Errorf("count guests in room %d: %w", id, err)
	}
	if active > 0 {
		log.Printf("⚠️ Room %d not released: %d active guest(s)", id, active)
		return room, true, nil
	}

	current := room.ToDomain()
	next := current
	if turnover || domain.NormalizeRoomStatus(string(current.Status)) == domain.RoomOccupied {
		next.Status = domain.RoomNeedsCleaning
	}
	next.TenantName, next.TenantPhone, next.TenantEmail = "", "", ""

	if next == current {
		return room, false, nil
	}

	if err := s.roomRepo.UpdateFields(ctx, id, statusFields(next)); err != nil {
		return nil, false, notFound(err, "room", id)
	}
	room.ApplyDomain(next)

	s.audit.record(ctx, auth, EntityRoom, id, models.ActionRelease, string(current.Status), string(next.Status), "tenant cleared")
	s.events.Publish(EntityRoom, events.TypeUpdated, id)
	return room, false, nil
}

// occupy marks a room occupied by the given guest
func (s *RoomService) occupy(ctx context.Context, auth domain.AuthContext, id uint, guest *models.Guest) error {
	fields := map[string]interface{}{
		"status":       string(domain.RoomOccupied),
		"tenant_name":  guest.Name,
		"tenant_phone": guest.Phone,
		"tenant_email": guest.Email,
	}
	if err := s.roomRepo.UpdateFields(ctx, id, fields); err != nil {
		return err
	}
	s.audit.record(ctx, auth, EntityRoom, id, models.ActionStatusChange, "", string(domain.RoomOccupied), "guest "+guest.Name)
	s.events.Publish(EntityRoom, events.TypeUpdated, id)
	return nil
}

// History returns the activity trail of a room
func (s *RoomService) History(ctx context.Context, auth domain.AuthContext, id uint) ([]*models.Activity, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	if _, err := s.roomRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err, "room", id)
	}
	if s.audit.repo == nil {
		return nil, nil
	}
	return s.audit.repo.ListByEntity(ctx, EntityRoom, id, 100)
}

func (s *RoomService) ensureUniqueNumber(ctx context.Context, buildingID uint, number string, excludeID uint) error {
	exists, err := s.roomRepo.ExistsByNumber(ctx, buildingID, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("room %s already exists in building %d: %w", number, buildingID, domain.ErrConflict)
	}
	return nil
}

func statusFields(r domain.Room) map[string]interface{} {
	return map[string]interface{}{
		"status":       string(r.Status),
		"tenant_name":  r.TenantName,
		"tenant_phone": r.TenantPhone,
		"tenant_email": r.TenantEmail,
		"status_note":  r.StatusNote,
	}
}
