package services

import (
	"context"
	"fmt"
	"strings"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"github.com/shopspring/decimal"
)

// BuildingService manages properties
type BuildingService struct {
	buildingRepo repositories.BuildingRepository
	events       events.Publisher
}

// NewBuildingService creates a new building service
func NewBuildingService(buildingRepo repositories.BuildingRepository, publisher events.Publisher) *BuildingService {
	return &BuildingService{
		buildingRepo: buildingRepo,
		events:       publisherOrNop(publisher),
	}
}

// CreateBuildingInput represents a new building
type CreateBuildingInput struct {
	Name        string           `json:"name" validate:"notblank,max=100"`
	Address     string           `json:"address"`
	DailyRate   *decimal.Decimal `json:"daily_rate"`
	WeeklyRate  *decimal.Decimal `json:"weekly_rate"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate"`
}

// UpdateBuildingInput represents a partial building update
type UpdateBuildingInput struct {
	Name        *string          `json:"name" validate:"omitempty,notblank,max=100"`
	Address     *string          `json:"address"`
	DailyRate   *decimal.Decimal `json:"daily_rate"`
	WeeklyRate  *decimal.Decimal `json:"weekly_rate"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate"`
}

func checkRates(rates map[string]*decimal.Decimal) error {
	for field, rate := range rates {
		if rate != nil && rate.IsNegative() {
			return domain.NewValidationError(domain.CodeNegativeAmount, field, "must not be negative")
		}
	}
	return nil
}

// List returns all buildings
func (s *BuildingService) List(ctx context.Context, auth domain.AuthContext) ([]*models.Building, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	return s.buildingRepo.List(ctx)
}

// Get returns one building
func (s *BuildingService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*models.Building, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	building, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "building", id)
	}
	return building, nil
}

// Create adds a building
func (s *BuildingService) Create(ctx context.Context, auth domain.AuthContext, input *CreateBuildingInput) (*models.Building, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.CodeRequired, "name", "is required")
	}
	if err := checkRates(map[string]*decimal.Decimal{
		"daily_rate": input.DailyRate, "weekly_rate": input.WeeklyRate, "monthly_rate": input.MonthlyRate,
	}); err != nil {
		return nil, err
	}

	building := &models.Building{
		Name:        name,
		Address:     strings.TrimSpace(input.Address),
		DailyRate:   input.DailyRate,
		WeeklyRate:  input.WeeklyRate,
		MonthlyRate: input.MonthlyRate,
	}
	if err := s.buildingRepo.Create(ctx, building); err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}

	s.events.Publish(EntityBuilding, events.TypeCreated, building.ID)
	return building, nil
}

// Update changes a building
func (s *BuildingService) Update(ctx context.Context, auth domain.AuthContext, id uint, input *UpdateBuildingInput) (*models.Building, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	if err := checkRates(map[string]*decimal.Decimal{
		"daily_rate": input.DailyRate, "weekly_rate": input.WeeklyRate, "monthly_rate": input.MonthlyRate,
	}); err != nil {
		return nil, err
	}

	building, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "building", id)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError(domain.CodeRequired, "name", "is required")
		}
		building.Name = name
	}
	if input.Address != nil {
		building.Address = strings.TrimSpace(*input.Address)
	}
	if input.DailyRate != nil {
		building.DailyRate = input.DailyRate
	}
	if input.WeeklyRate != nil {
		building.WeeklyRate = input.WeeklyRate
	}
	if input.MonthlyRate != nil {
		building.MonthlyRate = input.MonthlyRate
	}

	if err := s.buildingRepo.Update(ctx, building); err != nil {
		return nil, fmt.Errorf("update building %d: %w", id, err)
	}

	s.events.Publish(EntityBuilding, events.TypeUpdated, building.ID)
	return building, nil
}

// Delete removes an empty building (admin only)
func (s *BuildingService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.buildingRepo.GetByID(ctx, id); err != nil {
		return notFound(err, "building", id)
	}

	rooms, err := s.buildingRepo.CountRooms(ctx, id)
	if err != nil {
		return err
	}
	if rooms > 0 {
		return fmt.Errorf("building %d still has %d rooms: %w", id, rooms, domain.ErrConflict)
	}

	if err := s.buildingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete building %d: %w", id, err)
	}

	s.events.Publish(EntityBuilding, events.TypeDeleted, id)
	return nil
}
