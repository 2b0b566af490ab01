package repositories

import (
	"context"

	"rentdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// buildingRepository implements BuildingRepository interface
type buildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new building repository
func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) Create(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

func (r *buildingRepository) GetByID(ctx context.Context, id uint) (*models.Building, error) {
	var building models.Building
	if err := r.db.WithContext(ctx).First(&building, id).Error; err != nil {
		return nil, err
	}
	return &building, nil
}

// List returns all buildings ordered by name
func (r *buildingRepository) List(ctx context.Context) ([]*models.Building, error) {
	var buildings []*models.Building
	err := r.db.WithContext(ctx).Order("name ASC").Find(&buildings).Error
	return buildings, err
}

func (r *buildingRepository) Update(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Save(building).Error
}

// Delete soft deletes a building
func (r *buildingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Building{}, id).Error
}

// CountRooms counts live rooms attached to the building
func (r *buildingRepository) CountRooms(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Where("building_id = ?", id).Count(&count).Error
	return count, err
}
