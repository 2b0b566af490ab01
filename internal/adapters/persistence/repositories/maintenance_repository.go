package repositories

import (
	"context"

	"rentdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// maintenanceRepository implements MaintenanceRepository interface
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance request repository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Omit("Room").Create(req).Error
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Room").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List lists requests with pagination, open and newest first
func (r *maintenanceRepository) List(ctx context.Context, filter MaintenanceFilter, offset, limit int) ([]*models.MaintenanceRequest, int64, error) {
	var reqs []*models.MaintenanceRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequest{})
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Room").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error

	return reqs, total, err
}

func (r *maintenanceRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Omit("Room").Save(req).Error
}

// Delete soft deletes a maintenance request
func (r *maintenanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MaintenanceRequest{}, id).Error
}
