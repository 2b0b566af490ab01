package repositories

import (
	"context"

	"rentdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// guestRepository implements GuestRepository interface
type guestRepository struct {
	db *gorm.DB
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Omit("Room").Create(guest).Error
}

// GetByID gets a guest by ID with its room
func (r *guestRepository) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Preload("Room").
		First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) applyFilter(query *gorm.DB, filter GuestFilter) *gorm.DB {
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.MovedOut != nil {
		query = query.Where("has_moved_out = ?", *filter.MovedOut)
	}
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.Query != "" {
		q := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", q, q, q)
	}
	return query
}

// List lists guests with pagination, newest check-in first
func (r *guestRepository) List(ctx context.Context, filter GuestFilter, offset, limit int) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Guest{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Guest{}), filter).
		Preload("Room").
		Order("check_in_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&guests).Error

	return guests, total, err
}

// ListTracked lists guests that are active and have not moved out
func (r *guestRepository) ListTracked(ctx context.Context) ([]*models.Guest, error) {
	var guests []*models.Guest
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("is_active = ? AND has_moved_out = ?", true, false).
		Order("id ASC").
		Find(&guests).Error
	return guests, err
}

func (r *guestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Omit("Room").Save(guest).Error
}

// UpdateFields updates selected columns, including zero values
func (r *guestRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a guest
func (r *guestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Guest{}, id).Error
}

// CountActiveByRoom counts tracked guests assigned to a room
func (r *guestRepository) CountActiveByRoom(ctx context.Context, roomID uint, excludeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("room_id = ? AND is_active = ? AND has_moved_out = ? AND id <> ?", roomID, true, false, excludeID).
		Count(&count).Error
	return count, err
}
