package repositories

import (
	"context"

	"rentdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// inquiryRepository implements InquiryRepository interface
type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Inquiry, int64, error) {
	var inquiries []*models.Inquiry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&inquiries).Error
	return inquiries, total, err
}

func (r *inquiryRepository) Update(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Save(inquiry).Error
}

func (r *inquiryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Inquiry{}, id).Error
}
