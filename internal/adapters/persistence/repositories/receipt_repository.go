package repositories

import (
	"context"

	"rentdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// receiptRepository implements ReceiptRepository interface
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// List lists receipts with pagination, optionally by category
func (r *receiptRepository) List(ctx context.Context, category string, offset, limit int) ([]*models.Receipt, int64, error) {
	var receipts []*models.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Receipt{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("receipt_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&receipts).Error

	return receipts, total, err
}

// ListAll returns every receipt for report aggregation
func (r *receiptRepository) ListAll(ctx context.Context) ([]*models.Receipt, error) {
	var receipts []*models.Receipt
	err := r.db.WithContext(ctx).Order("receipt_date ASC").Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

// Delete soft deletes a receipt
func (r *receiptRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Receipt{}, id).Error
}
