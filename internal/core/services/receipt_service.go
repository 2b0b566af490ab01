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

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ReceiptService handles expense receipts
type ReceiptService struct {
	receiptRepo  repositories.ReceiptRepository
	buildingRepo repositories.BuildingRepository
	events       events.Publisher
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repositories.ReceiptRepository, buildingRepo repositories.BuildingRepository, publisher events.Publisher) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		buildingRepo: buildingRepo,
		events:       publisherOrNop(publisher),
	}
}

// LineItem is one row of an itemised receipt
type LineItem struct {
	Description string          `json:"description" validate:"notblank"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReceiptInput creates or replaces a receipt
type ReceiptInput struct {
	Vendor      string           `json:"vendor" validate:"max=100"`
	Category    string           `json:"category" validate:"max=50"`
	Amount      *decimal.Decimal `json:"amount"`
	ReceiptDate string           `json:"receipt_date" validate:"required,datetime=2006-01-02"`
	BuildingID  *uint            `json:"building_id"`
	Description string           `json:"description"`
	LineItems   []LineItem       `json:"line_items" validate:"dive"`
}

// List returns receipts with pagination
func (s *ReceiptService) List(ctx context.Context, auth domain.AuthContext, category string, offset, limit int) ([]*models.Receipt, int64, error) {
	if err := requireAuth(auth); err != nil {
		return nil, 0, err
	}
	return s.receiptRepo.List(ctx, strings.TrimSpace(category), offset, limit)
}

// Get returns one receipt
func (s *ReceiptService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*models.Receipt, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "receipt", id)
	}
	return receipt, nil
}

// Create records an expense
func (s *ReceiptService) Create(ctx context.Context, auth domain.AuthContext, input *ReceiptInput) (*models.Receipt, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	receipt := &models.Receipt{RecordedBy: auth.UserID}
	if err := s.apply(ctx, receipt, input); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("create receipt: %w", err)
	}
	s.events.Publish(EntityReceipt, events.TypeCreated, receipt.ID)
	return receipt, nil
}

// Update replaces a receipt's fields
func (s *ReceiptService) Update(ctx context.Context, auth domain.AuthContext, id uint, input *ReceiptInput) (*models.Receipt, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "receipt", id)
	}
	if err := s.apply(ctx, receipt, input); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, fmt.Errorf("update receipt %d: %w", id, err)
	}
	s.events.Publish(EntityReceipt, events.TypeUpdated, id)
	return receipt, nil
}

// Delete removes a receipt
func (s *ReceiptService) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if _, err := s.receiptRepo.GetByID(ctx, id); err != nil {
		return notFound(err, "receipt", id)
	}
	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete receipt %d: %w", id, err)
	}
	s.events.Publish(EntityReceipt, events.TypeDeleted, id)
	return nil
}

// apply copies input onto receipt. Without an explicit amount the line
// items are summed.
func (s *ReceiptService) apply(ctx context.Context, receipt *models.Receipt, input *ReceiptInput) error {
	date, err := parseDate("receipt_date", input.ReceiptDate)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for i, item := range input.LineItems {
		if item.Amount.IsNegative() {
			return domain.NewValidationError(domain.CodeNegativeAmount, fmt.Sprintf("line_items[%d].amount", i), "must not be negative")
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total = total.Add(item.Amount.Mul(decimal.NewFromInt(int64(qty))))
	}

	amount := total
	if input.Amount != nil {
		amount = *input.Amount
	}
	if amount.IsNegative() {
		return domain.NewValidationError(domain.CodeNegativeAmount, "amount", "must not be negative")
	}

	if input.BuildingID != nil {
		if _, err := s.buildingRepo.GetByID(ctx, *input.BuildingID); err != nil {
			return notFound(err, "building", *input.BuildingID)
		}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultExpenseCategory
	}

	receipt.Vendor = strings.TrimSpace(input.Vendor)
	receipt.Category = category
	receipt.Amount = amount
	receipt.ReceiptDate = date
	receipt.BuildingID = input.BuildingID
	receipt.Description = input.Description
	receipt.LineItems = nil
	if len(input.LineItems) > 0 {
		raw, err := json.Marshal(input.LineItems)
		if err != nil {
			return err
		}
		receipt.LineItems = datatypes.JSON(raw)
	}
	return nil
}
