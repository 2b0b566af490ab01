package services

import (
	"context"
	"encoding/json"
	"testing"

	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_LineItemsAndDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	receipt, err := env.receipts.Create(ctx, staff, &ReceiptInput{
		Vendor:      " Cleanly ",
		ReceiptDate: "2024-06-02",
		LineItems: []LineItem{
			{Description: "Detergent", Quantity: 3, Amount: decimal.RequireFromString("45.50")},
			{Description: "Mop", Amount: decimal.RequireFromString("120")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "256.5", receipt.Amount.String())
	assert.Equal(t, domain.DefaultExpenseCategory, receipt.Category)
	assert.Equal(t, "Cleanly", receipt.Vendor)

	var items []LineItem
	require.NoError(t, json.Unmarshal(receipt.LineItems, &items))
	assert.Len(t, items, 2)

	amount := decimal.RequireFromString("300")
	updated, err := env.receipts.Update(ctx, staff, receipt.ID, &ReceiptInput{
		Category:    "Supplies",
		Amount:      &amount,
		ReceiptDate: "2024-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "300", updated.Amount.String())
	assert.Nil(t, updated.LineItems)

	list, total, err := env.receipts.List(ctx, staff, "Supplies", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestReceiptService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.receipts.Create(ctx, staff, &ReceiptInput{
		ReceiptDate: "2024-06-02",
		LineItems:   []LineItem{{Description: "Refund?", Amount: decimal.RequireFromString("-3")}},
	})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "line_items[0].amount", ve.Field)

	_, err = env.receipts.Create(ctx, staff, &ReceiptInput{ReceiptDate: "02/06/2024"})
	_, ok = domain.AsValidation(err)
	assert.True(t, ok)

	building := uint(12)
	_, err = env.receipts.Create(ctx, staff, &ReceiptInput{ReceiptDate: "2024-06-02", BuildingID: &building})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaintenanceService_Workflow(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomAvailable)
	ctx := context.Background()

	req, err := env.maintenance.Create(ctx, staff, &CreateMaintenanceInput{
		RoomID:      r.ID,
		Description: "Broken window",
		Photos:      []string{"https://img.example.com/1.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PriorityNormal), req.Priority)
	assert.Equal(t, staff.Username, req.ReportedBy)
	assert.NotNil(t, req.Photos)

	req, err = env.maintenance.UpdateStatus(ctx, staff, req.ID, &MaintenanceStatusInput{Status: "in-progress"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.MaintenanceInProgress), req.Status)
	assert.Nil(t, req.CompletedAt)

	req, err = env.maintenance.UpdateStatus(ctx, staff, req.ID, &MaintenanceStatusInput{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, req.CompletedAt)

	req, err = env.maintenance.UpdateStatus(ctx, staff, req.ID, &MaintenanceStatusInput{Status: "submitted"})
	require.NoError(t, err)
	assert.Nil(t, req.CompletedAt)

	_, err = env.maintenance.UpdateStatus(ctx, staff, req.ID, &MaintenanceStatusInput{Status: "abandoned"})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	urgent := "urgent"
	_, err = env.maintenance.Update(ctx, staff, req.ID, &UpdateMaintenanceInput{Priority: &urgent})
	require.NoError(t, err)

	list, total, err := env.maintenance.List(ctx, staff, repositories.MaintenanceFilter{Priority: "urgent"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, err = env.maintenance.Create(ctx, staff, &CreateMaintenanceInput{RoomID: 999, Description: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInquiryService_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewInquiryService(repositories.NewInquiryRepository(db), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateInquiryInput{Name: "Ann"}, nil)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", ve.Field)

	inq, err := svc.Create(ctx, &CreateInquiryInput{Name: " Ann ", Phone: "0800000000"}, map[string]interface{}{"ip": "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", inq.Name)
	assert.Equal(t, string(domain.InquiryNew), inq.Status)
	assert.Equal(t, "10.0.0.1", inq.Metadata["ip"])

	_, total, err := svc.List(ctx, staff, "new", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	inq, err = svc.UpdateStatus(ctx, staff, inq.ID, &InquiryStatusInput{Status: "Contacted"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.InquiryContacted), inq.Status)

	_, _, err = svc.List(ctx, domain.Anonymous, "", 0, 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.ErrorIs(t, svc.Delete(ctx, staff, inq.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, inq.ID))
}
