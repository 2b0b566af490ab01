package services

import (
	"context"
	"testing"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRoomService_ChangeStatusToMaintenanceFilesRequest(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomOccupied)
	require.NoError(t, env.db.Model(r).Update("tenant_name", "Somchai").Error)

	var seen []events.Event
	env.hub.Subscribe(func(e events.Event) { seen = append(seen, e) })

	res, err := env.rooms.ChangeStatus(context.Background(), staff, r.ID, &ChangeStatusInput{
		Status:   "maintenance",
		Notes:    "Leaking pipe",
		Priority: "urgent",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RoomMaintenance), res.Room.Status)
	assert.Empty(t, res.Room.TenantName)
	assert.True(t, res.Transition.ClearTenant)
	require.NotNil(t, res.MaintenanceRequest)
	assert.Equal(t, "Leaking pipe", res.MaintenanceRequest.Description)
	assert.Equal(t, "urgent", res.MaintenanceRequest.Priority)

	stored := env.reloadRoom(t, r.ID)
	assert.Equal(t, string(domain.RoomMaintenance), stored.Status)
	assert.Empty(t, stored.TenantName)

	var names []string
	for _, e := range seen {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "maintenance.created")
	assert.Contains(t, names, "room.updated")
}

func TestRoomService_ChangeStatusRequiresNotesForMaintenance(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomAvailable)

	_, err := env.rooms.ChangeStatus(context.Background(), staff, r.ID, &ChangeStatusInput{Status: "maintenance"})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeNotesRequired, ve.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.MaintenanceRequest{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, string(domain.RoomAvailable), env.reloadRoom(t, r.ID).Status)
}

func TestRoomService_ChangeStatusOccupiedSetsTenant(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomAvailable)

	res, err := env.rooms.ChangeStatus(context.Background(), staff, r.ID, &ChangeStatusInput{
		Status:      "occupied",
		TenantName:  strPtr("Jane"),
		TenantPhone: strPtr("0812345678"),
	})
	require.NoError(t, err)
	assert.Nil(t, res.MaintenanceRequest)

	stored := env.reloadRoom(t, r.ID)
	assert.Equal(t, "Jane", stored.TenantName)
	assert.Equal(t, "0812345678", stored.TenantPhone)
}

func TestRoomService_ChangeStatusAliasAndUnknown(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomOccupied)

	res, err := env.rooms.ChangeStatus(context.Background(), staff, r.ID, &ChangeStatusInput{Status: "cleaning"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoomNeedsCleaning), res.Room.Status)

	_, err = env.rooms.ChangeStatus(context.Background(), staff, r.ID, &ChangeStatusInput{Status: "demolished"})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidStatus, ve.Code)

	_, err = env.rooms.ChangeStatus(context.Background(), staff, 404, &ChangeStatusInput{Status: "available"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomService_ReleaseRoomIsRepeatable(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomOccupied)
	ctx := context.Background()

	room, err := env.rooms.ReleaseRoom(ctx, staff, r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoomNeedsCleaning), room.Status)

	// Cleaning finished in between; releasing again keeps the new status
	require.NoError(t, env.db.Model(r).Update("status", "available").Error)
	room, err = env.rooms.ReleaseRoom(ctx, staff, r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoomAvailable), room.Status)
}

func TestRoomService_ReleaseRoomRefusesActiveGuest(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomAvailable)
	g := env.guest(t, r.ID, "2024-06-20", "4500")
	ctx := context.Background()

	_, err := env.rooms.ReleaseRoom(ctx, staff, r.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	room := env.reloadRoom(t, r.ID)
	assert.Equal(t, string(domain.RoomOccupied), room.Status)
	assert.Equal(t, g.Name, room.TenantName)
}

func TestRoomService_CreateAndUniqueness(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	ctx := context.Background()

	room, err := env.rooms.Create(ctx, staff, &CreateRoomInput{Number: " 201 ", BuildingID: b.ID, Status: "out_of_service"})
	require.NoError(t, err)
	assert.Equal(t, "201", room.Number)
	assert.Equal(t, string(domain.RoomMaintenance), room.Status)

	_, err = env.rooms.Create(ctx, staff, &CreateRoomInput{Number: "201", BuildingID: b.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = env.rooms.Create(ctx, staff, &CreateRoomInput{Number: "202", BuildingID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.rooms.List(ctx, staff, nil, "haunted")
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestRoomService_DeleteRules(t *testing.T) {
	env := newTestEnv(t)
	b := env.building(t, "Harbor")
	r := env.room(t, b.ID, "101", domain.RoomAvailable)
	g := env.guest(t, r.ID, "2024-06-20", "4500")
	ctx := context.Background()

	assert.ErrorIs(t, env.rooms.Delete(ctx, staff, r.ID), domain.ErrForbidden)
	assert.ErrorIs(t, env.rooms.Delete(ctx, admin, r.ID), domain.ErrConflict)

	_, err := env.guests.MarkMovedOut(ctx, staff, g.ID, nil)
	require.NoError(t, err)
	require.NoError(t, env.rooms.Delete(ctx, admin, r.ID))
}
