package rules

import (
	"errors"
	"testing"

	"rentdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionRoom_MaintenanceNeedsNotes(t *testing.T) {
	_, err := CanTransitionRoom(domain.RoomAvailable, domain.RoomMaintenance, TransitionPayload{Notes: "   "})
	require.Error(t, err)

	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeNotesRequired, ve.Code)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCanTransitionRoom_MaintenanceClearsTenant(t *testing.T) {
	res, err := CanTransitionRoom(domain.RoomAvailable, domain.RoomMaintenance, TransitionPayload{
		Notes:      "AC broken",
		TenantName: ptr("Somchai"),
	})
	require.NoError(t, err)
	assert.True(t, res.ClearTenant)
	assert.Equal(t, "AC broken", res.Notes)

	room := res.Apply(domain.Room{TenantName: "Old", TenantPhone: "0800", TenantEmail: "a@b.c"})
	assert.Equal(t, domain.RoomMaintenance, room.Status)
	assert.Empty(t, room.TenantName)
	assert.Empty(t, room.TenantPhone)
	assert.Empty(t, room.TenantEmail)
}

func TestCanTransitionRoom_CleaningAliasClearsTenant(t *testing.T) {
	res, err := CanTransitionRoom(domain.RoomOccupied, "cleaning", TransitionPayload{TenantName: ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomNeedsCleaning, res.To)
	assert.True(t, res.ClearTenant)
	assert.Nil(t, res.TenantName)
}

func TestCanTransitionRoom_OccupiedSetsTenant(t *testing.T) {
	res, err := CanTransitionRoom(domain.RoomAvailable, domain.RoomOccupied, TransitionPayload{
		TenantName:  ptr(" Jane "),
		TenantPhone: ptr("0812345678"),
	})
	require.NoError(t, err)
	assert.False(t, res.ClearTenant)

	room := res.Apply(domain.Room{TenantEmail: "keep@example.com"})
	assert.Equal(t, "Jane", room.TenantName)
	assert.Equal(t, "0812345678", room.TenantPhone)
	assert.Equal(t, "keep@example.com", room.TenantEmail)
}

func TestCanTransitionRoom_Permissive(t *testing.T) {
	statuses := []domain.RoomStatus{domain.RoomAvailable, domain.RoomOccupied, domain.RoomNeedsCleaning, domain.RoomMaintenance}
	for _, from := range statuses {
		for _, to := range statuses {
			_, err := CanTransitionRoom(from, to, TransitionPayload{Notes: "note"})
			assert.NoError(t, err, "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionRoom_InvalidStatus(t *testing.T) {
	_, err := CanTransitionRoom(domain.RoomAvailable, "demolished", TransitionPayload{})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidStatus, ve.Code)
}
