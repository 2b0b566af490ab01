package rules

import (
	"strings"

	"rentdesk/internal/core/domain"
)

// TransitionPayload is what the caller supplies with a status change.
// Nil tenant fields mean "leave unchanged".
type TransitionPayload struct {
	Notes       string
	TenantName  *string
	TenantPhone *string
	TenantEmail *string
}

// TransitionResult describes the writes a status change implies
type TransitionResult struct {
	From        domain.RoomStatus `json:"from"`
	To          domain.RoomStatus `json:"to"`
	Notes       string            `json:"notes,omitempty"`
	ClearTenant bool              `json:"clear_tenant"`
	TenantName  *string           `json:"tenant_name,omitempty"`
	TenantPhone *string           `json:"tenant_phone,omitempty"`
	TenantEmail *string           `json:"tenant_email,omitempty"`
}

// CanTransitionRoom validates a room status change. Any status may move to
// any other; maintenance needs a note, and needs_cleaning/maintenance always
// wipe tenant details regardless of what the caller sent.
func CanTransitionRoom(current, next domain.RoomStatus, payload TransitionPayload) (TransitionResult, error) {
	to := domain.NormalizeRoomStatus(string(next))
	if !to.IsValid() {
		return TransitionResult{}, domain.NewValidationError(domain.CodeInvalidStatus, "status",
			"status must be one of available, occupied, needs_cleaning, maintenance")
	}

	notes := strings.TrimSpace(payload.Notes)
	if to == domain.RoomMaintenance && notes == "" {
		return TransitionResult{}, domain.NewValidationError(domain.CodeNotesRequired, "notes",
			"a note describing the problem is required for maintenance")
	}

	result := TransitionResult{
		From:  domain.NormalizeRoomStatus(string(current)),
		To:    to,
		Notes: notes,
	}
	if to.ClearsTenant() {
		result.ClearTenant = true
		return result, nil
	}

	result.TenantName = trimmed(payload.TenantName)
	result.TenantPhone = trimmed(payload.TenantPhone)
	result.TenantEmail = trimmed(payload.TenantEmail)
	return result, nil
}

// Apply writes the result onto a room copy and returns it
func (r TransitionResult) Apply(room domain.Room) domain.Room {
	room.Status = r.To
	room.StatusNote = r.Notes
	if r.ClearTenant {
		room.TenantName = ""
		room.TenantPhone = ""
		room.TenantEmail = ""
		return room
	}
	if r.TenantName != nil {
		room.TenantName = *r.TenantName
	}
	if r.TenantPhone != nil {
		room.TenantPhone = *r.TenantPhone
	}
	if r.TenantEmail != nil {
		room.TenantEmail = *r.TenantEmail
	}
	return room
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
