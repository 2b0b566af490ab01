package validation

import (
	"testing"

	"rentdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"notblank"`
	Status string `json:"status" validate:"omitempty,room_status"`
	Method string `json:"method" validate:"omitempty,payment_method"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestStruct_Required(t *testing.T) {
	err := Struct(sample{Name: "  "})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeRequired, ve.Code)
	assert.Equal(t, "name", ve.Field)
}

func TestStruct_RoomStatusAcceptsAliases(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "x", Status: "cleaning"}))
	assert.NoError(t, Struct(sample{Name: "x", Status: "out_of_service"}))

	ve, ok := domain.AsValidation(Struct(sample{Name: "x", Status: "gone"}))
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidStatus, ve.Code)
}

func TestStruct_InvalidValue(t *testing.T) {
	ve, ok := domain.AsValidation(Struct(sample{Name: "x", Method: "bitcoin"}))
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidValue, ve.Code)
	assert.Equal(t, "method", ve.Field)

	ve, ok = domain.AsValidation(Struct(sample{Name: "x", Email: "nope"}))
	require.True(t, ok)
	assert.Equal(t, "email", ve.Field)
}
