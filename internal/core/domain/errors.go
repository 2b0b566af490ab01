package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Validation codes
const (
	CodeNotesRequired  = "notes_required"
	CodeInvalidStatus  = "invalid_status"
	CodeRequired       = "required"
	CodeInvalidValue   = "invalid_value"
	CodeNegativeAmount = "negative_amount"
)

// ValidationError is reported to the caller for user-facing correction
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates a validation error
func NewValidationError(code, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Is lets errors.Is(err, ErrInvalidInput) match any validation error
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Retry actions for partial failures
const (
	RetryReleaseRoom = "release_room"
	RetryAdvanceDue  = "advance_due"
	RetryOccupyRoom  = "occupy_room"
)

// PartialFailureError is returned when a multi-write operation succeeded
// only partway. Completed lists the writes that were persisted, Failed names
// the one that was not, and RetryAction tells the caller how to finish.
type PartialFailureError struct {
	Operation   string   `json:"operation"`
	Completed   []string `json:"completed"`
	Failed      string   `json:"failed"`
	RetryAction string   `json:"retry_action"`
	ResourceID  uint     `json:"resource_id"`
	Err         error    `json:"-"`
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially failed: completed [%s], failed %s: %v",
		e.Operation, strings.Join(e.Completed, ", "), e.Failed, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// AsPartialFailure extracts a PartialFailureError from err
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return pf, true
	}
	return nil, false
}

// AsValidation extracts a ValidationError from err
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
