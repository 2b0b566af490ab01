package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"rentdesk/internal/adapters/http/middleware"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"
	"rentdesk/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PartialResult is the 207 body of an operation that stopped halfway
type PartialResult struct {
	Partial *domain.PartialFailureError `json:"partial_failure"`
	Result  interface{}                 `json:"result,omitempty"`
}

// parseBody decodes and validates the JSON request body into dst
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewValidationError(domain.CodeInvalidValue, "", "invalid request body")
	}
	return validation.Struct(dst)
}

// paramID parses the :id route parameter
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError(domain.CodeInvalidValue, "id", "must be a positive integer")
	}
	return uint(id), nil
}

// queryUint parses an optional numeric query parameter
func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, key, "must be a positive integer")
	}
	id := uint(v)
	return &id, nil
}

// queryBool parses an optional boolean query parameter
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, key, "must be true or false")
	}
	return &v, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(services.DateLayout, raw)
	if err != nil {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, key, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

// paged sends a paginated list
func paged(c *fiber.Ctx, message string, data interface{}, params *pagination.Params, total int64) error {
	return response.Success(c, message, pagination.NewResponse(data, params, total))
}

// fail maps a service error onto an HTTP response
func fail(c *fiber.Ctx, err error, action string) error {
	if pf, ok := domain.AsPartialFailure(err); ok {
		return response.MultiStatus(c, action+" partially completed", PartialResult{Partial: pf})
	}
	if ve, ok := domain.AsValidation(err); ok {
		msg := ve.Message
		if ve.Field != "" {
			msg = ve.Field + " " + ve.Message
		}
		return response.ValidationFailed(c, ve.Code, ve.Field, msg)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	}

	log.Printf("❌ Failed to %s: %v", action, err)
	return response.InternalServerError(c, "Failed to "+action)
}

// partial sends a 207 carrying both the failure and whatever was persisted
func partial(c *fiber.Ctx, pf *domain.PartialFailureError, action string, result interface{}) error {
	return response.MultiStatus(c, action+" partially completed", PartialResult{Partial: pf, Result: result})
}

// authOf returns the caller identity set by the auth middleware
func authOf(c *fiber.Ctx) domain.AuthContext {
	return middleware.AuthFrom(c)
}
