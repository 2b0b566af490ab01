// Package validation wraps go-playground/validator and converts its
// failures into domain.ValidationError values.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"rentdesk/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister("room_status", func(fl validator.FieldLevel) bool {
			return domain.NormalizeRoomStatus(fl.Field().String()).IsValid()
		})
		mustRegister("booking_type", func(fl validator.FieldLevel) bool {
			return domain.BookingType(fl.Field().String()).IsValid()
		})
		mustRegister("payment_method", func(fl validator.FieldLevel) bool {
			return domain.IsValidPaymentMethod(fl.Field().String())
		})
		mustRegister("priority", func(fl validator.FieldLevel) bool {
			return domain.MaintenancePriority(fl.Field().String()).IsValid()
		})
		mustRegister("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Struct validates s and returns the first failure as a *domain.ValidationError
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.NewValidationError(domain.CodeInvalidValue, "", err.Error())
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return domain.NewValidationError(domain.CodeRequired, field, "is required")
	case "room_status":
		return domain.NewValidationError(domain.CodeInvalidStatus, field, fmt.Sprintf("unknown room status %q", fe.Value()))
	case "min", "max", "gte", "lte", "gt", "lt":
		return domain.NewValidationError(domain.CodeInvalidValue, field, fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param()))
	default:
		return domain.NewValidationError(domain.CodeInvalidValue, field, fmt.Sprintf("is not a valid %s", fe.Tag()))
	}
}
