package http

import (
	"errors"
	"reflect"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/money"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// decimals are validated through their canonical string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// strictly positive decimal
	_ = v.RegisterValidation("dpos", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	_ = v.RegisterValidation("dnneg", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	// currency precision
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && money.Exact(d)
	})
	_ = v.RegisterValidation("isin", func(fl validator.FieldLevel) bool {
		return collateral.ValidISIN(fl.Field().String())
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		_, ok := application.ParseStatus(fl.Field().String())
		return ok
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "dpos":
			out = append(out, FieldError{Field: field, Message: "must be greater than 0"})
		case "dnneg":
			out = append(out, FieldError{Field: field, Message: "must not be negative"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "isin":
			out = append(out, FieldError{Field: field, Message: "must be a 12-char ISIN"})
		case "appstatus":
			out = append(out, FieldError{Field: field, Message: "must be one of DRAFT, SUBMITTED, APPROVED, REJECTED, DISBURSED"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
