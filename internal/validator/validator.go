package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must contain at least %s items"
	ErrMaxLength      = "must contain at most %s items"
	ErrGreaterThan    = "must be greater than %s"
	ErrSeatLabel      = "must be a seat label like A1"
	ErrDefaultInvalid = "is invalid"
)

var seatLabelRgx = regexp.MustCompile(`^[A-Z]{1,2}[1-9][0-9]{0,2}$`)

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("seat_label", validateSeatLabel)

	return validate
}

func validateSeatLabel(fl validator.FieldLevel) bool {
	return seatLabelRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "seat_label":
		return ErrSeatLabel
	default:
		return ErrDefaultInvalid
	}
}
