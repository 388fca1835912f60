package validator

import (
	"blood-network-backend/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// "bloodtype" restricts a field to the eight canonical blood types.
	v.RegisterValidation("bloodtype", func(fl validator.FieldLevel) bool {
		return entity.IsValidBloodType(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "bloodtype":
				errors[field] = field + " must be one of the canonical blood types"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "latitude":
				errors[field] = field + " must be a valid latitude"
			case "longitude":
				errors[field] = field + " must be a valid longitude"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
