package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Canonical YYYY-MM-DD date string
	validate.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // required is a separate rule
		}
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	})

	// Account role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"guest", "admin", ""}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Room type validation
	validate.RegisterValidation("room_type", func(fl validator.FieldLevel) bool {
		roomType := fl.Field().String()
		validTypes := []string{"single", "double", "twin", "suite", "family", ""}
		for _, t := range validTypes {
			if roomType == t {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier format"
		case "dateformat":
			errors[field] = "Date must be in YYYY-MM-DD format"
		case "role":
			errors[field] = "Invalid role. Must be: guest or admin"
		case "room_type":
			errors[field] = "Invalid room type. Must be: single, double, twin, suite, or family"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
