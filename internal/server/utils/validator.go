package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	zipPattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-]{1,8}[A-Za-z0-9]$`)
	countryPattern = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("zipcode", validateZipCode)
	validate.RegisterValidation("country_code", validateCountryCode)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateZipCode accepts postal codes of 3 to 10 letters, digits, spaces or dashes.
func validateZipCode(fl validator.FieldLevel) bool {
	return zipPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateCountryCode accepts two-letter country codes in either case.
func validateCountryCode(fl validator.FieldLevel) bool {
	return countryPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

func FormatValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, err := range validatorErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Value:   err.Value(),
				Tag:     err.Tag(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "zipcode":
		return fmt.Sprintf("%s must be a postal code of 3 to 10 letters, digits, spaces or dashes", err.Field())
	case "country_code":
		return fmt.Sprintf("%s must be a two-letter country code", err.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err != nil {
		return FormatValidationErrors(err)
	}
	return nil
}
