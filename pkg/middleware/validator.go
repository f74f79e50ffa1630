package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrotrack/pkg/lifecycle"
)

// Validator adapts validator/v10 to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

var domainTags = map[string]validator.Func{
	"culture_status": validateStatus,
	"soil_type":      validateSoilType,
}

// NewValidator registers the domain tags culture_status and soil_type. It
// panics if a tag cannot be registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	if err := registerTags(v, domainTags); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FormatValidationError turns validator errors into a field -> message map
// without leaking struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}
	for _, e := range validationErrors {
		field := lowerFirst(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "culture_status":
			errs[field] = fmt.Sprintf("Must be one of %v", lifecycle.Statuses())
		case "soil_type":
			errs[field] = fmt.Sprintf("Must be one of %v", lifecycle.SoilTypes())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "datetime":
			errs[field] = fmt.Sprintf("Must be a date formatted %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}

// jsonName reports fields under their JSON key; untagged fields keep the Go
// name.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Empty values pass; pair with required when the field is mandatory.
func validateStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := lifecycle.ParseStatus(s)
	return err == nil
}

func validateSoilType(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := lifecycle.ParseSoilType(s)
	return err == nil
}

// BindAndValidate binds the request body into dst and runs echo's validator.
// On failure it has already written a 400 reply and returns ok=false.
func BindAndValidate(c echo.Context, dst interface{}) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	return ValidateRequest(c, dst)
}

// ValidateRequest is the validation half of BindAndValidate, for handlers
// that complete dst from the path before checking it.
func ValidateRequest(c echo.Context, dst interface{}) (bool, error) {
	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": FormatValidationError(err),
		})
	}
	return true, nil
}
