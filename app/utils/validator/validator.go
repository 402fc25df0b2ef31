package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// Validator wraps the go-playground validator with custom rules. It
// satisfies echo.Validator.
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
	order  []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.order))
	for _, field := range e.order {
		messages = append(messages, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// First returns the message of the first failing field in declaration order.
func (e *ValidationError) First() string {
	if len(e.order) == 0 {
		return "validation failed"
	}
	return e.Errors[e.order[0]]
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Errors: make(map[string]string, len(errs))}

	for _, err := range errs {
		field := fieldPath(err)
		if _, seen := out.Errors[field]; seen {
			continue
		}
		out.Errors[field] = message(err)
		out.order = append(out.order, field)
	}

	return out
}

func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func message(err validator.FieldError) string {
	field := err.Field()
	isCollection := err.Kind() == reflect.Slice || err.Kind() == reflect.Array || err.Kind() == reflect.Map

	switch err.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if isCollection {
			return fmt.Sprintf("%s must contain at least %s items", field, err.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
	case "max":
		if isCollection {
			return fmt.Sprintf("%s must contain at most %s items", field, err.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes long", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(err.Param(), " ", ", "))
	case "profile_role":
		return fmt.Sprintf("%s must be admin or employee", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// registerCustomValidators registers custom validation rules
func registerCustomValidators(validate *validator.Validate) {
	// Rejects strings made only of whitespace
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Byte length, for values hashed with bcrypt
	_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	// Tenant member roles, including the legacy alias
	_ = validate.RegisterValidation("profile_role", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseRole(fl.Field().String())
		return err == nil
	})
}

// Common validation tags constants
const (
	TagRequired    = "required"
	TagEmail       = "email"
	TagNotBlank    = "notblank"
	TagProfileRole = "profile_role"
	TagMaxBytes    = "maxbytes"
)
