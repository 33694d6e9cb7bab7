// Package validation checks request payloads and renders failures with the
// same wording the dashboard's forms use.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

const (
	MsgRequired       = "Required"
	MsgInvalidEmail   = "Invalid email"
	MsgInvalidDate    = "Invalid date"
	MsgExpectedNumber = "Expected number, received nan"
	MsgPasswordLength = "Password must be at least 8 characters"

	minPasswordLength = 8
)

type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned for any payload that fails validation.
type Error struct {
	Issues []Issue
}

func NewError(issues ...Issue) *Error {
	return &Error{Issues: issues}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("todostatus", func(fl validator.FieldLevel) bool {
		return domain.TodoStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) >= minPasswordLength
	})
	return v
}

// Struct validates s against its `validate` tags. Field failures come back
// as *Error; anything else is a programming error and is returned as is.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Field: fieldPath(fe), Message: message(fe)})
	}
	return &Error{Issues: issues}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "password":
		return MsgPasswordLength
	case "todostatus":
		return EnumMessage(domain.TodoStatuses)
	case "role":
		return EnumMessage([]domain.Role{domain.RoleAdmin, domain.RoleUser})
	case "min", "gte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("Array must contain at least %s element(s)", fe.Param())
		}
		return MinNumber(fe.Param())
	case "max", "lte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("Array must contain at most %s element(s)", fe.Param())
		}
		return MaxNumber(fe.Param())
	}
	return fmt.Sprintf("Invalid value (%s)", fe.Tag())
}

func MinNumber(n any) string {
	return fmt.Sprintf("Number must be greater than or equal to %v", n)
}

func MaxNumber(n any) string {
	return fmt.Sprintf("Number must be less than or equal to %v", n)
}

func EnumMessage[T ~string](values []T) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+string(v)+"'")
	}
	return "Invalid enum value. Expected " + strings.Join(quoted, " | ")
}
