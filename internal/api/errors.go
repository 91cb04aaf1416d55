package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/campus-api/internal/api/shared"
	"github.com/phrazzld/campus-api/internal/directory"
	"github.com/phrazzld/campus-api/internal/domain"
)

// Machine-readable error reasons returned in the "reason" field.
const (
	ReasonValidation      = "validation"
	ReasonUnknownID       = "unknown_id"
	ReasonFull            = "full"
	ReasonAlreadyEnrolled = "already_enrolled"
	ReasonNotEnrolled     = "not_enrolled"
	ReasonBadRequest      = "bad_request"
	ReasonInternal        = "internal"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, directory.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, directory.ErrPreconditionFailed):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToReason returns the reason code reported alongside the status.
func MapErrorToReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ReasonValidation
	case errors.Is(err, directory.ErrNotFound):
		return ReasonUnknownID
	case errors.Is(err, directory.ErrCourseFull):
		return ReasonFull
	case errors.Is(err, directory.ErrAlreadyEnrolled):
		return ReasonAlreadyEnrolled
	case errors.Is(err, directory.ErrNotEnrolled):
		return ReasonNotEnrolled
	default:
		return ReasonInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Validation messages are built from request data
// only and are returned as is.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, directory.ErrStudentNotFound):
		return "Student not found"
	case errors.Is(err, directory.ErrTeacherNotFound):
		return "Teacher not found"
	case errors.Is(err, directory.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, directory.ErrCourseFull):
		return "Course is full"
	case errors.Is(err, directory.ErrAlreadyEnrolled):
		return "Student is already enrolled in the course"
	case errors.Is(err, directory.ErrNotEnrolled):
		return "Student is not enrolled in the course"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for an error returned by the
// directory or the domain constructors. fallbackMessage replaces the generic
// message of unmapped errors when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, MapErrorToReason(err), message, err)
}

// HandleBadRequest writes a 400 bad_request response for a body that could
// not be decoded or failed DTO validation.
func HandleBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	message := "Invalid request format"
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		message = SanitizeValidationError(err)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, ReasonBadRequest, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := toSnakeCase(fe.Field())
	if msg := getValidationTagMessage(fe.Tag()); msg != "" {
		return fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return fmt.Sprintf("Invalid %s", field)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "datetime":
		return "expected a YYYY-MM-DD date"
	case "min":
		return "too short"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// toSnakeCase turns a Go field name such as PresentStudents into the JSON
// key present_students.
func toSnakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
