// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific failures wrap it through ValidationError.
	ErrValidation = errors.New("validation failed")

	// Entity validation errors.
	ErrEmptyName               = errors.New("name must be a non-empty string")
	ErrMissingContactInfo      = errors.New("contact info is required")
	ErrMissingContactField     = errors.New("contact info is missing a required field")
	ErrNoSpecializations       = errors.New("teacher must have at least one specialization")
	ErrEmptySpecialization     = errors.New("specializations must be non-empty strings")
	ErrInvalidCourseType       = errors.New("course type must be math or art")
	ErrInvalidCapacity         = errors.New("max capacity must be a positive integer")
	ErrInvalidDifficulty       = errors.New("math course difficulty must be beginner, intermediate or advanced")
	ErrEmptyMaterial           = errors.New("art course materials must be non-empty strings")
	ErrEmptyStudentID          = errors.New("student ID cannot be empty")
	ErrInvalidDate             = errors.New("attendance date is required")
	ErrAttendanceExceedsRoster = errors.New("more students present than enrolled")
	ErrStudentNotEnrolled      = errors.New("student is not enrolled in the course")
	ErrInvalidGrade            = errors.New("grade must be a number between 0 and 100")
)

// ValidationError describes a single rule violation on an entity field.
// It wraps both the specific sentinel and ErrValidation, so callers can
// match either with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap exposes the wrapped sentinel and ErrValidation.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewValidationError creates a ValidationError for field. When err is nil
// the error only matches ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// newFieldError builds a ValidationError whose message is the sentinel's text.
func newFieldError(field string, err error) *ValidationError {
	return NewValidationError(field, err.Error(), err)
}

// IsValidationError reports whether err is, or wraps, a domain validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
