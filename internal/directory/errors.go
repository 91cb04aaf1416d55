package directory

import (
	"errors"
	"fmt"
)

// Common directory errors.
var (
	// ErrNotFound is returned when a referenced entity is not registered.
	// Callers usually match one of the entity-specific variants below.
	ErrNotFound = errors.New("entity not found")

	// ErrPreconditionFailed is returned when an operation is well-formed but
	// the current state does not allow it.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidEntity is returned when a nil entity is added.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDuplicateID is returned when an entity with the same ID is already
	// registered.
	ErrDuplicateID = errors.New("entity already exists")

	// Entity-specific "not found" errors

	// ErrStudentNotFound indicates that no student has the given ID.
	ErrStudentNotFound = fmt.Errorf("%w: student", ErrNotFound)

	// ErrTeacherNotFound indicates that no teacher has the given ID.
	ErrTeacherNotFound = fmt.Errorf("%w: teacher", ErrNotFound)

	// ErrCourseNotFound indicates that no course has the given ID.
	ErrCourseNotFound = fmt.Errorf("%w: course", ErrNotFound)

	// Enrollment preconditions

	// ErrCourseFull indicates that the course roster is at capacity.
	ErrCourseFull = fmt.Errorf("%w: course is full", ErrPreconditionFailed)

	// ErrAlreadyEnrolled indicates that the student is already on the roster.
	ErrAlreadyEnrolled = fmt.Errorf("%w: student already enrolled", ErrPreconditionFailed)

	// ErrNotEnrolled indicates that the student is not on the roster.
	ErrNotEnrolled = fmt.Errorf("%w: student not enrolled", ErrPreconditionFailed)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPreconditionError checks if the error is a state precondition failure
// (full course, duplicate or missing enrollment).
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}
