package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the directory.
const (
	TypeStudentCreated     = "student.created"
	TypeTeacherCreated     = "teacher.created"
	TypeCourseCreated      = "course.created"
	TypeStudentEnrolled    = "student.enrolled"
	TypeStudentWithdrawn   = "student.withdrawn"
	TypeTeacherAssigned    = "teacher.assigned"
	TypeAttendanceRecorded = "attendance.recorded"
	TypeGradeAssigned      = "grade.assigned"
)

// Event records a completed change to directory state.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// EntityCreatedPayload accompanies the *.created events.
type EntityCreatedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrollmentPayload accompanies student.enrolled and student.withdrawn.
type EnrollmentPayload struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

// TeacherAssignmentPayload accompanies teacher.assigned. PreviousTeacherID
// is empty when the course had no teacher.
type TeacherAssignmentPayload struct {
	TeacherID         string `json:"teacher_id"`
	CourseID          string `json:"course_id"`
	PreviousTeacherID string `json:"previous_teacher_id,omitempty"`
}

// AttendancePayload accompanies attendance.recorded.
type AttendancePayload struct {
	CourseID     string `json:"course_id"`
	Date         string `json:"date"`
	PresentCount int    `json:"present_count"`
}

// GradePayload accompanies grade.assigned.
type GradePayload struct {
	CourseID  string  `json:"course_id"`
	StudentID string  `json:"student_id"`
	Grade     float64 `json:"grade"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the directory to publish events without knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}
