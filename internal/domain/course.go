package domain

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CourseType is the closed set of course variants.
type CourseType string

// Possible course type values
const (
	CourseTypeMath CourseType = "math"
	CourseTypeArt  CourseType = "art"
)

// DifficultyLevel grades math courses.
type DifficultyLevel string

// Possible difficulty level values
const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// Grade bounds, inclusive.
const (
	MinGrade = 0.0
	MaxGrade = 100.0
)

// DateLayout is the calendar-day format used to key attendance.
const DateLayout = "2006-01-02"

// CourseParams holds the caller-supplied fields of a new course.
// DifficultyLevel is only read for math courses and MaterialsRequired only
// for art courses.
type CourseParams struct {
	Name              string
	CourseType        CourseType
	MaxCapacity       int
	DifficultyLevel   DifficultyLevel
	MaterialsRequired []string
}

// Course is a class with a bounded roster, an optional teacher, per-day
// attendance and per-student grades.
type Course struct {
	id                string
	name              string
	courseType        CourseType
	maxCapacity       int
	difficultyLevel   DifficultyLevel
	materialsRequired []string
	students          idSet
	teacherID         string
	attendance        map[string]idSet
	grades            map[string]float64
}

// CourseSnapshot is the serialized form of a Course. Exactly one of
// DifficultyLevel and MaterialsRequired is set, depending on CourseType.
type CourseSnapshot struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CourseType        CourseType      `json:"course_type"`
	MaxCapacity       int             `json:"max_capacity"`
	CurrentEnrollment int             `json:"current_enrollment"`
	TeacherID         *string         `json:"teacher_id"`
	DifficultyLevel   DifficultyLevel `json:"difficulty_level,omitempty"`
	MaterialsRequired []string        `json:"materials_required,omitempty"`
}

// NewCourse creates a new Course with a generated ID.
// Fields that do not apply to the course type are discarded, and art
// materials are deduplicated.
func NewCourse(params CourseParams) (*Course, error) {
	c := &Course{
		id:          uuid.New().String(),
		name:        strings.TrimSpace(params.Name),
		courseType:  params.CourseType,
		maxCapacity: params.MaxCapacity,
		students:    make(idSet),
		attendance:  make(map[string]idSet),
		grades:      make(map[string]float64),
	}

	switch params.CourseType {
	case CourseTypeMath:
		c.difficultyLevel = params.DifficultyLevel
	case CourseTypeArt:
		c.materialsRequired = normalizeMaterials(params.MaterialsRequired)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the course's static fields.
func (c *Course) Validate() error {
	if c.name == "" {
		return newFieldError("name", ErrEmptyName)
	}
	if c.maxCapacity <= 0 {
		return newFieldError("max_capacity", ErrInvalidCapacity)
	}

	switch c.courseType {
	case CourseTypeMath:
		if !isValidDifficulty(c.difficultyLevel) {
			return newFieldError("difficulty_level", ErrInvalidDifficulty)
		}
	case CourseTypeArt:
		for _, m := range c.materialsRequired {
			if m == "" {
				return newFieldError("materials_required", ErrEmptyMaterial)
			}
		}
	default:
		return newFieldError("course_type", ErrInvalidCourseType)
	}
	return nil
}

// isValidDifficulty checks if the given level is a valid DifficultyLevel.
func isValidDifficulty(level DifficultyLevel) bool {
	switch level {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// normalizeMaterials trims, deduplicates and sorts materials. Blank entries
// are kept as "" so Validate can reject them.
func normalizeMaterials(materials []string) []string {
	seen := make(map[string]struct{}, len(materials))
	out := make([]string, 0, len(materials))
	for _, m := range materials {
		m = strings.TrimSpace(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// ID returns the course's immutable identifier.
func (c *Course) ID() string { return c.id }

// Name returns the course name.
func (c *Course) Name() string { return c.name }

// Type returns the course variant.
func (c *Course) Type() CourseType { return c.courseType }

// MaxCapacity returns the roster size limit.
func (c *Course) MaxCapacity() int { return c.maxCapacity }

// Enrollment returns the current roster size.
func (c *Course) Enrollment() int { return len(c.students) }

// IsFull reports whether the roster has reached capacity.
func (c *Course) IsFull() bool { return len(c.students) >= c.maxCapacity }

// HasStudent reports whether studentID is on the roster.
func (c *Course) HasStudent(studentID string) bool { return c.students.has(studentID) }

// Roster returns the enrolled student IDs in sorted order.
func (c *Course) Roster() []string { return c.students.sorted() }

// TeacherID returns the assigned teacher, or "" when none is assigned.
func (c *Course) TeacherID() string { return c.teacherID }

// AddStudent puts studentID on the roster. Capacity is checked by the
// directory before calling it.
func (c *Course) AddStudent(studentID string) { c.students.add(studentID) }

// RemoveStudent takes studentID off the roster. Recorded grades and
// attendance are kept.
func (c *Course) RemoveStudent(studentID string) { c.students.remove(studentID) }

// SetTeacher replaces the assigned teacher.
func (c *Course) SetTeacher(teacherID string) { c.teacherID = teacherID }

// TakeAttendance records which enrolled students were present on date,
// replacing any earlier record for that day. Duplicate IDs are collapsed.
// A present set as large as the whole roster is allowed.
func (c *Course) TakeAttendance(date time.Time, presentStudentIDs []string) error {
	if date.IsZero() {
		return newFieldError("date", ErrInvalidDate)
	}

	present := make(idSet, len(presentStudentIDs))
	for _, id := range presentStudentIDs {
		if id == "" {
			return newFieldError("present_students", ErrEmptyStudentID)
		}
		present.add(id)
	}

	if len(present) > len(c.students) {
		return newFieldError("present_students", ErrAttendanceExceedsRoster)
	}
	for _, id := range presentStudentIDs {
		if !c.students.has(id) {
			return NewValidationError("present_students",
				"student "+id+" is not enrolled in the course", ErrStudentNotEnrolled)
		}
	}

	c.attendance[date.Format(DateLayout)] = present
	return nil
}

// AssignGrade sets the grade of an enrolled student, overwriting any
// previous grade.
func (c *Course) AssignGrade(studentID string, grade float64) error {
	if !c.students.has(studentID) {
		return newFieldError("student_id", ErrStudentNotEnrolled)
	}
	if math.IsNaN(grade) || grade < MinGrade || grade > MaxGrade {
		return newFieldError("grade", ErrInvalidGrade)
	}
	c.grades[studentID] = grade
	return nil
}

// Grade returns the recorded grade for studentID, if any.
func (c *Course) Grade(studentID string) (float64, bool) {
	g, ok := c.grades[studentID]
	return g, ok
}

// Grades returns a copy of the student ID to grade map.
func (c *Course) Grades() map[string]float64 {
	out := make(map[string]float64, len(c.grades))
	for id, g := range c.grades {
		out[id] = g
	}
	return out
}

// Attendance returns a copy of the attendance records, keyed by
// DateLayout-formatted day, with sorted student IDs.
func (c *Course) Attendance() map[string][]string {
	out := make(map[string][]string, len(c.attendance))
	for day, present := range c.attendance {
		out[day] = present.sorted()
	}
	return out
}

// Snapshot returns a detached copy of the course's state.
func (c *Course) Snapshot() CourseSnapshot {
	snap := CourseSnapshot{
		ID:                c.id,
		Name:              c.name,
		CourseType:        c.courseType,
		MaxCapacity:       c.maxCapacity,
		CurrentEnrollment: len(c.students),
	}
	if c.teacherID != "" {
		teacherID := c.teacherID
		snap.TeacherID = &teacherID
	}

	switch c.courseType {
	case CourseTypeMath:
		snap.DifficultyLevel = c.difficultyLevel
	case CourseTypeArt:
		snap.MaterialsRequired = append([]string{}, c.materialsRequired...)
	}
	return snap
}

// MarshalJSON emits materials_required for every art course, even when the
// material set is empty, and never for math courses.
func (s CourseSnapshot) MarshalJSON() ([]byte, error) {
	type courseSnapshotJSON struct {
		ID                string          `json:"id"`
		Name              string          `json:"name"`
		CourseType        CourseType      `json:"course_type"`
		MaxCapacity       int             `json:"max_capacity"`
		CurrentEnrollment int             `json:"current_enrollment"`
		TeacherID         *string         `json:"teacher_id"`
		DifficultyLevel   DifficultyLevel `json:"difficulty_level,omitempty"`
		MaterialsRequired *[]string       `json:"materials_required,omitempty"`
	}

	out := courseSnapshotJSON{
		ID:                s.ID,
		Name:              s.Name,
		CourseType:        s.CourseType,
		MaxCapacity:       s.MaxCapacity,
		CurrentEnrollment: s.CurrentEnrollment,
		TeacherID:         s.TeacherID,
	}
	switch s.CourseType {
	case CourseTypeMath:
		out.DifficultyLevel = s.DifficultyLevel
	case CourseTypeArt:
		materials := s.MaterialsRequired
		if materials == nil {
			materials = []string{}
		}
		out.MaterialsRequired = &materials
	}
	return json.Marshal(out)
}
