package api

import (
	"github.com/phrazzld/campus-api/internal/domain"
)

// Common request/response structures

// CreateStudentRequest defines the payload for POST /students.
// Field rules are enforced by the domain constructor.
type CreateStudentRequest struct {
	Name        string            `json:"name"`
	ContactInfo map[string]string `json:"contact_info"`
}

// CreateTeacherRequest defines the payload for POST /teachers.
type CreateTeacherRequest struct {
	Name            string            `json:"name"`
	ContactInfo     map[string]string `json:"contact_info"`
	Specializations []string          `json:"specializations"`
}

// CreateCourseRequest defines the payload for POST /courses.
// DifficultyLevel applies to math courses and MaterialsRequired to art
// courses; the other field is ignored.
type CreateCourseRequest struct {
	Name              string   `json:"name"`
	CourseType        string   `json:"course_type"`
	MaxCapacity       int      `json:"max_capacity"`
	DifficultyLevel   string   `json:"difficulty_level,omitempty"`
	MaterialsRequired []string `json:"materials_required,omitempty"`
}

// AttendanceRequest defines the payload for POST /courses/{courseID}/attendance.
type AttendanceRequest struct {
	Date            string   `json:"date"             validate:"required,datetime=2006-01-02"`
	PresentStudents []string `json:"present_students"`
}

// GradeRequest defines the payload for POST /courses/{courseID}/grades/{studentID}.
// Grade is a pointer so a missing grade is distinguishable from 0.
type GradeRequest struct {
	Grade *float64 `json:"grade" validate:"required"`
}

// CreatedResponse is returned with 201 when an entity is created.
type CreatedResponse struct {
	ID string `json:"id"`
}

// StudentListResponse wraps a list of students.
type StudentListResponse struct {
	Students []domain.StudentSnapshot `json:"students"`
}

// TeacherListResponse wraps a list of teachers.
type TeacherListResponse struct {
	Teachers []domain.TeacherSnapshot `json:"teachers"`
}

// CourseListResponse wraps a list of courses.
type CourseListResponse struct {
	Courses []domain.CourseSnapshot `json:"courses"`
}

// GradesResponse maps student IDs (course view) or course IDs (student
// view) to grades.
type GradesResponse struct {
	Grades map[string]float64 `json:"grades"`
}

// AttendanceResponse maps YYYY-MM-DD days to the students present.
type AttendanceResponse struct {
	Attendance map[string][]string `json:"attendance"`
}
