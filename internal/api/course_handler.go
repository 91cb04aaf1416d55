package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/campus-api/internal/api/shared"
	"github.com/phrazzld/campus-api/internal/domain"
	"github.com/phrazzld/campus-api/internal/platform/logger"
)

// CourseHandler handles course-related HTTP requests, including enrollment,
// teacher assignment, attendance and grading.
type CourseHandler struct {
	directory Directory
	logger    *slog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(directory Directory, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CourseHandler")
	}
	return &CourseHandler{
		directory: directory,
		logger:    logger.With(slog.String("component", "course_handler")),
	}
}

// CreateCourse handles POST /courses requests
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := domain.NewCourse(domain.CourseParams{
		Name:              req.Name,
		CourseType:        domain.CourseType(req.CourseType),
		MaxCapacity:       req.MaxCapacity,
		DifficultyLevel:   domain.DifficultyLevel(req.DifficultyLevel),
		MaterialsRequired: req.MaterialsRequired,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := h.directory.AddCourse(r.Context(), course)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create course")
		return
	}

	log.Info("course created",
		slog.String("course_id", id),
		slog.String("course_type", req.CourseType))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// ListCourses handles GET /courses requests
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{
		Courses: h.directory.ListCourses(r.Context()),
	})
}

// GetCourse handles GET /courses/{courseID} requests
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID")
	if !ok {
		return
	}

	course, err := h.directory.GetCourse(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// GetCourseRoster handles GET /courses/{courseID}/students requests
func (h *CourseHandler) GetCourseRoster(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID")
	if !ok {
		return
	}

	students, err := h.directory.GetCourseRoster(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, StudentListResponse{Students: students})
}

// EnrollStudent handles POST /courses/{courseID}/students/{studentID} requests
func (h *CourseHandler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID", "studentID")
	if !ok {
		return
	}

	if err := h.directory.EnrollStudent(r.Context(), ids[1], ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to enroll student")
		return
	}
	shared.RespondWithMessage(w, r, "Student enrolled successfully")
}

// WithdrawStudent handles DELETE /courses/{courseID}/students/{studentID} requests
func (h *CourseHandler) WithdrawStudent(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID", "studentID")
	if !ok {
		return
	}

	if err := h.directory.WithdrawStudent(r.Context(), ids[1], ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to withdraw student")
		return
	}
	shared.RespondWithMessage(w, r, "Student withdrawn successfully")
}

// AssignTeacher handles POST /courses/{courseID}/teacher/{teacherID} requests
func (h *CourseHandler) AssignTeacher(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID", "teacherID")
	if !ok {
		return
	}

	if err := h.directory.AssignTeacher(r.Context(), ids[1], ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to assign teacher")
		return
	}
	shared.RespondWithMessage(w, r, "Teacher assigned successfully")
}

// RecordAttendance handles POST /courses/{courseID}/attendance requests
func (h *CourseHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID")
	if !ok {
		return
	}

	var req AttendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	date, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		HandleBadRequest(w, r, err)
		return
	}

	if err := h.directory.RecordAttendance(r.Context(), ids[0], date, req.PresentStudents); err != nil {
		HandleAPIError(w, r, err, "Failed to record attendance")
		return
	}
	shared.RespondWithMessage(w, r, "Attendance recorded successfully")
}

// GetCourseAttendance handles GET /courses/{courseID}/attendance requests
func (h *CourseHandler) GetCourseAttendance(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID")
	if !ok {
		return
	}

	attendance, err := h.directory.GetCourseAttendance(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AttendanceResponse{Attendance: attendance})
}

// AssignGrade handles POST /courses/{courseID}/grades/{studentID} requests
func (h *CourseHandler) AssignGrade(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID", "studentID")
	if !ok {
		return
	}

	var req GradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.directory.AssignGrade(r.Context(), ids[0], ids[1], *req.Grade); err != nil {
		HandleAPIError(w, r, err, "Failed to assign grade")
		return
	}
	shared.RespondWithMessage(w, r, "Grade assigned successfully")
}

// GetCourseGrades handles GET /courses/{courseID}/grades requests
func (h *CourseHandler) GetCourseGrades(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "courseID")
	if !ok {
		return
	}

	grades, err := h.directory.GetCourseGrades(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, GradesResponse{Grades: grades})
}
