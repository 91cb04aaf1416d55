package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/campus-api/internal/api/shared"
	"github.com/phrazzld/campus-api/internal/domain"
	"github.com/phrazzld/campus-api/internal/platform/logger"
)

// StudentHandler handles student-related HTTP requests
type StudentHandler struct {
	directory Directory
	logger    *slog.Logger
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(directory Directory, logger *slog.Logger) *StudentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudentHandler")
	}
	return &StudentHandler{
		directory: directory,
		logger:    logger.With(slog.String("component", "student_handler")),
	}
}

// CreateStudent handles POST /students requests
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateStudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	student, err := domain.NewStudent(req.Name, domain.ContactInfo(req.ContactInfo))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := h.directory.AddStudent(r.Context(), student)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create student")
		return
	}

	log.Info("student created", slog.String("student_id", id))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// ListStudents handles GET /students requests
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StudentListResponse{
		Students: h.directory.ListStudents(r.Context()),
	})
}

// GetStudent handles GET /students/{studentID} requests
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "studentID")
	if !ok {
		return
	}

	student, err := h.directory.GetStudent(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, student)
}

// GetStudentCourses handles GET /students/{studentID}/courses requests
func (h *StudentHandler) GetStudentCourses(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "studentID")
	if !ok {
		return
	}

	courses, err := h.directory.GetStudentCourses(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{Courses: courses})
}

// GetStudentGrades handles GET /students/{studentID}/grades requests.
// The response includes grades from courses the student has withdrawn from.
func (h *StudentHandler) GetStudentGrades(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "studentID")
	if !ok {
		return
	}

	grades, err := h.directory.GetStudentGrades(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, GradesResponse{Grades: grades})
}
