package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/campus-api/internal/api/shared"
	"github.com/phrazzld/campus-api/internal/domain"
	"github.com/phrazzld/campus-api/internal/platform/logger"
)

// TeacherHandler handles teacher-related HTTP requests
type TeacherHandler struct {
	directory Directory
	logger    *slog.Logger
}

// NewTeacherHandler creates a new TeacherHandler
func NewTeacherHandler(directory Directory, logger *slog.Logger) *TeacherHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TeacherHandler")
	}
	return &TeacherHandler{
		directory: directory,
		logger:    logger.With(slog.String("component", "teacher_handler")),
	}
}

// CreateTeacher handles POST /teachers requests
func (h *TeacherHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTeacherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	teacher, err := domain.NewTeacher(req.Name, domain.ContactInfo(req.ContactInfo), req.Specializations)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := h.directory.AddTeacher(r.Context(), teacher)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create teacher")
		return
	}

	log.Info("teacher created", slog.String("teacher_id", id))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// ListTeachers handles GET /teachers requests
func (h *TeacherHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, TeacherListResponse{
		Teachers: h.directory.ListTeachers(r.Context()),
	})
}

// GetTeacher handles GET /teachers/{teacherID} requests
func (h *TeacherHandler) GetTeacher(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "teacherID")
	if !ok {
		return
	}

	teacher, err := h.directory.GetTeacher(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, teacher)
}

// GetTeacherCourses handles GET /teachers/{teacherID}/courses requests
func (h *TeacherHandler) GetTeacherCourses(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "teacherID")
	if !ok {
		return
	}

	courses, err := h.directory.GetTeacherCourses(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{Courses: courses})
}
