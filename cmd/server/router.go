package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/campus-api/internal/api"
	apiMiddleware "github.com/phrazzld/campus-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	if app.metrics != nil {
		r.Use(apiMiddleware.RequestMetrics(app.metrics))
	}

	studentHandler := api.NewStudentHandler(app.directory, app.logger)
	teacherHandler := api.NewTeacherHandler(app.directory, app.logger)
	courseHandler := api.NewCourseHandler(app.directory, app.logger)

	r.Route("/students", func(r chi.Router) {
		r.Post("/", studentHandler.CreateStudent)
		r.Get("/", studentHandler.ListStudents)
		r.Route("/{studentID}", func(r chi.Router) {
			r.Get("/", studentHandler.GetStudent)
			r.Get("/courses", studentHandler.GetStudentCourses)
			r.Get("/grades", studentHandler.GetStudentGrades)
		})
	})

	r.Route("/teachers", func(r chi.Router) {
		r.Post("/", teacherHandler.CreateTeacher)
		r.Get("/", teacherHandler.ListTeachers)
		r.Route("/{teacherID}", func(r chi.Router) {
			r.Get("/", teacherHandler.GetTeacher)
			r.Get("/courses", teacherHandler.GetTeacherCourses)
		})
	})

	r.Route("/courses", func(r chi.Router) {
		r.Post("/", courseHandler.CreateCourse)
		r.Get("/", courseHandler.ListCourses)
		r.Route("/{courseID}", func(r chi.Router) {
			r.Get("/", courseHandler.GetCourse)

			// Enrollment
			r.Get("/students", courseHandler.GetCourseRoster)
			r.Post("/students/{studentID}", courseHandler.EnrollStudent)
			r.Delete("/students/{studentID}", courseHandler.WithdrawStudent)

			r.Post("/teacher/{teacherID}", courseHandler.AssignTeacher)

			r.Post("/attendance", courseHandler.RecordAttendance)
			r.Get("/attendance", courseHandler.GetCourseAttendance)

			r.Post("/grades/{studentID}", courseHandler.AssignGrade)
			r.Get("/grades", courseHandler.GetCourseGrades)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	if app.metrics != nil {
		r.Method(http.MethodGet, app.config.Metrics.Path, app.metrics.Handler())
	}

	return r
}
