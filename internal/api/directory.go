package api

import (
	"context"
	"time"

	"github.com/phrazzld/campus-api/internal/domain"
)

// Directory is the registry behind the HTTP handlers. *directory.Directory
// satisfies it.
type Directory interface {
	AddStudent(ctx context.Context, student *domain.Student) (string, error)
	AddTeacher(ctx context.Context, teacher *domain.Teacher) (string, error)
	AddCourse(ctx context.Context, course *domain.Course) (string, error)

	GetStudent(ctx context.Context, studentID string) (domain.StudentSnapshot, error)
	GetTeacher(ctx context.Context, teacherID string) (domain.TeacherSnapshot, error)
	GetCourse(ctx context.Context, courseID string) (domain.CourseSnapshot, error)
	ListStudents(ctx context.Context) []domain.StudentSnapshot
	ListTeachers(ctx context.Context) []domain.TeacherSnapshot
	ListCourses(ctx context.Context) []domain.CourseSnapshot

	EnrollStudent(ctx context.Context, studentID, courseID string) error
	WithdrawStudent(ctx context.Context, studentID, courseID string) error
	AssignTeacher(ctx context.Context, teacherID, courseID string) error
	RecordAttendance(ctx context.Context, courseID string, date time.Time, presentStudentIDs []string) error
	AssignGrade(ctx context.Context, courseID, studentID string, grade float64) error

	GetCourseRoster(ctx context.Context, courseID string) ([]domain.StudentSnapshot, error)
	GetTeacherCourses(ctx context.Context, teacherID string) ([]domain.CourseSnapshot, error)
	GetStudentCourses(ctx context.Context, studentID string) ([]domain.CourseSnapshot, error)
	GetCourseGrades(ctx context.Context, courseID string) (map[string]float64, error)
	GetStudentGrades(ctx context.Context, studentID string) (map[string]float64, error)
	GetCourseAttendance(ctx context.Context, courseID string) (map[string][]string, error)
}
