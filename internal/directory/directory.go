package directory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/campus-api/internal/domain"
	"github.com/phrazzld/campus-api/internal/events"
	"github.com/phrazzld/campus-api/internal/platform/logger"
)

// Directory is the in-memory registry of students, teachers and courses.
// It is safe for concurrent use.
type Directory struct {
	mu       sync.RWMutex
	students map[string]*domain.Student
	teachers map[string]*domain.Teacher
	courses  map[string]*domain.Course

	emitter events.EventEmitter
	logger  *slog.Logger
}

// New creates an empty Directory. A nil emitter disables event publishing
// and a nil logger falls back to slog.Default().
func New(emitter events.EventEmitter, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		students: make(map[string]*domain.Student),
		teachers: make(map[string]*domain.Teacher),
		courses:  make(map[string]*domain.Course),
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "directory")),
	}
}

// AddStudent registers a validated student and returns its ID.
func (d *Directory) AddStudent(ctx context.Context, student *domain.Student) (string, error) {
	if student == nil {
		return "", ErrInvalidEntity
	}

	d.mu.Lock()
	if _, exists := d.students[student.ID()]; exists {
		d.mu.Unlock()
		return "", ErrDuplicateID
	}
	d.students[student.ID()] = student
	d.mu.Unlock()

	d.emit(ctx, events.TypeStudentCreated, events.EntityCreatedPayload{
		ID:   student.ID(),
		Name: student.Name(),
	})
	return student.ID(), nil
}

// AddTeacher registers a validated teacher and returns its ID.
func (d *Directory) AddTeacher(ctx context.Context, teacher *domain.Teacher) (string, error) {
	if teacher == nil {
		return "", ErrInvalidEntity
	}

	d.mu.Lock()
	if _, exists := d.teachers[teacher.ID()]; exists {
		d.mu.Unlock()
		return "", ErrDuplicateID
	}
	d.teachers[teacher.ID()] = teacher
	d.mu.Unlock()

	d.emit(ctx, events.TypeTeacherCreated, events.EntityCreatedPayload{
		ID:   teacher.ID(),
		Name: teacher.Name(),
	})
	return teacher.ID(), nil
}

// AddCourse registers a validated course and returns its ID.
func (d *Directory) AddCourse(ctx context.Context, course *domain.Course) (string, error) {
	if course == nil {
		return "", ErrInvalidEntity
	}

	d.mu.Lock()
	if _, exists := d.courses[course.ID()]; exists {
		d.mu.Unlock()
		return "", ErrDuplicateID
	}
	d.courses[course.ID()] = course
	d.mu.Unlock()

	d.emit(ctx, events.TypeCourseCreated, events.EntityCreatedPayload{
		ID:   course.ID(),
		Name: course.Name(),
	})
	return course.ID(), nil
}

// GetStudent returns a snapshot of the student with the given ID.
func (d *Directory) GetStudent(ctx context.Context, studentID string) (domain.StudentSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	student, ok := d.students[studentID]
	if !ok {
		return domain.StudentSnapshot{}, ErrStudentNotFound
	}
	return student.Snapshot(), nil
}

// GetTeacher returns a snapshot of the teacher with the given ID.
func (d *Directory) GetTeacher(ctx context.Context, teacherID string) (domain.TeacherSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	teacher, ok := d.teachers[teacherID]
	if !ok {
		return domain.TeacherSnapshot{}, ErrTeacherNotFound
	}
	return teacher.Snapshot(), nil
}

// GetCourse returns a snapshot of the course with the given ID.
func (d *Directory) GetCourse(ctx context.Context, courseID string) (domain.CourseSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	course, ok := d.courses[courseID]
	if !ok {
		return domain.CourseSnapshot{}, ErrCourseNotFound
	}
	return course.Snapshot(), nil
}

// ListStudents returns every student, sorted by name then ID.
func (d *Directory) ListStudents(ctx context.Context) []domain.StudentSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.StudentSnapshot, 0, len(d.students))
	for _, s := range d.students {
		out = append(out, s.Snapshot())
	}
	sortStudents(out)
	return out
}

// ListTeachers returns every teacher, sorted by name then ID.
func (d *Directory) ListTeachers(ctx context.Context) []domain.TeacherSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.TeacherSnapshot, 0, len(d.teachers))
	for _, t := range d.teachers {
		out = append(out, t.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListCourses returns every course, sorted by name then ID.
func (d *Directory) ListCourses(ctx context.Context) []domain.CourseSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.CourseSnapshot, 0, len(d.courses))
	for _, c := range d.courses {
		out = append(out, c.Snapshot())
	}
	sortCourses(out)
	return out
}

// EnrollStudent puts the student on the course roster and the course in the
// student's enrolled set. A student already on the roster gets
// ErrAlreadyEnrolled even when the course is full.
func (d *Directory) EnrollStudent(ctx context.Context, studentID, courseID string) error {
	log := logger.FromContextOrDefault(ctx, d.logger)

	d.mu.Lock()
	student, course, err := d.studentAndCourse(studentID, courseID)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if course.HasStudent(studentID) {
		d.mu.Unlock()
		return ErrAlreadyEnrolled
	}
	if course.IsFull() {
		d.mu.Unlock()
		log.Debug("enrollment rejected, course is full",
			slog.String("course_id", courseID),
			slog.Int("max_capacity", course.MaxCapacity()))
		return ErrCourseFull
	}
	course.AddStudent(studentID)
	student.EnrollInCourse(courseID)
	d.mu.Unlock()

	log.Debug("student enrolled",
		slog.String("student_id", studentID),
		slog.String("course_id", courseID))
	d.emit(ctx, events.TypeStudentEnrolled, events.EnrollmentPayload{
		StudentID: studentID,
		CourseID:  courseID,
	})
	return nil
}

// WithdrawStudent removes the student from the course roster and the course
// from the student's enrolled set. Grades and attendance already recorded
// for the student are kept.
func (d *Directory) WithdrawStudent(ctx context.Context, studentID, courseID string) error {
	d.mu.Lock()
	student, course, err := d.studentAndCourse(studentID, courseID)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if !course.HasStudent(studentID) {
		d.mu.Unlock()
		return ErrNotEnrolled
	}
	course.RemoveStudent(studentID)
	student.WithdrawFromCourse(courseID)
	d.mu.Unlock()

	logger.FromContextOrDefault(ctx, d.logger).Debug("student withdrawn",
		slog.String("student_id", studentID),
		slog.String("course_id", courseID))
	d.emit(ctx, events.TypeStudentWithdrawn, events.EnrollmentPayload{
		StudentID: studentID,
		CourseID:  courseID,
	})
	return nil
}

// AssignTeacher makes the teacher the course's only teacher. The course is
// removed from the previous teacher's assigned set, if there was one.
func (d *Directory) AssignTeacher(ctx context.Context, teacherID, courseID string) error {
	d.mu.Lock()
	teacher, ok := d.teachers[teacherID]
	if !ok {
		d.mu.Unlock()
		return ErrTeacherNotFound
	}
	course, ok := d.courses[courseID]
	if !ok {
		d.mu.Unlock()
		return ErrCourseNotFound
	}

	previousID := course.TeacherID()
	if previous, ok := d.teachers[previousID]; ok {
		previous.RemoveCourse(courseID)
	}
	course.SetTeacher(teacherID)
	teacher.AssignCourse(courseID)
	d.mu.Unlock()

	logger.FromContextOrDefault(ctx, d.logger).Debug("teacher assigned",
		slog.String("teacher_id", teacherID),
		slog.String("course_id", courseID),
		slog.String("previous_teacher_id", previousID))
	d.emit(ctx, events.TypeTeacherAssigned, events.TeacherAssignmentPayload{
		TeacherID:         teacherID,
		CourseID:          courseID,
		PreviousTeacherID: previousID,
	})
	return nil
}

// RecordAttendance stores the set of students present in the course on the
// given day, replacing any earlier record for the same day.
func (d *Directory) RecordAttendance(ctx context.Context, courseID string, date time.Time, presentStudentIDs []string) error {
	d.mu.Lock()
	course, ok := d.courses[courseID]
	if !ok {
		d.mu.Unlock()
		return ErrCourseNotFound
	}
	if err := course.TakeAttendance(date, presentStudentIDs); err != nil {
		d.mu.Unlock()
		return err
	}
	day := date.Format(domain.DateLayout)
	present := len(course.Attendance()[day])
	d.mu.Unlock()

	d.emit(ctx, events.TypeAttendanceRecorded, events.AttendancePayload{
		CourseID:     courseID,
		Date:         day,
		PresentCount: present,
	})
	return nil
}

// AssignGrade records the grade of an enrolled student, overwriting any
// earlier grade in the same course.
func (d *Directory) AssignGrade(ctx context.Context, courseID, studentID string, grade float64) error {
	d.mu.Lock()
	course, ok := d.courses[courseID]
	if !ok {
		d.mu.Unlock()
		return ErrCourseNotFound
	}
	if _, ok := d.students[studentID]; !ok {
		d.mu.Unlock()
		return ErrStudentNotFound
	}
	if err := course.AssignGrade(studentID, grade); err != nil {
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()

	d.emit(ctx, events.TypeGradeAssigned, events.GradePayload{
		CourseID:  courseID,
		StudentID: studentID,
		Grade:     grade,
	})
	return nil
}

// GetCourseRoster returns the students currently enrolled in the course,
// sorted by name then ID.
func (d *Directory) GetCourseRoster(ctx context.Context, courseID string) ([]domain.StudentSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	course, ok := d.courses[courseID]
	if !ok {
		return nil, ErrCourseNotFound
	}

	roster := course.Roster()
	out := make([]domain.StudentSnapshot, 0, len(roster))
	for _, id := range roster {
		if student, ok := d.students[id]; ok {
			out = append(out, student.Snapshot())
		}
	}
	sortStudents(out)
	return out, nil
}

// GetTeacherCourses returns the courses the teacher is assigned to, sorted
// by name then ID.
func (d *Directory) GetTeacherCourses(ctx context.Context, teacherID string) ([]domain.CourseSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	teacher, ok := d.teachers[teacherID]
	if !ok {
		return nil, ErrTeacherNotFound
	}
	return d.courseSnapshots(teacher.AssignedCourses()), nil
}

// GetStudentCourses returns the courses the student is enrolled in, sorted
// by name then ID.
func (d *Directory) GetStudentCourses(ctx context.Context, studentID string) ([]domain.CourseSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	student, ok := d.students[studentID]
	if !ok {
		return nil, ErrStudentNotFound
	}
	return d.courseSnapshots(student.EnrolledCourses()), nil
}

// GetCourseGrades returns the course's grades keyed by student ID. Grades
// of withdrawn students are included.
func (d *Directory) GetCourseGrades(ctx context.Context, courseID string) (map[string]float64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	course, ok := d.courses[courseID]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return course.Grades(), nil
}

// GetStudentGrades returns the student's grades keyed by course ID, across
// every course that holds one, including courses the student has left.
func (d *Directory) GetStudentGrades(ctx context.Context, studentID string) (map[string]float64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.students[studentID]; !ok {
		return nil, ErrStudentNotFound
	}

	out := make(map[string]float64)
	for id, course := range d.courses {
		if grade, ok := course.Grade(studentID); ok {
			out[id] = grade
		}
	}
	return out, nil
}

// GetCourseAttendance returns the course's attendance records keyed by
// YYYY-MM-DD day.
func (d *Directory) GetCourseAttendance(ctx context.Context, courseID string) (map[string][]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	course, ok := d.courses[courseID]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return course.Attendance(), nil
}

// studentAndCourse looks up both ends of an enrollment. Callers must hold
// the lock.
func (d *Directory) studentAndCourse(studentID, courseID string) (*domain.Student, *domain.Course, error) {
	student, ok := d.students[studentID]
	if !ok {
		return nil, nil, ErrStudentNotFound
	}
	course, ok := d.courses[courseID]
	if !ok {
		return nil, nil, ErrCourseNotFound
	}
	return student, course, nil
}

// courseSnapshots resolves course IDs to sorted snapshots. Callers must hold
// the lock.
func (d *Directory) courseSnapshots(ids []string) []domain.CourseSnapshot {
	out := make([]domain.CourseSnapshot, 0, len(ids))
	for _, id := range ids {
		if course, ok := d.courses[id]; ok {
			out = append(out, course.Snapshot())
		}
	}
	sortCourses(out)
	return out
}

// emit publishes an event for a completed mutation. Handler failures are
// logged; the mutation itself has already been applied.
func (d *Directory) emit(ctx context.Context, eventType string, payload interface{}) {
	if d.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, d.logger)

	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := d.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

func sortStudents(s []domain.StudentSnapshot) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Name != s[j].Name {
			return s[i].Name < s[j].Name
		}
		return s[i].ID < s[j].ID
	})
}

func sortCourses(c []domain.CourseSnapshot) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Name != c[j].Name {
			return c[i].Name < c[j].Name
		}
		return c[i].ID < c[j].ID
	})
}
