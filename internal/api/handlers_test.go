package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/campus-api/internal/directory"
	"github.com/phrazzld/campus-api/internal/domain"
	"github.com/phrazzld/campus-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts every handler on a bare chi router backed by dir.
func newTestRouter(t *testing.T, dir Directory) http.Handler {
	t.Helper()
	_, log := logger.NewTestLogger(t)

	students := NewStudentHandler(dir, log)
	teachers := NewTeacherHandler(dir, log)
	courses := NewCourseHandler(dir, log)

	r := chi.NewRouter()
	r.Post("/students", students.CreateStudent)
	r.Get("/students", students.ListStudents)
	r.Get("/students/{studentID}", students.GetStudent)
	r.Get("/students/{studentID}/courses", students.GetStudentCourses)
	r.Get("/students/{studentID}/grades", students.GetStudentGrades)
	r.Post("/teachers", teachers.CreateTeacher)
	r.Get("/teachers", teachers.ListTeachers)
	r.Get("/teachers/{teacherID}", teachers.GetTeacher)
	r.Get("/teachers/{teacherID}/courses", teachers.GetTeacherCourses)
	r.Post("/courses", courses.CreateCourse)
	r.Get("/courses", courses.ListCourses)
	r.Get("/courses/{courseID}", courses.GetCourse)
	r.Get("/courses/{courseID}/students", courses.GetCourseRoster)
	r.Post("/courses/{courseID}/students/{studentID}", courses.EnrollStudent)
	r.Delete("/courses/{courseID}/students/{studentID}", courses.WithdrawStudent)
	r.Post("/courses/{courseID}/teacher/{teacherID}", courses.AssignTeacher)
	r.Post("/courses/{courseID}/attendance", courses.RecordAttendance)
	r.Get("/courses/{courseID}/attendance", courses.GetCourseAttendance)
	r.Post("/courses/{courseID}/grades/{studentID}", courses.AssignGrade)
	r.Get("/courses/{courseID}/grades", courses.GetCourseGrades)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createID(t *testing.T, h http.Handler, path, body string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, ok := decode(t, rec)["id"].(string)
	require.True(t, ok)
	return id
}

const (
	annBody  = `{"name":"Ann","contact_info":{"email":"ann@example.com","phone":"555-0100"}}`
	bobBody  = `{"name":"Bob","contact_info":{"email":"bob@example.com","phone":"555-0101"}}`
	janeBody = `{"name":"Jane Smith","contact_info":{"email":"jane@example.com","phone":"555-0200"},"specializations":["math"]}`
	c1Body   = `{"name":"Algebra","course_type":"math","max_capacity":1,"difficulty_level":"beginner"}`
)

func TestStudentEndpoints(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	id := createID(t, h, "/students", annBody)

	rec := do(t, h, http.MethodGet, "/students/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	student := decode(t, rec)
	assert.Equal(t, "Ann", student["name"])
	assert.Equal(t, "student", student["role"])
	assert.Equal(t, []interface{}{}, student["enrolled_courses"])

	rec = do(t, h, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["students"], 1)

	rec = do(t, h, http.MethodGet, "/students/"+id+"/grades", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{}, decode(t, rec)["grades"])
}

func TestCreateStudentErrors(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedReason string
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest, ReasonBadRequest},
		{"empty body", ``, http.StatusBadRequest, ReasonBadRequest},
		{"empty name", `{"name":" ","contact_info":{"email":"a@x.com","phone":"1"}}`, http.StatusBadRequest, ReasonValidation},
		{"missing phone", `{"name":"Ann","contact_info":{"email":"a@x.com"}}`, http.StatusBadRequest, ReasonValidation},
		{"missing contact info", `{"name":"Ann"}`, http.StatusBadRequest, ReasonValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/students", tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tc.expectedReason, body["reason"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestTeacherEndpoints(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	tid := createID(t, h, "/teachers", janeBody)
	cid := createID(t, h, "/courses", c1Body)

	rec := do(t, h, http.MethodPost, "/courses/"+cid+"/teacher/"+tid, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/teachers/"+tid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	teacher := decode(t, rec)
	assert.Equal(t, []interface{}{"math"}, teacher["specializations"])
	assert.Equal(t, []interface{}{cid}, teacher["assigned_courses"])

	rec = do(t, h, http.MethodGet, "/teachers/"+tid+"/courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	courses := decode(t, rec)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, tid, courses[0].(map[string]interface{})["teacher_id"])

	rec = do(t, h, http.MethodGet, "/teachers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["teachers"], 1)

	rec = do(t, h, http.MethodPost, "/teachers",
		`{"name":"Jane","contact_info":{"email":"a@x.com","phone":"1"},"specializations":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ReasonValidation, decode(t, rec)["reason"])
}

func TestCreateCourseVariants(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	artID := createID(t, h, "/courses",
		`{"name":"Intro to Painting","course_type":"art","max_capacity":20,"materials_required":["paint brushes","canvas","acrylic paint"]}`)

	rec := do(t, h, http.MethodGet, "/courses/"+artID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	art := decode(t, rec)
	assert.Equal(t, []interface{}{"acrylic paint", "canvas", "paint brushes"}, art["materials_required"])
	assert.NotContains(t, art, "difficulty_level")
	assert.Nil(t, art["teacher_id"])

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"name":"Chemistry","course_type":"science","max_capacity":10}`},
		{"zero capacity", `{"name":"Algebra","course_type":"math","max_capacity":0,"difficulty_level":"beginner"}`},
		{"math without difficulty", `{"name":"Algebra","course_type":"math","max_capacity":10}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/courses", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, ReasonValidation, decode(t, rec)["reason"])
		})
	}

	rec = do(t, h, http.MethodGet, "/courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["courses"], 1)
}

func TestEnrollmentEndpoints(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	s1 := createID(t, h, "/students", annBody)
	s2 := createID(t, h, "/students", bobBody)
	c1 := createID(t, h, "/courses", c1Body)

	rec := do(t, h, http.MethodPost, "/courses/"+c1+"/students/"+s1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Student enrolled successfully", decode(t, rec)["message"])

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedReason string
	}{
		{"course full", http.MethodPost, "/courses/" + c1 + "/students/" + s2, http.StatusConflict, ReasonFull},
		{"already enrolled", http.MethodPost, "/courses/" + c1 + "/students/" + s1, http.StatusConflict, ReasonAlreadyEnrolled},
		{"withdraw not enrolled", http.MethodDelete, "/courses/" + c1 + "/students/" + s2, http.StatusConflict, ReasonNotEnrolled},
		{"unknown student", http.MethodPost, "/courses/" + c1 + "/students/missing", http.StatusNotFound, ReasonUnknownID},
		{"unknown course", http.MethodPost, "/courses/missing/students/" + s1, http.StatusNotFound, ReasonUnknownID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, "")
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedReason, decode(t, rec)["reason"])
		})
	}

	rec = do(t, h, http.MethodGet, "/courses/"+c1+"/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	roster := decode(t, rec)["students"].([]interface{})
	require.Len(t, roster, 1)
	assert.Equal(t, s1, roster[0].(map[string]interface{})["id"])

	rec = do(t, h, http.MethodGet, "/students/"+s1+"/courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["courses"], 1)

	rec = do(t, h, http.MethodDelete, "/courses/"+c1+"/students/"+s1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/courses/"+c1+"/students/"+s2, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttendanceEndpoints(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	s1 := createID(t, h, "/students", annBody)
	s2 := createID(t, h, "/students", bobBody)
	cid := createID(t, h, "/courses",
		`{"name":"Geometry","course_type":"math","max_capacity":2,"difficulty_level":"intermediate"}`)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/courses/"+cid+"/students/"+s1, "").Code)

	rec := do(t, h, http.MethodPost, "/courses/"+cid+"/attendance",
		`{"date":"2023-10-01","present_students":["`+s1+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedReason string
	}{
		{"bad date", `{"date":"10/01/2023","present_students":[]}`, http.StatusBadRequest, ReasonBadRequest},
		{"missing date", `{"present_students":[]}`, http.StatusBadRequest, ReasonBadRequest},
		{"student not enrolled", `{"date":"2023-10-02","present_students":["` + s2 + `"]}`, http.StatusBadRequest, ReasonValidation},
		{"more present than enrolled", `{"date":"2023-10-02","present_students":["` + s1 + `","` + s2 + `"]}`, http.StatusBadRequest, ReasonValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/courses/"+cid+"/attendance", tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedReason, decode(t, rec)["reason"])
		})
	}

	rec = do(t, h, http.MethodGet, "/courses/"+cid+"/attendance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"2023-10-01": []interface{}{s1}}, decode(t, rec)["attendance"])
}

func TestGradeEndpoints(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	sid := createID(t, h, "/students", annBody)
	cid := createID(t, h, "/courses", c1Body)

	rec := do(t, h, http.MethodPost, "/courses/"+cid+"/grades/"+sid, `{"grade":90}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "grading requires enrollment")
	assert.Equal(t, ReasonValidation, decode(t, rec)["reason"])

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/courses/"+cid+"/students/"+sid, "").Code)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedReason string
	}{
		{"missing grade", `{}`, http.StatusBadRequest, ReasonBadRequest},
		{"grade as string", `{"grade":"A"}`, http.StatusBadRequest, ReasonBadRequest},
		{"out of range", `{"grade":101}`, http.StatusBadRequest, ReasonValidation},
		{"negative", `{"grade":-1}`, http.StatusBadRequest, ReasonValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/courses/"+cid+"/grades/"+sid, tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedReason, decode(t, rec)["reason"])
		})
	}

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/courses/"+cid+"/grades/"+sid, `{"grade":0}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/courses/"+cid+"/students/"+sid, "").Code)

	rec = do(t, h, http.MethodGet, "/courses/"+cid+"/grades", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{sid: float64(0)}, decode(t, rec)["grades"])

	rec = do(t, h, http.MethodGet, "/students/"+sid+"/grades", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{cid: float64(0)}, decode(t, rec)["grades"])
}

func TestUnknownIDReads(t *testing.T) {
	h := newTestRouter(t, directory.New(nil, nil))

	paths := []string{
		"/students/missing",
		"/students/missing/courses",
		"/students/missing/grades",
		"/teachers/missing",
		"/teachers/missing/courses",
		"/courses/missing",
		"/courses/missing/students",
		"/courses/missing/attendance",
		"/courses/missing/grades",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, path, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, ReasonUnknownID, decode(t, rec)["reason"])
		})
	}
}

// failingDirectory returns an unmapped error from every mutation.
type failingDirectory struct {
	Directory
}

func (failingDirectory) AddStudent(context.Context, *domain.Student) (string, error) {
	return "", errors.New("storage for ann@example.com unavailable")
}

func TestUnexpectedErrorsAreHidden(t *testing.T) {
	h := newTestRouter(t, failingDirectory{})

	rec := do(t, h, http.MethodPost, "/students", annBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, ReasonInternal, body["reason"])
	assert.Equal(t, "Failed to create student", body["error"])
	assert.NotContains(t, rec.Body.String(), "ann@example.com")
}

func TestNewHandlersRequireLogger(t *testing.T) {
	dir := directory.New(nil, nil)
	assert.Panics(t, func() { NewStudentHandler(dir, nil) })
	assert.Panics(t, func() { NewTeacherHandler(dir, nil) })
	assert.Panics(t, func() { NewCourseHandler(dir, nil) })
}
