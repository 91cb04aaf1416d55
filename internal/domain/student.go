package domain

// Student is a Person who enrolls in courses.
//
// The enrolled course set is only ever changed by the directory, which
// updates the course roster in the same step.
type Student struct {
	person
	enrolledCourses idSet
}

// StudentSnapshot is the serialized form of a Student.
type StudentSnapshot struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ContactInfo     ContactInfo `json:"contact_info"`
	Role            Role        `json:"role"`
	EnrolledCourses []string    `json:"enrolled_courses"`
}

// NewStudent creates a new Student with a generated ID.
// Returns a ValidationError if the name is empty or contact info lacks
// email or phone.
func NewStudent(name string, contactInfo ContactInfo) (*Student, error) {
	p, err := newPerson(name, contactInfo)
	if err != nil {
		return nil, err
	}
	return &Student{
		person:          p,
		enrolledCourses: make(idSet),
	}, nil
}

// Role implements Person.
func (s *Student) Role() Role { return RoleStudent }

// EnrollInCourse records courseID in the student's own enrolled set.
func (s *Student) EnrollInCourse(courseID string) {
	s.enrolledCourses.add(courseID)
}

// WithdrawFromCourse removes courseID from the student's own enrolled set.
func (s *Student) WithdrawFromCourse(courseID string) {
	s.enrolledCourses.remove(courseID)
}

// IsEnrolledIn reports whether courseID is in the student's enrolled set.
func (s *Student) IsEnrolledIn(courseID string) bool {
	return s.enrolledCourses.has(courseID)
}

// EnrolledCourses returns the enrolled course IDs in sorted order.
func (s *Student) EnrolledCourses() []string {
	return s.enrolledCourses.sorted()
}

// Snapshot returns a detached copy of the student's state.
func (s *Student) Snapshot() StudentSnapshot {
	return StudentSnapshot{
		ID:              s.id,
		Name:            s.name,
		ContactInfo:     s.contactInfo.Clone(),
		Role:            s.Role(),
		EnrolledCourses: s.enrolledCourses.sorted(),
	}
}
