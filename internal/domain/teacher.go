package domain

import (
	"fmt"
	"strings"
)

// Teacher is a Person who teaches courses.
type Teacher struct {
	person
	specializations []string
	assignedCourses idSet
}

// TeacherSnapshot is the serialized form of a Teacher.
type TeacherSnapshot struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ContactInfo     ContactInfo `json:"contact_info"`
	Role            Role        `json:"role"`
	Specializations []string    `json:"specializations"`
	AssignedCourses []string    `json:"assigned_courses"`
}

// NewTeacher creates a new Teacher with a generated ID.
// Specializations keep their given order; at least one is required and
// none may be blank.
func NewTeacher(name string, contactInfo ContactInfo, specializations []string) (*Teacher, error) {
	p, err := newPerson(name, contactInfo)
	if err != nil {
		return nil, err
	}

	t := &Teacher{
		person:          p,
		specializations: append([]string(nil), specializations...),
		assignedCourses: make(idSet),
	}
	if err := t.validateSpecializations(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Teacher) validateSpecializations() error {
	if len(t.specializations) == 0 {
		return newFieldError("specializations", ErrNoSpecializations)
	}
	for i, spec := range t.specializations {
		if strings.TrimSpace(spec) == "" {
			return newFieldError(fmt.Sprintf("specializations[%d]", i), ErrEmptySpecialization)
		}
	}
	return nil
}

// Role implements Person.
func (t *Teacher) Role() Role { return RoleTeacher }

// Specializations returns a copy of the teacher's specializations.
func (t *Teacher) Specializations() []string {
	return append([]string(nil), t.specializations...)
}

// AssignCourse adds courseID to the teacher's own assigned set.
func (t *Teacher) AssignCourse(courseID string) {
	t.assignedCourses.add(courseID)
}

// RemoveCourse drops courseID from the teacher's own assigned set.
func (t *Teacher) RemoveCourse(courseID string) {
	t.assignedCourses.remove(courseID)
}

// Teaches reports whether courseID is in the teacher's assigned set.
func (t *Teacher) Teaches(courseID string) bool {
	return t.assignedCourses.has(courseID)
}

// AssignedCourses returns the assigned course IDs in sorted order.
func (t *Teacher) AssignedCourses() []string {
	return t.assignedCourses.sorted()
}

// Snapshot returns a detached copy of the teacher's state.
func (t *Teacher) Snapshot() TeacherSnapshot {
	return TeacherSnapshot{
		ID:              t.id,
		Name:            t.name,
		ContactInfo:     t.contactInfo.Clone(),
		Role:            t.Role(),
		Specializations: t.Specializations(),
		AssignedCourses: t.assignedCourses.sorted(),
	}
}
