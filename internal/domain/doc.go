// Package domain contains the university's core entities: the Person
// variants (Student, Teacher) and Course. Each entity is created through a
// validating constructor, so an invalid entity is never observable.
//
// Entities only mutate their own state. Keeping both sides of a
// relationship (roster and enrolled set, course teacher and assigned set)
// consistent is the job of the directory package.
package domain
