package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Role discriminates the Person variants.
type Role string

// Possible role values
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Required contact info keys.
const (
	ContactEmail = "email"
	ContactPhone = "phone"
)

// requiredContactFields lists the keys every Person must carry, in the
// order they are checked.
var requiredContactFields = []string{ContactEmail, ContactPhone}

// ContactInfo maps contact channels (email, phone, ...) to values.
// Only the presence of the required keys is validated.
type ContactInfo map[string]string

// Clone returns an independent copy of the contact info.
func (c ContactInfo) Clone() ContactInfo {
	if c == nil {
		return nil
	}
	out := make(ContactInfo, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Person is a member of the university. The set of implementations is
// closed: only Student and Teacher satisfy it.
type Person interface {
	ID() string
	Name() string
	ContactInfo() ContactInfo
	Role() Role

	sealed()
}

// person holds the identity shared by every Person variant.
type person struct {
	id          string
	name        string
	contactInfo ContactInfo
}

func newPerson(name string, contactInfo ContactInfo) (person, error) {
	p := person{
		id:          uuid.New().String(),
		name:        strings.TrimSpace(name),
		contactInfo: contactInfo.Clone(),
	}
	if err := p.validate(); err != nil {
		return person{}, err
	}
	return p, nil
}

func (p person) validate() error {
	if p.name == "" {
		return newFieldError("name", ErrEmptyName)
	}
	if p.contactInfo == nil {
		return newFieldError("contact_info", ErrMissingContactInfo)
	}
	for _, field := range requiredContactFields {
		if _, ok := p.contactInfo[field]; !ok {
			return NewValidationError("contact_info",
				fmt.Sprintf("contact info must include %s", field), ErrMissingContactField)
		}
	}
	return nil
}

// ID returns the person's immutable identifier.
func (p *person) ID() string { return p.id }

// Name returns the person's display name.
func (p *person) Name() string { return p.name }

// ContactInfo returns a copy of the person's contact details.
func (p *person) ContactInfo() ContactInfo { return p.contactInfo.Clone() }

func (p *person) sealed() {}

// idSet is a set of entity IDs.
type idSet map[string]struct{}

func (s idSet) add(id string)    { s[id] = struct{}{} }
func (s idSet) remove(id string) { delete(s, id) }

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// sorted returns the members in lexical order. Never returns nil so the
// JSON form is always a list.
func (s idSet) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
