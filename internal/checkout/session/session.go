// Package session holds the per-checkout submission state machine and
// the contact validation gate that runs before any payment attempt.
package session

import (
	"errors"
	"regexp"
	"strings"
)

// State of the submission flow. Failure returns the session to Idle so
// the buyer can retry; nothing is persisted for a failed attempt.
type State string

const (
	Idle       State = "idle"
	Validating State = "validating"
	Submitting State = "submitting"
	Success    State = "success"
	Failure    State = "failure"
)

var ErrInvalidTransition = errors.New("invalid_transition")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Contact is the buyer-supplied contact form.
type Contact struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ValidationResult maps field names to user-facing messages. An empty
// map means the contact passed.
type ValidationResult struct {
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

func (r ValidationResult) Valid() bool {
	return len(r.FieldErrors) == 0
}

// ValidateEmail reports whether the address is syntactically acceptable.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateContact checks the contact form. requireName additionally
// demands non-empty first and last names.
func ValidateContact(contact Contact, requireName bool) ValidationResult {
	result := ValidationResult{FieldErrors: map[string]string{}}

	if strings.TrimSpace(contact.Email) == "" {
		result.FieldErrors["email"] = "email is required"
	} else if !ValidateEmail(contact.Email) {
		result.FieldErrors["email"] = "email is invalid"
	}

	if requireName {
		if strings.TrimSpace(contact.FirstName) == "" {
			result.FieldErrors["first_name"] = "first name is required"
		}
		if strings.TrimSpace(contact.LastName) == "" {
			result.FieldErrors["last_name"] = "last name is required"
		}
	}

	if len(result.FieldErrors) == 0 {
		result.FieldErrors = nil
	}
	return result
}

// Machine tracks one submission attempt through
// idle → validating → submitting → success|failure.
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: Idle}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) BeginValidation() error {
	return m.transition(Idle, Validating)
}

func (m *Machine) BeginSubmit() error {
	return m.transition(Validating, Submitting)
}

func (m *Machine) Succeed() error {
	return m.transition(Submitting, Success)
}

// Fail records the failure, then resets to Idle so the attempt can be
// repeated.
func (m *Machine) Fail() error {
	if m.state != Validating && m.state != Submitting {
		return ErrInvalidTransition
	}
	m.state = Idle
	return nil
}

func (m *Machine) transition(from, to State) error {
	if m.state != from {
		return ErrInvalidTransition
	}
	m.state = to
	return nil
}
