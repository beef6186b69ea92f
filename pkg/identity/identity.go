// Package identity describes the contract between the authentication form
// and the backend identity service. Only the request/response shapes and
// error classes live here; transports are the caller's concern.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-freedom/pkg/model"
)

var (
	// ErrInvalidCredentials signals a rejected email/password pair.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	// ErrDuplicateAccount signals that an account already exists for the email.
	ErrDuplicateAccount = errors.New("identity: account already exists")
	// ErrUnavailable signals a backend failure unrelated to user input.
	ErrUnavailable = errors.New("identity: service unavailable")
)

// Service is the identity backend as seen by the submission coordinator.
type Service interface {
	CreateAccount(ctx context.Context, profile Profile) (Identity, error)
	CheckCredentials(ctx context.Context, email, password string) (Session, error)
}

// Profile is the sign-up payload. Its JSON keys match the SignUp field
// catalog exactly.
type Profile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dob"`
	SSN         string `json:"ssn"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// ProfileFromValues copies the SignUp fields out of a form value map. Keys
// outside the catalog are not carried over.
func ProfileFromValues(values map[string]string) Profile {
	return Profile{
		FirstName:   values[model.FieldFirstName],
		LastName:    values[model.FieldLastName],
		Address1:    values[model.FieldAddress1],
		City:        values[model.FieldCity],
		State:       values[model.FieldState],
		PostalCode:  values[model.FieldPostalCode],
		DateOfBirth: values[model.FieldDateOfBirth],
		SSN:         values[model.FieldSSN],
		Email:       values[model.FieldEmail],
		Password:    values[model.FieldPassword],
	}
}

// Values returns the profile keyed by field name.
func (p Profile) Values() map[string]string {
	return map[string]string{
		model.FieldFirstName:   p.FirstName,
		model.FieldLastName:    p.LastName,
		model.FieldAddress1:    p.Address1,
		model.FieldCity:        p.City,
		model.FieldState:       p.State,
		model.FieldPostalCode:  p.PostalCode,
		model.FieldDateOfBirth: p.DateOfBirth,
		model.FieldSSN:         p.SSN,
		model.FieldEmail:       p.Email,
		model.FieldPassword:    p.Password,
	}
}

// Identity is the authenticated user returned by a successful sign-up.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Address1    string    `json:"address1,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	PostalCode  string    `json:"postalCode,omitempty"`
	DateOfBirth string    `json:"dob,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DisplayName joins first and last name, falling back to the email.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Email
	}
	return name
}

// Session confirms a successful credential check.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Error lets a service attach a user-facing message to one of the sentinel
// error classes. errors.Is(err, ErrDuplicateAccount) keeps working through it.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// NewError wraps kind with a user-facing message.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
