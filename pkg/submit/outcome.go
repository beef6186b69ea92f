package submit

import (
	"github.com/goliatone/go-freedom/pkg/identity"
)

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind string

const (
	OutcomeNewUser  OutcomeKind = "new_user"
	OutcomeSignedIn OutcomeKind = "signed_in"
	OutcomeError    OutcomeKind = "error"
)

// ErrorKind classifies a failed submission for presentation.
type ErrorKind string

const (
	ErrorInvalidCredentials ErrorKind = "invalid_credentials"
	ErrorDuplicateAccount   ErrorKind = "duplicate_account"
	ErrorService            ErrorKind = "service_error"
)

// Error is the normalised failure carried by an error Outcome. Message is
// plain text safe to show next to the form.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return "submit: " + string(e.Kind) + ": " + e.Err.Error()
	}
	return "submit: " + string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Outcome is the result of one submission attempt. Exactly one of User,
// Session or Err is set, matching Kind.
type Outcome struct {
	Kind    OutcomeKind
	User    *identity.Identity
	Session *identity.Session
	Err     *Error
}

// NewUser wraps the identity returned by a sign-up.
func NewUser(user identity.Identity) Outcome {
	return Outcome{Kind: OutcomeNewUser, User: &user}
}

// SignedIn wraps the session returned by a credential check.
func SignedIn(session identity.Session) Outcome {
	return Outcome{Kind: OutcomeSignedIn, Session: &session}
}

// Failure builds an error outcome.
func Failure(kind ErrorKind, message string, err error) Outcome {
	return Outcome{Kind: OutcomeError, Err: &Error{Kind: kind, Message: message, Err: err}}
}

// OK reports whether the outcome is a success variant.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeNewUser || o.Kind == OutcomeSignedIn
}
