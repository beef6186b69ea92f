// Package submit turns validated form values into identity service calls and
// normalises every result, including failures and panics, into an Outcome.
package submit

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
)

// Default user-facing messages per error kind.
var DefaultMessages = map[ErrorKind]string{
	ErrorInvalidCredentials: "Invalid email or password.",
	ErrorDuplicateAccount:   "An account with this email already exists.",
	ErrorService:            "Something went wrong. Please try again.",
}

// Coordinator calls the identity service for one submission at a time. It
// does not guard against concurrent use; the form state machine does.
type Coordinator struct {
	service  identity.Service
	logger   *slog.Logger
	messages map[ErrorKind]string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMessages overrides the default message for the given kinds.
func WithMessages(messages map[ErrorKind]string) Option {
	return func(c *Coordinator) {
		for kind, msg := range messages {
			if strings.TrimSpace(msg) != "" {
				c.messages[kind] = msg
			}
		}
	}
}

// New builds a coordinator around service.
func New(service identity.Service, options ...Option) *Coordinator {
	c := &Coordinator{
		service:  service,
		logger:   slog.Default(),
		messages: make(map[ErrorKind]string, len(DefaultMessages)),
	}
	for kind, msg := range DefaultMessages {
		c.messages[kind] = msg
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Submit runs the identity call for mode. SignUp sends the full profile,
// SignIn sends only email and password. It never returns a Go error and
// never panics: every failure is folded into an error Outcome.
func (c *Coordinator) Submit(ctx context.Context, mode model.FormMode, values map[string]string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("submit: identity service panic: %v", r)
			c.logger.Error("submit: recovered panic", "mode", mode, "error", err)
			out = c.failure(ErrorService, err)
		}
	}()

	if c.service == nil {
		return c.failure(ErrorService, errors.New("submit: identity service is nil"))
	}

	switch mode {
	case model.FormModeSignUp:
		user, err := c.service.CreateAccount(ctx, identity.ProfileFromValues(values))
		if err != nil {
			return c.classify(mode, err)
		}
		c.logger.Debug("submit: account created", "user_id", user.ID)
		return NewUser(user)

	case model.FormModeSignIn:
		session, err := c.service.CheckCredentials(ctx, values[model.FieldEmail], values[model.FieldPassword])
		if err != nil {
			return c.classify(mode, err)
		}
		c.logger.Debug("submit: credentials accepted", "user_id", session.UserID)
		return SignedIn(session)
	}

	return c.failure(ErrorService, fmt.Errorf("submit: unknown form mode %q", string(mode)))
}

func (c *Coordinator) classify(mode model.FormMode, err error) Outcome {
	kind := ErrorService
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		kind = ErrorInvalidCredentials
	case errors.Is(err, identity.ErrDuplicateAccount):
		kind = ErrorDuplicateAccount
	}
	c.logger.Warn("submit: identity call failed", "mode", mode, "kind", kind, "error", err)
	return c.failure(kind, err)
}

func (c *Coordinator) failure(kind ErrorKind, err error) Outcome {
	msg := c.messages[kind]
	var svcErr *identity.Error
	if kind != ErrorService && errors.As(err, &svcErr) {
		if cleaned := PlainText(svcErr.Message); cleaned != "" {
			msg = cleaned
		}
	}
	return Failure(kind, msg, err)
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// PlainText strips markup from a service-provided message and collapses
// whitespace. The result is unescaped text; renderers escape on output.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	cleaned := html.UnescapeString(textPolicy.Sanitize(trimmed))
	return strings.Join(strings.Fields(cleaned), " ")
}
