// Package form implements the authentication form controller: a state
// machine that owns the field values, their validation results and the
// submission lifecycle for one SignIn or SignUp form instance.
//
// All mutation goes through the Machine. Field edits and blurs are applied in
// call order under the machine lock; Submit validates the whole schema,
// moves to StateSubmitting and runs the identity call in its own goroutine,
// which resumes the machine through a generation-checked completion. A
// completion that arrives after Unmount, or for a superseded submission, is
// discarded without touching state.
//
// Transition hooks and observers run outside the machine lock, one change at
// a time and in the order the changes were applied, whichever goroutine made
// them.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/submit"
	"github.com/goliatone/go-freedom/pkg/validation"
)

// DashboardPath is where a successful sign in navigates.
const DashboardPath = "/"

var (
	// ErrSubmitInFlight is returned by Submit while a submission is pending.
	// The call has no other effect.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrInvalid is returned by Submit when the values fail validation. No
	// identity call is made; the field errors are on the machine.
	ErrInvalid = errors.New("form: validation failed")
	// ErrClosed is returned once the form reached a terminal state.
	ErrClosed = errors.New("form: form is closed")
)

// Router performs navigation on behalf of the form.
type Router interface {
	Navigate(path string)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(path string)

func (f RouterFunc) Navigate(path string) { f(path) }

// Submitter runs one submission. submit.Coordinator implements it.
type Submitter interface {
	Submit(ctx context.Context, mode model.FormMode, values map[string]string) submit.Outcome
}

type transition struct {
	from State
	to   State
}

// emission is one locked change: its transitions and the view it produced.
type emission struct {
	events    []transition
	view      View
	hooks     []TransitionHook
	observers []Observer
}

func (e emission) deliver() {
	for _, t := range e.events {
		for _, hook := range e.hooks {
			hook(t.from, t.to)
		}
	}
	for _, observer := range e.observers {
		observer(e.view)
	}
}

// Machine is the form state machine for one form instance.
type Machine struct {
	mu sync.Mutex

	mode      model.FormMode
	schema    *validation.Schema
	fields    []model.Field
	submitter Submitter
	router    Router
	logger    *slog.Logger
	strict    bool
	decorator FieldDecorator
	observers []Observer
	hooks     []TransitionHook

	state     State
	values    map[string]string
	errors    validation.Result
	formError *submit.Error
	user      *identity.Identity
	session   *identity.Session

	generation uint64
	cancel     context.CancelFunc
	inflight   chan struct{}

	pending []transition

	// outMu guards outbox and delivering. It is taken inside mu when queueing
	// and on its own when delivering, never the other way round.
	outMu      sync.Mutex
	outbox     []emission
	delivering bool
}

// New builds a machine in StateAnonymous with empty values.
func New(mode model.FormMode, submitter Submitter, router Router, options ...Option) (*Machine, error) {
	schema, err := validation.Resolve(mode)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	if submitter == nil {
		return nil, errors.New("form: submitter is required")
	}
	if router == nil {
		return nil, errors.New("form: router is required")
	}

	m := &Machine{
		mode:      mode,
		schema:    schema,
		submitter: submitter,
		router:    router,
		logger:    slog.Default(),
		state:     StateAnonymous,
		values:    make(map[string]string),
		errors:    make(validation.Result),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	m.fields = m.presentFields()
	return m, nil
}

// Mode reports the form mode.
func (m *Machine) Mode() model.FormMode {
	return m.mode
}

// Schema returns the validation schema in use.
func (m *Machine) Schema() *validation.Schema {
	return m.schema
}

// State reports the current machine state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SubmissionState reports the coarse submission lifecycle.
func (m *Machine) SubmissionState() SubmissionState {
	return m.State().Submission()
}

// Values returns a copy of the current field values.
func (m *Machine) Values() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneValues(m.values)
}

// Errors returns a copy of the current field errors.
func (m *Machine) Errors() validation.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors.Clone()
}

// FormError returns the form-level error shown after a failed submission.
func (m *Machine) FormError() *submit.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.formError == nil {
		return nil
	}
	err := *m.formError
	return &err
}

// User returns the identity created by a successful sign up. Its presence
// switches the view from credential fields to the account linking step.
func (m *Machine) User() (identity.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return identity.Identity{}, false
	}
	return *m.user, true
}

// Session returns the session confirmed by a successful sign in.
func (m *Machine) Session() (identity.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return identity.Session{}, false
	}
	return *m.session, true
}

// Submit validates every field and, when they pass, starts the identity call
// bounded by ctx. It returns once the machine is in StateSubmitting; use Wait
// or SubmitAndWait to block until the outcome is applied.
func (m *Machine) Submit(ctx context.Context) error {
	if ctx == nil {
		return errors.New("form: context is required")
	}

	m.mu.Lock()
	switch {
	case m.state == StateSubmitting:
		m.mu.Unlock()
		m.logger.Debug("form: submit ignored while in flight", "mode", m.mode)
		return ErrSubmitInFlight
	case m.state.Terminal():
		m.mu.Unlock()
		return ErrClosed
	}

	if m.state == StateFailed {
		m.transitionLocked(StateAnonymous)
	}
	m.formError = nil
	m.transitionLocked(StateValidating)

	result := m.schema.Validate(m.values)
	m.errors = result
	if !result.Valid() {
		m.transitionLocked(StateAnonymous)
		m.unlockAndEmit()
		m.logger.Debug("form: submit blocked by validation", "mode", m.mode, "fields", result.Fields())
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(result.Fields(), ", "))
	}

	m.transitionLocked(StateSubmitting)
	m.generation++
	gen := m.generation
	callCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	done := make(chan struct{})
	m.inflight = done
	values := cloneValues(m.values)
	m.unlockAndEmit()

	m.logger.Debug("form: submitting", "mode", m.mode, "generation", gen)
	go m.run(callCtx, cancel, gen, values, done)
	return nil
}

// Wait blocks until the latest submission, if any, has been applied or
// discarded.
func (m *Machine) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.inflight
	m.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitAndWait runs Submit and Wait. It returns ErrInvalid,
// ErrSubmitInFlight, ErrClosed, the form-level *submit.Error of a failed
// submission, or nil on success.
func (m *Machine) SubmitAndWait(ctx context.Context) error {
	if err := m.Submit(ctx); err != nil {
		return err
	}
	if err := m.Wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateFailed && m.formError != nil {
		err := *m.formError
		return &err
	}
	return nil
}

// Unmount discards the form. An in-flight identity call is cancelled and its
// completion ignored. Values are dropped.
func (m *Machine) Unmount() {
	m.mu.Lock()
	if m.state == StateUnmounted || m.state == StateSignedIn {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.cancel = nil
	m.generation++
	m.values = make(map[string]string)
	m.transitionLocked(StateUnmounted)
	m.queueLocked()
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.logger.Debug("form: unmounted", "mode", m.mode)
	m.deliver()
}

func (m *Machine) run(ctx context.Context, cancel context.CancelFunc, gen uint64, values map[string]string, done chan struct{}) {
	defer close(done)
	defer cancel()

	var out submit.Outcome
	func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("form: submitter panic", "mode", m.mode, "panic", r)
				out = submit.Failure(submit.ErrorService, submit.DefaultMessages[submit.ErrorService], fmt.Errorf("form: submitter panic: %v", r))
			}
		}()
		out = m.submitter.Submit(ctx, m.mode, values)
	}()
	m.complete(gen, out)
}

func (m *Machine) complete(gen uint64, out submit.Outcome) {
	m.mu.Lock()
	if m.state != StateSubmitting || gen != m.generation {
		state := m.state
		m.mu.Unlock()
		m.logger.Debug("form: discarding stale submission outcome", "mode", m.mode, "state", state, "outcome", out.Kind)
		return
	}
	m.cancel = nil

	switch {
	case out.Kind == submit.OutcomeNewUser && out.User != nil:
		user := *out.User
		m.user = &user
		m.errors = make(validation.Result)
		m.transitionLocked(StateAuthenticatedUnlinked)
		m.unlockAndEmit()
		m.logger.Info("form: account created", "user_id", user.ID)

	case out.Kind == submit.OutcomeSignedIn && out.Session != nil:
		session := *out.Session
		m.session = &session
		m.values = make(map[string]string)
		m.errors = make(validation.Result)
		m.transitionLocked(StateSignedIn)
		m.queueLocked()
		m.mu.Unlock()
		m.logger.Info("form: signed in", "user_id", session.UserID)
		m.router.Navigate(DashboardPath)
		m.deliver()

	default:
		failure := out.Err
		if failure == nil {
			failure = &submit.Error{
				Kind:    submit.ErrorService,
				Message: submit.DefaultMessages[submit.ErrorService],
				Err:     fmt.Errorf("form: malformed outcome %q", out.Kind),
			}
		}
		m.formError = failure
		m.errors = make(validation.Result)
		m.transitionLocked(StateFailed)
		m.unlockAndEmit()
	}
}

func (m *Machine) setValue(name, value string) {
	m.mu.Lock()
	if m.state.Terminal() {
		m.mu.Unlock()
		m.logger.Debug("form: value ignored on closed form", "field", name)
		return
	}
	m.values[name] = value
	if m.state == StateFailed {
		m.transitionLocked(StateAnonymous)
	}
	if _, shown := m.errors[name]; shown {
		m.checkFieldLocked(name)
	}
	m.unlockAndEmit()
}

func (m *Machine) blur(name string) {
	m.mu.Lock()
	if m.state.Terminal() {
		m.mu.Unlock()
		return
	}
	m.checkFieldLocked(name)
	m.unlockAndEmit()
}

func (m *Machine) value(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[name]
}

func (m *Machine) fieldError(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[name]
}

// checkFieldLocked re-validates one field. A field error replaces any
// form-level message so only one error presentation is visible.
func (m *Machine) checkFieldLocked(name string) {
	msg := m.schema.ValidateField(name, m.values[name])
	if msg == "" {
		delete(m.errors, name)
		return
	}
	m.errors[name] = msg
	m.formError = nil
}

func (m *Machine) transitionLocked(to State) {
	if m.state == to {
		return
	}
	m.pending = append(m.pending, transition{from: m.state, to: to})
	m.state = to
}

// queueLocked moves the pending transitions and the current view to the
// outbox. Queueing under mu keeps the outbox in state order.
func (m *Machine) queueLocked() {
	next := emission{
		events:    m.pending,
		view:      m.snapshotLocked(),
		hooks:     m.hooks,
		observers: m.observers,
	}
	m.pending = nil

	m.outMu.Lock()
	m.outbox = append(m.outbox, next)
	m.outMu.Unlock()
}

// deliver drains the outbox in order. Only one goroutine delivers at a time;
// a caller that finds delivery running leaves its emission to that goroutine,
// which also covers hooks and observers that call back into the machine.
func (m *Machine) deliver() {
	m.outMu.Lock()
	if m.delivering {
		m.outMu.Unlock()
		return
	}
	m.delivering = true
	m.outMu.Unlock()

	drained := false
	defer func() {
		// A panicking hook must not leave delivery claimed.
		if !drained {
			m.outMu.Lock()
			m.delivering = false
			m.outMu.Unlock()
		}
	}()

	for {
		m.outMu.Lock()
		if len(m.outbox) == 0 {
			m.delivering = false
			m.outMu.Unlock()
			drained = true
			return
		}
		next := m.outbox[0]
		m.outbox[0] = emission{}
		m.outbox = m.outbox[1:]
		m.outMu.Unlock()
		next.deliver()
	}
}

func (m *Machine) unlockAndEmit() {
	m.queueLocked()
	m.mu.Unlock()
	m.deliver()
}

func (m *Machine) presentFields() []model.Field {
	base := m.schema.Fields()
	if m.decorator == nil {
		return base
	}

	decorated := m.decorator(m.mode, m.schema.Fields())
	out := make([]model.Field, 0, len(base))
	seen := make(map[string]struct{}, len(base))
	for _, candidate := range decorated {
		field, ok := m.schema.Field(candidate.Name)
		if !ok {
			continue
		}
		if _, dup := seen[field.Name]; dup {
			continue
		}
		seen[field.Name] = struct{}{}
		if candidate.Label != "" {
			field.Label = candidate.Label
		}
		if candidate.Placeholder != "" {
			field.Placeholder = candidate.Placeholder
		}
		if len(candidate.Metadata) > 0 {
			field.Metadata = candidate.Metadata
		}
		out = append(out, field)
	}
	for _, field := range base {
		if _, ok := seen[field.Name]; !ok {
			out = append(out, field)
		}
	}
	return out
}

func cloneValues(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
