package form

import (
	"log/slog"

	"github.com/goliatone/go-freedom/pkg/model"
)

// Observer receives a fresh snapshot after every state change, including
// Unmount. Snapshots arrive in the order the changes were applied, so the last
// one seen always matches the machine.
type Observer func(View)

// TransitionHook receives every state transition in order. Hooks may call
// back into the machine; the resulting changes are delivered after the
// current ones.
type TransitionHook func(from, to State)

// FieldDecorator may relabel or reorder the presented fields. Fields it adds
// are ignored and fields it drops are appended back, so the catalog seen by
// renderers always matches the schema.
type FieldDecorator func(mode model.FormMode, fields []model.Field) []model.Field

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStrict makes binding an unknown field panic instead of returning an
// inert binding. Enable it in development builds.
func WithStrict(strict bool) Option {
	return func(m *Machine) {
		m.strict = strict
	}
}

// WithObserver registers a snapshot observer.
func WithObserver(fn Observer) Option {
	return func(m *Machine) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// WithTransitionHook registers a transition hook.
func WithTransitionHook(fn TransitionHook) Option {
	return func(m *Machine) {
		if fn != nil {
			m.hooks = append(m.hooks, fn)
		}
	}
}

// WithFieldDecorator customises field presentation, for example with a
// uischema overlay.
func WithFieldDecorator(fn FieldDecorator) Option {
	return func(m *Machine) {
		m.decorator = fn
	}
}
