// Package tui drives the authentication form from a terminal. Run prompts
// each field through survey and pushes answers into the form machine via its
// bindings; Render prints a snapshot as text or JSON.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/render"
	"github.com/goliatone/go-freedom/pkg/submit"
)

const defaultMaxAttempts = 3

// Renderer implements render.Renderer for terminal sessions.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty text).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:          os.Stdout,
		outputFormat: OutputFormatPrettyText,
		maxAttempts:  defaultMaxAttempts,
		theme:        Theme{InfoPrefix: "", ErrorPrefix: "! "},
		logger:       slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialisation used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render serialises view without prompting.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := render.NewPage(view, opts)
	if r.outputFormat == OutputFormatJSON {
		out, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode page: %w", err)
		}
		return out, nil
	}
	return []byte(r.pretty(page)), nil
}

// ChooseMode asks whether to sign in or sign up.
func (r *Renderer) ChooseMode(ctx context.Context) (model.FormMode, error) {
	options := []string{"Sign In", "Sign Up"}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "What would you like to do?",
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if idx == 1 {
		return model.FormModeSignUp, nil
	}
	return model.FormModeSignIn, nil
}

// Run prompts every field, submits and repeats until the form reaches a
// terminal state or the user gives up. Fields that fail validation are
// re-prompted; after a rejected submission the user may retry with all
// fields prefilled. It returns the machine state at exit.
func (r *Renderer) Run(ctx context.Context, m *form.Machine, opts render.RenderOptions) (form.State, error) {
	if m == nil {
		return "", errors.New("tui: form machine is required")
	}

	page := render.NewPage(m.Snapshot(), opts)
	if err := r.info(ctx, page.Title+"\n"+page.Subtitle); err != nil {
		return m.State(), err
	}
	labels := make(map[string]render.PageField, len(page.Fields))
	for _, field := range page.Fields {
		labels[field.Name] = field
	}

	pending := m.Fields()
	for {
		for _, binding := range pending {
			if err := r.promptField(ctx, binding, labels[binding.Name()]); err != nil {
				return m.State(), err
			}
		}

		err := m.SubmitAndWait(ctx)
		var failure *submit.Error
		switch {
		case err == nil:
			return m.State(), r.announce(ctx, m, opts)

		case errors.Is(err, form.ErrInvalid):
			pending = pending[:0]
			for _, binding := range m.Fields() {
				if msg := binding.Error(); msg != "" {
					if err := r.fail(ctx, labelOf(labels, binding)+": "+msg); err != nil {
						return m.State(), err
					}
					pending = append(pending, binding)
				}
			}

		case errors.As(err, &failure):
			if err := r.fail(ctx, failure.Message); err != nil {
				return m.State(), err
			}
			again, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if err != nil {
				return m.State(), err
			}
			if !again {
				return m.State(), nil
			}
			pending = m.Fields()

		default:
			return m.State(), err
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, binding *form.Binding, field render.PageField) error {
	spec := binding.Spec()
	label := field.Label
	if label == "" {
		label = spec.Label
	}
	help := field.Placeholder
	if help == "" {
		help = spec.Placeholder
	}

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		var (
			value string
			err   error
		)
		if spec.Kind == model.FieldKindPassword {
			value, err = r.driver.Password(ctx, InputConfig{Message: label, Help: help})
		} else {
			value, err = r.driver.Input(ctx, InputConfig{Message: label, Help: help, Default: binding.Value()})
		}
		if err != nil {
			return err
		}

		binding.SetValue(value)
		binding.Blur()
		msg := binding.Error()
		if msg == "" {
			return nil
		}
		r.logger.Debug("tui: field rejected", "field", spec.Name, "attempt", attempt+1)
		if err := r.fail(ctx, label+": "+msg); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, spec.Name)
}

func (r *Renderer) announce(ctx context.Context, m *form.Machine, opts render.RenderOptions) error {
	switch m.State() {
	case form.StateSignedIn:
		return r.info(ctx, "Signed in. Redirecting to "+form.DashboardPath)
	case form.StateAuthenticatedUnlinked:
		page := render.NewPage(m.Snapshot(), opts)
		msg := page.Title
		if page.UserName != "" {
			msg += ": " + page.UserName
		}
		return r.info(ctx, msg+"\n"+page.Subtitle)
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func labelOf(labels map[string]render.PageField, binding *form.Binding) string {
	if field, ok := labels[binding.Name()]; ok && field.Label != "" {
		return field.Label
	}
	return binding.Spec().Label
}

func (r *Renderer) pretty(page render.Page) string {
	var b strings.Builder
	b.WriteString(page.Title)
	b.WriteString("\n")
	b.WriteString(page.Subtitle)
	b.WriteString("\n")
	if page.FormError != "" {
		b.WriteString(r.theme.ErrorPrefix)
		b.WriteString(page.FormError)
		b.WriteString("\n")
	}
	if page.Linking && page.UserName != "" {
		b.WriteString(page.UserName)
		b.WriteString("\n")
	}
	for _, field := range page.Fields {
		fmt.Fprintf(&b, "  %s: %s", field.Label, field.Value)
		if field.Error != "" {
			fmt.Fprintf(&b, " (%s)", field.Error)
		}
		b.WriteString("\n")
	}
	if !page.Linking {
		fmt.Fprintf(&b, "[%s]\n", page.SubmitLabel)
	}
	if page.Footer.Href != "" {
		fmt.Fprintf(&b, "%s %s (%s)\n", page.Footer.Prompt, page.Footer.Label, page.Footer.Href)
	}
	return b.String()
}
