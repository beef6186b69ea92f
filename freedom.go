package freedom

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-freedom/pkg/dashboard"
	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/orchestrator"
	"github.com/goliatone/go-freedom/pkg/render"
	"github.com/goliatone/go-freedom/pkg/renderers/html"
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carries per-request data such as the form action, hidden
// fields and translations.
type RenderOptions = render.RenderOptions

// Machine is the auth form state machine.
type Machine = form.Machine

// Router receives the post sign-in navigation.
type Router = form.Router

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewAuthForm builds a form machine for mode backed by service, with the
// embedded UI schema applied.
func NewAuthForm(mode model.FormMode, service identity.Service, router Router, options ...orchestrator.Option) (*Machine, error) {
	opts := append([]orchestrator.Option{orchestrator.WithIdentityService(service)}, options...)
	return orchestrator.New(opts...).NewForm(mode, router)
}

// RenderAuthForm renders the current state of m with the built-in html
// renderer.
func RenderAuthForm(ctx context.Context, m *Machine, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, m, "html", opts)
}

// Summarize builds the signed-in home page header for user.
func Summarize(user *identity.Identity, banks []dashboard.Bank) dashboard.Summary {
	return dashboard.Summarize(user, banks)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
