package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/render"
	"github.com/goliatone/go-freedom/pkg/renderers/html"
	"github.com/goliatone/go-freedom/pkg/submit"
	"github.com/goliatone/go-freedom/pkg/uischema"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = "html"

// ErrNoIdentityService is returned by NewForm when no service was configured.
var ErrNoIdentityService = errors.New("orchestrator: identity service is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithIdentityService sets the service the submission coordinator calls.
func WithIdentityService(service identity.Service) Option {
	return func(o *Orchestrator) {
		o.service = service
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called
// without a name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema overlays. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithMessages overrides the user-facing failure copy.
func WithMessages(messages map[submit.ErrorKind]string) Option {
	return func(o *Orchestrator) {
		o.messages = messages
	}
}

// WithFormOptions appends options applied to every machine NewForm builds.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithLogger sets the logger shared by the coordinator and the machines.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator wires the auth form pipeline: UI schema overlays, the
// submission coordinator, the form machine and the renderer registry.
type Orchestrator struct {
	service           identity.Service
	registry          *render.Registry
	defaultRenderer   string
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	store             *uischema.Store
	messages          map[submit.ErrorKind]string
	formOptions       []form.Option
	themeSelector     theme.ThemeSelector
	defaultTheme      string
	defaultVariant    string
	logger            *slog.Logger
	coordinator       *submit.Coordinator
	initialiseErr     error
}

// New constructs an Orchestrator. Missing collaborators fall back to the
// built-in html renderer and the embedded UI schema.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// NewForm builds a form machine for mode whose submissions go through the
// configured identity service.
func (o *Orchestrator) NewForm(mode model.FormMode, router form.Router, options ...form.Option) (*form.Machine, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.coordinator == nil {
		return nil, ErrNoIdentityService
	}

	opts := []form.Option{form.WithLogger(o.logger)}
	if o.store != nil && !o.store.Empty() {
		opts = append(opts, form.WithFieldDecorator(o.store.Decorate))
	}
	opts = append(opts, o.formOptions...)
	opts = append(opts, options...)

	m, err := form.New(mode, o.coordinator, router, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return m, nil
}

// Render snapshots m and renders it with the named renderer, falling back to
// the default renderer when name is empty.
func (o *Orchestrator) Render(ctx context.Context, m *form.Machine, name string, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("orchestrator: form machine is required")
	}

	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}

	if opts.Theme == nil {
		cfg, err := o.resolveTheme()
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, m.Snapshot(), opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the named renderer from the registry.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS != nil {
		store, err := uischema.LoadFS(o.uiSchemaFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
			return
		}
		o.store = store
	}

	if o.service != nil {
		opts := []submit.Option{submit.WithLogger(o.logger)}
		if o.messages != nil {
			opts = append(opts, submit.WithMessages(o.messages))
		}
		o.coordinator = submit.New(o.service, opts...)
	}
}
