// Package html renders the authentication form as an HTML fragment using
// embedded pongo2 templates. Theme tokens, CSS variables and the stylesheet
// URL come from a go-theme RendererConfig.
package html

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/render"
	rendertemplate "github.com/goliatone/go-freedom/pkg/render/template"
	"github.com/goliatone/go-freedom/pkg/render/template/gotemplate"
)

const formTemplate = "auth"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	extension        string
	funcs            map[string]any
	globals          map[string]any
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// auth.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files found
// there override the bundled ones of the same name; missing ones fall back to
// the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = path
	}
}

// WithTemplateExtension changes the template file extension from ".tpl".
func WithTemplateExtension(ext string) Option {
	return func(cfg *config) {
		cfg.extension = ext
	}
}

// WithTemplateFuncs exposes helpers to the templates. pongo2 filter
// functions become filters, other functions become callable globals.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.funcs[name] = fn
		}
	}
}

// WithGlobalData sets values visible to every render, such as the product
// name shown above the form.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved go-theme configuration.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer is the HTML View Renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithExtension(cfg.extension),
			gotemplate.WithTemplateFunc(cfg.funcs),
			gotemplate.WithGlobalData(cfg.globals),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		engine = built
	}

	return &Renderer{templates: engine, theme: cfg.theme}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form fragment for view. Values and messages are
// escaped by the template engine.
func (r *Renderer) Render(ctx context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCfg := options.Theme
	if themeCfg == nil {
		themeCfg = r.theme
	}
	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"page":       render.NewPage(view, options),
		"theme":      buildThemeContext(themeCfg),
		"stylesheet": stylesheetURL(themeCfg),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}
