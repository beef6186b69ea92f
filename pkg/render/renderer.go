package render

import (
	"context"

	"github.com/goliatone/go-freedom/pkg/form"
)

// Renderer turns a form snapshot into bytes (HTML, terminal text, ...).
// Implementations must be pure functions of the view and options; user input
// flows back through form bindings, never through a renderer.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}
