package freedom

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/testsupport"
)

func TestEmbeddedTemplatesContainsAuthForm(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "auth.tpl")
	if err != nil {
		t.Fatalf("expected auth template to be readable: %v", err)
	}
	if !strings.Contains(string(data), "page.fields") {
		t.Fatalf("expected template to iterate page fields")
	}
}

func TestNewAuthFormAndRenderAuthForm(t *testing.T) {
	m, err := NewAuthForm(model.FormModeSignIn, testsupport.NewStubService(), &testsupport.RecordingRouter{})
	if err != nil {
		t.Fatalf("new auth form: %v", err)
	}
	out, err := RenderAuthForm(testsupport.Context(), m, RenderOptions{Action: "/sign-in"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `action="/sign-in"`) || !strings.Contains(html, `name="email"`) {
		t.Fatalf("unexpected markup:\n%s", html)
	}
}
