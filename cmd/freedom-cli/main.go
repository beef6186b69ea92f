package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goliatone/go-freedom/internal/config"
	"github.com/goliatone/go-freedom/pkg/dashboard"
	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/identity/memory"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/orchestrator"
	"github.com/goliatone/go-freedom/pkg/render"
	"github.com/goliatone/go-freedom/pkg/renderers/html"
	"github.com/goliatone/go-freedom/pkg/renderers/tui"
	"github.com/goliatone/go-freedom/pkg/uischema"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("freedom: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	service := memory.New(
		memory.WithSecret(cfg.SessionSecret),
		memory.WithSessionTTL(cfg.SessionTTL),
		memory.WithLogger(logger),
	)

	htmlOptions := []html.Option{html.WithTemplatesDir(cfg.TemplatesDir)}
	if cfg.Brand != "" {
		htmlOptions = append(htmlOptions, html.WithGlobalData(map[string]any{"brand": cfg.Brand}))
	}
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return err
	}
	tuiRenderer, err := tui.New(tui.WithLogger(logger))
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(htmlRenderer, tuiRenderer)
	if err != nil {
		return err
	}

	orch := orchestrator.New(
		orchestrator.WithIdentityService(service),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithUISchemaFS(uiSchemaFS(cfg.UISchemaDir)),
		orchestrator.WithFormOptions(form.WithStrict(cfg.Strict)),
		orchestrator.WithLogger(logger),
	)

	router := form.RouterFunc(func(path string) {
		logger.Info("navigate", "path", path)
	})

	if cfg.Renderer == config.RendererHTML {
		return writeHTML(ctx, orch, cfg, router)
	}

	mode := cfg.Mode
	if mode == "" {
		if mode, err = tuiRenderer.ChooseMode(ctx); err != nil {
			return err
		}
	}

	for {
		m, err := orch.NewForm(mode, router)
		if err != nil {
			return err
		}
		opts := render.RenderOptions{HiddenFields: render.MergeHiddenFields(nil, render.ModeField(string(mode)))}
		state, err := tuiRenderer.Run(ctx, m, opts)
		m.Unmount()
		if err != nil {
			return err
		}

		switch state {
		case form.StateAuthenticatedUnlinked:
			// New accounts continue to sign in with the same credentials.
			mode = model.FormModeSignIn
			continue
		case form.StateSignedIn:
			session, _ := m.Session()
			return greet(service, session.Token)
		}
		return nil
	}
}

func writeHTML(ctx context.Context, orch *orchestrator.Orchestrator, cfg config.Config, router form.Router) error {
	m, err := orch.NewForm(cfg.Mode, router)
	if err != nil {
		return err
	}
	defer m.Unmount()

	action := form.SignInPath
	if cfg.Mode == model.FormModeSignUp {
		action = form.SignUpPath
	}
	out, err := orch.Render(ctx, m, config.RendererHTML, render.RenderOptions{
		Action:       action,
		HiddenFields: render.MergeHiddenFields(nil, render.ModeField(string(cfg.Mode))),
	})
	if err != nil {
		return fmt.Errorf("render form: %w", err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Form written to %s\n", cfg.Output)
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func greet(service *memory.Service, token string) error {
	session, err := service.ParseSession(token)
	if err != nil {
		return err
	}
	user, ok := service.Lookup(session.UserID)
	if !ok {
		return fmt.Errorf("unknown user %q", session.UserID)
	}
	summary := dashboard.Summarize(&user, nil)
	fmt.Printf("%s\n%s\nTotal balance: %s across %d banks\n",
		summary.Greeting(), dashboard.Subtext, summary.Balance(), summary.TotalBanks)
	return nil
}

func uiSchemaFS(dir string) fs.FS {
	if dir == "" {
		return uischema.EmbeddedFS()
	}
	return os.DirFS(dir)
}
