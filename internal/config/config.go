// Package config resolves CLI settings from defaults, an optional .env file,
// FREEDOM_* environment variables and command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-freedom/pkg/model"
)

const envPrefix = "FREEDOM_"

// Renderer names accepted by the CLI.
const (
	RendererTUI  = "tui"
	RendererHTML = "html"
)

// DefaultEnvFile is read when FREEDOM_ENV_FILE is unset.
const DefaultEnvFile = ".env"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the resolved settings.
type Config struct {
	// Mode is "sign-in", "sign-up" or empty to ask interactively.
	Mode          model.FormMode
	Strict        bool
	LogLevel      slog.Level
	UISchemaDir   string
	TemplatesDir  string
	Brand         string
	Renderer      string
	Output        string
	SessionSecret string
	SessionTTL    time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:   slog.LevelWarn,
		Renderer:   RendererTUI,
		SessionTTL: 24 * time.Hour,
	}
}

// Load resolves the configuration. getenv is usually os.Getenv; values from
// the .env file only apply to keys getenv leaves empty.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	envFile := getenv(envPrefix + "ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read %s: %w", envFile, err)
	}
	lookup := func(key string) string {
		if v := getenv(envPrefix + key); v != "" {
			return v
		}
		return dotenv[envPrefix+key]
	}

	cfg := Default()
	mode := lookup("MODE")
	level := lookup("LOG_LEVEL")
	ttl := lookup("SESSION_TTL")
	if v := lookup("STRICT"); v != "" {
		if cfg.Strict, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("%w: FREEDOM_STRICT: %v", ErrInvalid, err)
		}
	}
	cfg.UISchemaDir = lookup("UISCHEMA_DIR")
	cfg.TemplatesDir = lookup("TEMPLATES_DIR")
	cfg.Brand = lookup("BRAND")
	cfg.Output = lookup("OUTPUT")
	cfg.SessionSecret = lookup("SESSION_SECRET")
	if v := lookup("RENDERER"); v != "" {
		cfg.Renderer = v
	}

	fsFlags := flag.NewFlagSet("freedom", flag.ContinueOnError)
	fsFlags.SetOutput(io.Discard)
	fsFlags.StringVar(&mode, "mode", mode, "form to run: sign-in or sign-up (asks when empty)")
	fsFlags.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "renderer to use: tui or html")
	fsFlags.StringVar(&cfg.Output, "output", cfg.Output, "write rendered html to this file (stdout if empty)")
	fsFlags.StringVar(&cfg.UISchemaDir, "uischema", cfg.UISchemaDir, "directory with ui schema overlays")
	fsFlags.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "directory with html templates overriding the bundled ones")
	fsFlags.StringVar(&cfg.Brand, "brand", cfg.Brand, "product name shown above the html form")
	fsFlags.StringVar(&level, "log-level", level, "log level: debug, info, warn or error")
	fsFlags.BoolVar(&cfg.Strict, "strict", cfg.Strict, "panic on unknown field bindings")
	fsFlags.StringVar(&ttl, "session-ttl", ttl, "session lifetime, e.g. 12h")
	if err := fsFlags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	cfg.Renderer = strings.ToLower(strings.TrimSpace(cfg.Renderer))
	switch cfg.Renderer {
	case RendererTUI, RendererHTML:
	default:
		return Config{}, fmt.Errorf("%w: unknown renderer %q", ErrInvalid, cfg.Renderer)
	}

	if strings.TrimSpace(mode) != "" {
		parsed, err := model.ParseFormMode(mode)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		cfg.Mode = parsed
	}
	if cfg.Renderer == RendererHTML && cfg.Mode == "" {
		cfg.Mode = model.FormModeSignIn
	}

	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("%w: log level %q", ErrInvalid, level)
		}
	}
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: session ttl %q", ErrInvalid, ttl)
		}
		cfg.SessionTTL = d
	}
	return cfg, nil
}

// NewLogger returns a text slog logger at the configured level.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
