package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers use to customise output
// without touching the form machine.
type RenderOptions struct {
	// Action is the form post target. Empty means the current route.
	Action string
	// HiddenFields are emitted alongside the visible inputs, typically a CSRF
	// token. See CSRFToken and MergeHiddenFields.
	HiddenFields map[string]string
	// Locale and Translator localise headings, labels and placeholders. Keys
	// missing from the translator fall back to the built-in copy.
	Locale     string
	Translator Translator
	// OnMissing overrides the fallback for untranslated keys.
	OnMissing MissingTranslationHandler
	// Theme overrides the renderer's configured theme for this call.
	Theme *theme.RendererConfig
}
