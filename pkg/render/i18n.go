package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key is
// looked up without a Translator configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves localisation keys.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MissingTranslationHandler produces the string used when a key cannot be
// translated. fallback is the built-in English copy.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Translation keys used by NewPage. Field keys are built with FieldLabelKey
// and FieldPlaceholderKey.
const (
	KeySignInTitle    = "auth.sign-in.title"
	KeySignUpTitle    = "auth.sign-up.title"
	KeyLinkTitle      = "auth.link.title"
	KeySubtitle       = "auth.subtitle"
	KeyLinkSubtitle   = "auth.link.subtitle"
	KeySignInSubmit   = "auth.sign-in.submit"
	KeySignUpSubmit   = "auth.sign-up.submit"
	KeyLoading        = "auth.loading"
	KeySignInPrompt   = "auth.sign-in.footer"
	KeySignUpPrompt   = "auth.sign-up.footer"
	KeyFooterLinkText = "auth.footer.link"
)

// FieldLabelKey is the translation key of a field label.
func FieldLabelKey(name string) string {
	return "field." + name + ".label"
}

// FieldPlaceholderKey is the translation key of a field placeholder.
func FieldPlaceholderKey(name string) string {
	return "field." + name + ".placeholder"
}

type localizer struct {
	locale     string
	translator Translator
	onMissing  MissingTranslationHandler
}

func newLocalizer(opts RenderOptions) localizer {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return localizer{locale: opts.Locale, translator: opts.Translator, onMissing: onMissing}
}

func (l localizer) text(key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if l.translator == nil {
		return l.onMissing(l.locale, key, fallback, ErrMissingTranslator)
	}

	result, err := l.translator.Translate(l.locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return l.onMissing(l.locale, key, fallback, err)
}
