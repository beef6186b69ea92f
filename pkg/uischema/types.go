package uischema

import (
	"github.com/goliatone/go-freedom/pkg/model"
)

// Metadata keys written onto decorated fields.
const (
	MetadataIcon     = "icon"
	MetadataCSSClass = "cssClass"
)

// Store keeps the parsed overlays keyed by form mode. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[model.FormMode]FormConfig
}

// FormConfig is the overlay for one form mode.
type FormConfig struct {
	Source     string                 `json:"-" yaml:"-"`
	FieldOrder []string               `json:"fieldOrder,omitempty" yaml:"fieldOrder,omitempty"`
	Fields     map[string]FieldConfig `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldConfig customises how one field is presented.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	CSSClass    string            `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
