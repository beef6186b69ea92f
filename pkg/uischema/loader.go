package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-freedom/pkg/model"
)

// LoadFS walks fsys and parses every JSON/YAML overlay. A nil fsys or a tree
// without schema files yields an empty store. Overlays naming fields outside
// the form's catalog are rejected.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[model.FormMode]FormConfig)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawMode, cfg := range doc.Forms {
			mode, err := model.ParseFormMode(rawMode)
			if err != nil {
				return fmt.Errorf("uischema: file %s: %w", path, err)
			}
			if _, exists := store.forms[mode]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", mode, path)
			}
			if err := checkFields(mode, cfg); err != nil {
				return fmt.Errorf("uischema: file %s: %w", path, err)
			}
			cfg.Source = path
			store.forms[mode] = cfg
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the overlay for mode.
func (s *Store) Form(mode model.FormMode) (FormConfig, bool) {
	if s == nil {
		return FormConfig{}, false
	}
	cfg, ok := s.forms[mode]
	return cfg, ok
}

// Empty reports whether the store holds any overlay.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Decorate applies the overlay for mode to fields and returns the reordered
// copies. Fields listed in fieldOrder come first, then fields with an
// explicit order, then the rest in catalog order.
func (s *Store) Decorate(mode model.FormMode, fields []model.Field) []model.Field {
	cfg, ok := s.Form(mode)
	out := make([]model.Field, len(fields))
	copy(out, fields)
	if !ok {
		return out
	}

	type rank struct {
		group int
		pos   int
	}
	listed := make(map[string]int, len(cfg.FieldOrder))
	for i, name := range cfg.FieldOrder {
		if _, dup := listed[name]; !dup {
			listed[name] = i
		}
	}
	ranks := make(map[string]rank, len(out))

	for i := range out {
		field := &out[i]
		fc := cfg.Fields[field.Name]
		if label := plainText(fc.Label); label != "" {
			field.Label = label
		}
		if placeholder := plainText(fc.Placeholder); placeholder != "" {
			field.Placeholder = placeholder
		}
		field.Metadata = mergeMetadata(field.Metadata, fc)

		switch pos, ok := listed[field.Name]; {
		case ok:
			ranks[field.Name] = rank{group: 0, pos: pos}
		case fc.Order != nil:
			ranks[field.Name] = rank{group: 1, pos: *fc.Order}
		default:
			ranks[field.Name] = rank{group: 2, pos: i}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := ranks[out[i].Name], ranks[out[j].Name]
		if a.group != b.group {
			return a.group < b.group
		}
		return a.pos < b.pos
	})
	return out
}

func mergeMetadata(base map[string]string, fc FieldConfig) map[string]string {
	icon := sanitizeIconMarkup(fc.Icon)
	class := sanitizeClassList(fc.CSSClass)
	if len(base) == 0 && len(fc.Metadata) == 0 && icon == "" && class == "" {
		return base
	}

	out := make(map[string]string, len(base)+len(fc.Metadata)+2)
	for k, v := range base {
		out[k] = v
	}
	for k, v := range fc.Metadata {
		if key := strings.TrimSpace(k); key != "" {
			out[key] = plainText(v)
		}
	}
	if icon != "" {
		out[MetadataIcon] = icon
	}
	if class != "" {
		out[MetadataCSSClass] = class
	}
	return out
}

type documentFile struct {
	Forms map[string]FormConfig `json:"forms" yaml:"forms"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func checkFields(mode model.FormMode, cfg FormConfig) error {
	known := make(map[string]struct{})
	for _, field := range model.FieldsFor(mode) {
		known[field.Name] = struct{}{}
	}
	for name := range cfg.Fields {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("field %q is not part of the %s form", name, mode)
		}
	}
	for _, name := range cfg.FieldOrder {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("fieldOrder names unknown field %q for the %s form", name, mode)
		}
	}
	return nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
