// Package uischema loads presentation overlays for the authentication forms
// from JSON or YAML documents: relabelled fields, placeholders, icons, CSS
// classes and field order. Store.Decorate plugs into form.WithFieldDecorator;
// overlays never change which fields exist or how they validate.
package uischema
