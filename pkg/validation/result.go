package validation

import "sort"

// Result maps field names to their error message. An empty Result means the
// validated values satisfy the schema.
type Result map[string]string

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Message returns the error for name, or "".
func (r Result) Message(name string) string {
	if r == nil {
		return ""
	}
	return r[name]
}

// Fields lists the failing field names in sorted order.
func (r Result) Fields() []string {
	if len(r) == 0 {
		return nil
	}
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy that callers may mutate.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Issue is a single field failure, convenient for ordered presentation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues returns the failures ordered by the schema's field order.
func (s *Schema) Issues(r Result) []Issue {
	if len(r) == 0 {
		return nil
	}
	out := make([]Issue, 0, len(r))
	for _, field := range s.fields {
		if msg, ok := r[field.Name]; ok {
			out = append(out, Issue{Field: field.Name, Message: msg})
		}
	}
	return out
}
