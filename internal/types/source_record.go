package types

import "strings"

// RepositoryRecord is the typed view of the first paragraph of a .sources
// file. Every recognized field is either absent or holds the raw string
// read from the file. Unknown fields are not carried.
type RepositoryRecord struct {
	Path   string
	values map[SourceField]string
}

// NewRepositoryRecord returns an empty record bound to path.
func NewRepositoryRecord(path string) RepositoryRecord {
	return RepositoryRecord{Path: path, values: map[SourceField]string{}}
}

// Get returns the raw value of field and whether it is present.
func (r RepositoryRecord) Get(field SourceField) (string, bool) {
	value, ok := r.values[field]
	return value, ok
}

// Has reports whether field is present.
func (r RepositoryRecord) Has(field SourceField) bool {
	_, ok := r.values[field]
	return ok
}

// Set stores value for field. An empty value is still present. Fields
// outside the schema are ignored.
func (r *RepositoryRecord) Set(field SourceField, value string) {
	if !field.Valid() {
		return
	}
	if r.values == nil {
		r.values = map[SourceField]string{}
	}
	r.values[field] = value
}

// Clear makes field absent.
func (r *RepositoryRecord) Clear(field SourceField) {
	delete(r.values, field)
}

// Present returns the present fields in serialization order.
func (r RepositoryRecord) Present() []SourceField {
	var fields []SourceField
	for _, field := range SourceFields() {
		if r.Has(field) {
			fields = append(fields, field)
		}
	}
	return fields
}

// SourceEntry is one present field of a record.
type SourceEntry struct {
	Field SourceField
	Label string
	Value string
}

// Entries returns the present fields with their values in serialization
// order.
func (r RepositoryRecord) Entries() []SourceEntry {
	var entries []SourceEntry
	for _, field := range r.Present() {
		entries = append(entries, SourceEntry{Field: field, Label: field.Label(), Value: r.values[field]})
	}
	return entries
}

// Len returns the number of present fields.
func (r RepositoryRecord) Len() int {
	return len(r.values)
}

// Clone returns a record that shares no state with r.
func (r RepositoryRecord) Clone() RepositoryRecord {
	out := NewRepositoryRecord(r.Path)
	for field, value := range r.values {
		out.values[field] = value
	}
	return out
}

// List splits a whitespace separated field such as Suites into its items.
// It returns nil when the field is absent.
func (r RepositoryRecord) List(field SourceField) []string {
	value, ok := r.Get(field)
	if !ok {
		return nil
	}
	return strings.Fields(value)
}

// Enabled follows APT: a missing Enabled field means the entry is active,
// only an explicit "no" disables it.
func (r RepositoryRecord) Enabled() bool {
	value, ok := r.Get(FieldEnabled)
	if !ok {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(value), "no")
}

// Name prefers X-Repolib-Name and falls back to the file path.
func (r RepositoryRecord) Name() string {
	if name, ok := r.Get(FieldRepolibName); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return r.Path
}

// SourceLoadResult is the outcome of loading one .sources file. Exactly one
// of Record and Err is set.
type SourceLoadResult struct {
	Path   string
	Record *RepositoryRecord
	Err    error
	Kind   LoadFailureKind
}

// OK reports whether the file produced a record.
func (r SourceLoadResult) OK() bool {
	return r.Err == nil && r.Record != nil
}

// LoadFailureKind tells why a .sources file produced no record.
type LoadFailureKind string

const (
	LoadFailureNone  LoadFailureKind = ""
	LoadFailureParse LoadFailureKind = "parse"
	LoadFailureEmpty LoadFailureKind = "empty"
	LoadFailureIO    LoadFailureKind = "io"
)
