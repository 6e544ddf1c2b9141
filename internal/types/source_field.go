package types

import "strings"

// SourceField identifies one of the deb822 fields recognized in an APT
// .sources entry. The zero value is not a valid field.
type SourceField int

const (
	FieldEnabled SourceField = iota + 1
	FieldTypes
	FieldURIs
	FieldSuites
	FieldComponents
	FieldArchitectures
	FieldLanguages
	FieldTargets
	FieldPDiffs
	FieldByHash
	FieldAllowInsecure
	FieldAllowWeak
	FieldDowngradeToInsecure
	FieldTrusted
	FieldSignedBy
	FieldCheckValidUntil
	FieldValidUntilMin
	FieldCheckDate
	FieldDateMaxFuture
	FieldInReleasePath
	FieldSnapshot
	FieldRepolibName
	FieldRepolibID
	FieldRepolibDefaultMirror
)

// FieldKind describes how a value is usually shaped. It only drives read
// helpers such as RepositoryRecord.List; values are never validated.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindList     FieldKind = "list"
	FieldKindBoolean  FieldKind = "boolean"
	FieldKindTristate FieldKind = "tristate"
)

type sourceFieldSpec struct {
	Field SourceField
	Label string
	Kind  FieldKind
}

// sourceSchema is the single ordered table behind parsing, writing and
// exporting records. Its order is the serialization order.
var sourceSchema = []sourceFieldSpec{
	{FieldEnabled, "Enabled", FieldKindBoolean},
	{FieldTypes, "Types", FieldKindList},
	{FieldURIs, "URIs", FieldKindList},
	{FieldSuites, "Suites", FieldKindList},
	{FieldComponents, "Components", FieldKindList},
	{FieldArchitectures, "Architectures", FieldKindList},
	{FieldLanguages, "Languages", FieldKindList},
	{FieldTargets, "Targets", FieldKindList},
	{FieldPDiffs, "PDiffs", FieldKindBoolean},
	{FieldByHash, "By-Hash", FieldKindTristate},
	{FieldAllowInsecure, "Allow-Insecure", FieldKindBoolean},
	{FieldAllowWeak, "Allow-Weak", FieldKindBoolean},
	{FieldDowngradeToInsecure, "Downgrade-To-Insecure", FieldKindBoolean},
	{FieldTrusted, "Trusted", FieldKindBoolean},
	{FieldSignedBy, "Signed-By", FieldKindText},
	{FieldCheckValidUntil, "Check-Valid-Until", FieldKindBoolean},
	{FieldValidUntilMin, "Valid-Until-Min", FieldKindText},
	{FieldCheckDate, "Check-Date", FieldKindBoolean},
	{FieldDateMaxFuture, "Date-Max-Future", FieldKindText},
	{FieldInReleasePath, "InRelease-Path", FieldKindText},
	{FieldSnapshot, "Snapshot", FieldKindText},
	{FieldRepolibName, "X-Repolib-Name", FieldKindText},
	{FieldRepolibID, "X-Repolib-ID", FieldKindText},
	{FieldRepolibDefaultMirror, "X-Repolib-Default-Mirror", FieldKindText},
}

// SourceFields returns every recognized field in serialization order.
func SourceFields() []SourceField {
	fields := make([]SourceField, 0, len(sourceSchema))
	for _, spec := range sourceSchema {
		fields = append(fields, spec.Field)
	}
	return fields
}

// Label returns the exact deb822 field name, or "" for an unknown field.
func (f SourceField) Label() string {
	if spec, ok := f.spec(); ok {
		return spec.Label
	}
	return ""
}

// Kind returns the value shape of the field.
func (f SourceField) Kind() FieldKind {
	if spec, ok := f.spec(); ok {
		return spec.Kind
	}
	return FieldKindText
}

// Valid reports whether f is part of the schema.
func (f SourceField) Valid() bool {
	_, ok := f.spec()
	return ok
}

func (f SourceField) String() string {
	if label := f.Label(); label != "" {
		return label
	}
	return "Unknown"
}

func (f SourceField) spec() (sourceFieldSpec, bool) {
	i := int(f) - 1
	if i < 0 || i >= len(sourceSchema) {
		return sourceFieldSpec{}, false
	}
	return sourceSchema[i], true
}

// ParseSourceField looks a field up by its label. The exact label is tried
// first, then a case-insensitive match so command line input such as
// "signed-by" works.
func ParseSourceField(label string) (SourceField, bool) {
	label = strings.TrimSpace(label)
	for _, spec := range sourceSchema {
		if spec.Label == label {
			return spec.Field, true
		}
	}
	for _, spec := range sourceSchema {
		if strings.EqualFold(spec.Label, label) {
			return spec.Field, true
		}
	}
	return 0, false
}
