package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-sources/internal/deb822"
	"apt-sources/internal/types"
)

func firstParagraph(t *testing.T, text string) (*deb822.Document, *deb822.Paragraph) {
	t.Helper()
	doc, err := deb822.Parse(text)
	require.NoError(t, err)
	p, err := doc.First()
	require.NoError(t, err)
	return doc, p
}

func TestRecordFromParagraphExtractsKnownFields(t *testing.T) {
	_, p := firstParagraph(t, "Types: deb\nURIs: http://example.com\n")
	record := RecordFromParagraph(p, "/etc/apt/sources.list.d/example.sources")

	assert.Equal(t, "/etc/apt/sources.list.d/example.sources", record.Path)
	want := []types.SourceEntry{
		{Field: types.FieldTypes, Label: "Types", Value: "deb"},
		{Field: types.FieldURIs, Label: "URIs", Value: "http://example.com"},
	}
	if diff := cmp.Diff(want, record.Entries()); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
	for _, field := range types.SourceFields() {
		if field == types.FieldTypes || field == types.FieldURIs {
			continue
		}
		assert.False(t, record.Has(field), "%s should be absent", field)
	}
}

func TestRecordFromParagraphDuplicateAndUnknown(t *testing.T) {
	_, p := firstParagraph(t, "Suites: noble\nX-Custom: dropped\nSuites: jammy\nsuites: lower\n")
	record := RecordFromParagraph(p, "a.sources")

	value, ok := record.Get(types.FieldSuites)
	require.True(t, ok)
	assert.Equal(t, "noble", value)
	assert.Equal(t, 1, record.Len())
}

func TestRecordFromDocumentUsesFirstParagraph(t *testing.T) {
	doc, err := deb822.Parse("Types: deb\n\nTypes: deb-src\n")
	require.NoError(t, err)
	record, err := RecordFromDocument(doc, "a.sources")
	require.NoError(t, err)
	value, _ := record.Get(types.FieldTypes)
	assert.Equal(t, "deb", value)
}

func TestRecordFromDocumentEmpty(t *testing.T) {
	doc, err := deb822.Parse("")
	require.NoError(t, err)
	_, err = RecordFromDocument(doc, "b.sources")
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
	assert.True(t, errors.Is(err, deb822.ErrEmptyDocument), "empty document must stay distinguishable from a missing file")
}

func TestParagraphFromRecord(t *testing.T) {
	record := types.NewRepositoryRecord("a.sources")
	record.Set(types.FieldSuites, "noble")
	record.Set(types.FieldEnabled, "")
	record.Set(types.FieldTypes, "deb")

	p, err := ParagraphFromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, []string{"Enabled", "Types", "Suites"}, p.Names())
	value, ok := p.Get("Enabled")
	require.True(t, ok)
	assert.Empty(t, value)
}

func TestFormatRecordEmptyValue(t *testing.T) {
	record := types.NewRepositoryRecord("a.sources")
	record.Set(types.FieldEnabled, "")
	record.Set(types.FieldTypes, "deb")

	got, err := FormatRecord(record)
	require.NoError(t, err)
	if diff := cmp.Diff("Enabled: \nTypes: deb\n", string(got)); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestFormatRecordOmitsAbsentInSchemaOrder(t *testing.T) {
	record := types.NewRepositoryRecord("a.sources")
	record.Set(types.FieldURIs, "http://example.com")
	record.Set(types.FieldTypes, "deb")

	got, err := FormatRecord(record)
	require.NoError(t, err)
	if diff := cmp.Diff("Types: deb\nURIs: http://example.com\n", string(got)); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestFormatRecordEmpty(t *testing.T) {
	got, err := FormatRecord(types.NewRepositoryRecord("a.sources"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFormatRecordRoundTrip(t *testing.T) {
	text := "X-Repolib-Name: Pop\nURIs: http://apt.pop-os.org/release\nTypes: deb\nSigned-By:\n -----BEGIN PGP PUBLIC KEY BLOCK-----\n .\n abc\n -----END PGP PUBLIC KEY BLOCK-----\nEnabled: yes\n"
	_, p := firstParagraph(t, text)
	record := RecordFromParagraph(p, "pop.sources")

	want := "Enabled: yes\nTypes: deb\nURIs: http://apt.pop-os.org/release\nSigned-By:\n -----BEGIN PGP PUBLIC KEY BLOCK-----\n .\n abc\n -----END PGP PUBLIC KEY BLOCK-----\nX-Repolib-Name: Pop\n"
	got, err := FormatRecord(record)
	require.NoError(t, err)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}

	_, again := firstParagraph(t, string(got))
	if diff := cmp.Diff(record.Entries(), RecordFromParagraph(again, "pop.sources").Entries()); diff != "" {
		t.Fatalf("record changed after round trip (-want +got):\n%s", diff)
	}
}

func TestFormatRecords(t *testing.T) {
	a := types.NewRepositoryRecord("a.sources")
	a.Set(types.FieldTypes, "deb")
	b := types.NewRepositoryRecord("b.sources")
	c := types.NewRepositoryRecord("c.sources")
	c.Set(types.FieldTypes, "deb-src")

	got, err := FormatRecords([]types.RepositoryRecord{a, b, c})
	require.NoError(t, err)
	if diff := cmp.Diff("Types: deb\n\nTypes: deb-src\n", string(got)); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestApplyRecordPreservesUnknownAndComments(t *testing.T) {
	text := "# hand edited\nTypes: deb\nURIs:  http://old\nX-Custom: keep\nSuites: noble\nComponents: main\n\n# second entry\nTypes: deb-src\n"
	doc, p := firstParagraph(t, text)
	record := RecordFromParagraph(p, "a.sources")

	record.Set(types.FieldSuites, "noble noble-updates")
	record.Clear(types.FieldComponents)
	record.Set(types.FieldEnabled, "no")
	require.NoError(t, ApplyRecord(p, record))

	want := "# hand edited\nTypes: deb\nURIs:  http://old\nX-Custom: keep\nSuites: noble noble-updates\nEnabled: no\n\n# second entry\nTypes: deb-src\n"
	if diff := cmp.Diff(want, doc.String()); diff != "" {
		t.Fatalf("unexpected document (-want +got):\n%s", diff)
	}
}

func TestApplyRecordUnchangedIsIdentity(t *testing.T) {
	text := "Types:deb\nURIs:   http://a\n# note\nSuites: noble\nX-Other: 1\n"
	doc, p := firstParagraph(t, text)
	require.NoError(t, ApplyRecord(p, RecordFromParagraph(p, "a.sources")))
	if diff := cmp.Diff(text, doc.String()); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
}
