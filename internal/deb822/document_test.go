package deb822

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphSetKeepsUntouchedLines(t *testing.T) {
	text := "# managed by hand\nTypes: deb\nURIs:  http://a\nX-Custom: keep me\nSuites: noble\n# tail\n\nTypes: deb-src\n"
	doc, err := Parse(text)
	require.NoError(t, err)
	p, err := doc.First()
	require.NoError(t, err)

	require.NoError(t, p.Set("Suites", "jammy"))
	require.NoError(t, p.Set("Components", "main universe"))

	want := "# managed by hand\nTypes: deb\nURIs:  http://a\nX-Custom: keep me\nSuites: jammy\nComponents: main universe\n# tail\n\nTypes: deb-src\n"
	if diff := cmp.Diff(want, doc.String()); diff != "" {
		t.Fatalf("unexpected document (-want +got):\n%s", diff)
	}
}

func TestParagraphSetFoldedValue(t *testing.T) {
	doc, err := Parse("Types: deb\nSigned-By: /old.gpg\nSuites: noble\n")
	require.NoError(t, err)
	p, err := doc.First()
	require.NoError(t, err)

	require.NoError(t, p.Set("Signed-By", "\n-----BEGIN PGP PUBLIC KEY BLOCK-----\n\nabc\n-----END PGP PUBLIC KEY BLOCK-----"))

	want := "Types: deb\nSigned-By:\n -----BEGIN PGP PUBLIC KEY BLOCK-----\n .\n abc\n -----END PGP PUBLIC KEY BLOCK-----\nSuites: noble\n"
	if diff := cmp.Diff(want, doc.String()); diff != "" {
		t.Fatalf("unexpected document (-want +got):\n%s", diff)
	}

	reparsed, err := Parse(doc.String())
	require.NoError(t, err)
	first, err := reparsed.First()
	require.NoError(t, err)
	value, ok := first.Get("Signed-By")
	require.True(t, ok)
	assert.Equal(t, "\n-----BEGIN PGP PUBLIC KEY BLOCK-----\n\nabc\n-----END PGP PUBLIC KEY BLOCK-----", value)
}

func TestParagraphSetRejectsInvalidName(t *testing.T) {
	p := NewParagraph()
	require.Error(t, p.Set("Bad Name", "x"))
	require.Error(t, p.Set("", "x"))
	assert.Equal(t, 0, p.Len())
}

func TestParagraphRemove(t *testing.T) {
	doc, err := Parse("Types: deb\nSuites: noble\n# why\nSuites: jammy\nComponents: main\n")
	require.NoError(t, err)
	p, err := doc.First()
	require.NoError(t, err)

	assert.True(t, p.Remove("Suites"))
	assert.False(t, p.Remove("Suites"))
	assert.False(t, p.Has("Suites"))

	want := "Types: deb\n# why\nComponents: main\n"
	if diff := cmp.Diff(want, doc.String()); diff != "" {
		t.Fatalf("unexpected document (-want +got):\n%s", diff)
	}
}

func TestDocumentAppend(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty document", text: "", want: "Types: deb\n"},
		{name: "after paragraph", text: "Types: deb-src\n", want: "Types: deb-src\n\nTypes: deb\n"},
		{name: "after separator", text: "Types: deb-src\n\n", want: "Types: deb-src\n\nTypes: deb\n"},
		{name: "missing final newline", text: "Types: deb-src", want: "Types: deb-src\n\nTypes: deb\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			require.NoError(t, err)
			p := NewParagraph()
			require.NoError(t, p.Set("Types", "deb"))
			doc.Append(p)
			if diff := cmp.Diff(tt.want, doc.String()); diff != "" {
				t.Fatalf("unexpected document (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatField(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "simple", value: "deb", want: []string{"Types: deb"}},
		{name: "empty", value: "", want: []string{"Types: "}},
		{name: "folded", value: "a\n\nb", want: []string{"Types: a", " .", " b"}},
		{name: "leading newline", value: "\nkey", want: []string{"Types:", " key"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatField("Types", tt.value)); diff != "" {
				t.Fatalf("unexpected lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidFieldName(t *testing.T) {
	for _, name := range []string{"Types", "X-Repolib-ID", "By-Hash", "InRelease-Path"} {
		assert.True(t, ValidFieldName(name), name)
	}
	for _, name := range []string{"", "#Types", "-Types", "Signed By", "Types:", "Tÿpes"} {
		assert.False(t, ValidFieldName(name), name)
	}
}

func TestDocumentParagraphIndex(t *testing.T) {
	doc, err := Parse("# head\n\nTypes: deb\n\n# between\n\nTypes: deb-src\n")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	p, ok := doc.Paragraph(1)
	require.True(t, ok)
	value, _ := p.Get("Types")
	assert.Equal(t, "deb-src", value)

	_, ok = doc.Paragraph(2)
	assert.False(t, ok)
	_, ok = doc.Paragraph(-1)
	assert.False(t, ok)
}
