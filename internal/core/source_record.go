package core

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"apt-sources/internal/deb822"
	"apt-sources/internal/types"
)

// RecordFromParagraph maps the recognized fields of p onto a record.
// Missing fields stay absent and unknown fields are dropped.
func RecordFromParagraph(p *deb822.Paragraph, path string) types.RepositoryRecord {
	record := types.NewRepositoryRecord(path)
	for _, field := range types.SourceFields() {
		if value, ok := p.Get(field.Label()); ok {
			record.Set(field, value)
		}
	}
	return record
}

// RecordFromDocument maps the first paragraph of doc. A document without
// paragraphs is reported with CodeNotFound.
func RecordFromDocument(doc *deb822.Document, path string) (types.RepositoryRecord, error) {
	p, err := doc.First()
	if err != nil {
		if errors.Is(err, deb822.ErrEmptyDocument) {
			return types.RepositoryRecord{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("sources file has no paragraphs: " + path).
				WithCause(err)
		}
		return types.RepositoryRecord{}, err
	}
	return RecordFromParagraph(p, path), nil
}

// ParagraphFromRecord builds a paragraph holding the present fields of
// record in schema order.
func ParagraphFromRecord(record types.RepositoryRecord) (*deb822.Paragraph, error) {
	p := deb822.NewParagraph()
	for _, entry := range record.Entries() {
		if err := p.Set(entry.Label, entry.Value); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to set field " + entry.Label).
				WithCause(err)
		}
	}
	return p, nil
}

// FormatRecord renders record as a single deb822 paragraph: one line per
// present field (plus continuation lines for folded values), schema order,
// no trailing blank line.
func FormatRecord(record types.RepositoryRecord) ([]byte, error) {
	return FormatRecords([]types.RepositoryRecord{record})
}

// FormatRecords renders records as one document, one paragraph each.
// Records without fields are skipped.
func FormatRecords(records []types.RepositoryRecord) ([]byte, error) {
	doc := &deb822.Document{}
	for _, record := range records {
		if record.Len() == 0 {
			continue
		}
		p, err := ParagraphFromRecord(record)
		if err != nil {
			return nil, err
		}
		doc.Append(p)
	}
	return doc.Bytes(), nil
}

// ApplyRecord writes record onto p in place: changed fields are rewritten at
// their current position, new fields are appended and recognized fields
// absent from record are removed. Unknown fields, comments and fields whose
// value is unchanged keep their original lines.
func ApplyRecord(p *deb822.Paragraph, record types.RepositoryRecord) error {
	for _, field := range types.SourceFields() {
		label := field.Label()
		value, present := record.Get(field)
		if !present {
			p.Remove(label)
			continue
		}
		if current, ok := p.Get(label); ok && current == value {
			continue
		}
		if err := p.Set(label, value); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to set field " + label).
				WithCause(err)
		}
	}
	return nil
}
