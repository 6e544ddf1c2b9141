package deb822

import (
	"fmt"
	"iter"
	"strings"
)

// entry is one element of a paragraph: either a field with the raw lines it
// was read from, or a single comment line (name is empty).
type entry struct {
	name  string
	value string
	raw   []string
}

func (e entry) isField() bool {
	return e.name != ""
}

// Field is a parsed name/value pair.
type Field struct {
	Name  string
	Value string
}

// Paragraph is an ordered list of fields and the comment lines interleaved
// with them. Untouched entries keep their original lines.
type Paragraph struct {
	entries []entry
}

// NewParagraph returns an empty paragraph ready to be filled with Set and
// added to a document with Append.
func NewParagraph() *Paragraph {
	return &Paragraph{}
}

// Get returns the value of the first field called name. Matching is exact
// and case-sensitive; later duplicates are ignored.
func (p *Paragraph) Get(name string) (string, bool) {
	if i := p.index(name); i >= 0 {
		return p.entries[i].value, true
	}
	return "", false
}

// Has reports whether the paragraph carries a field called name.
func (p *Paragraph) Has(name string) bool {
	return p.index(name) >= 0
}

// Len returns the number of fields, duplicates included.
func (p *Paragraph) Len() int {
	n := 0
	for _, e := range p.entries {
		if e.isField() {
			n++
		}
	}
	return n
}

// Names returns field names in document order, duplicates included.
func (p *Paragraph) Names() []string {
	names := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		if e.isField() {
			names = append(names, e.name)
		}
	}
	return names
}

// Fields returns a copy of every field in document order.
func (p *Paragraph) Fields() []Field {
	fields := make([]Field, 0, len(p.entries))
	for name, value := range p.All() {
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields
}

// All iterates the fields in document order.
func (p *Paragraph) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range p.entries {
			if !e.isField() {
				continue
			}
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// Set replaces the value of the first field called name, keeping its
// position, or appends the field after the last existing field. Only the
// lines of that field are regenerated.
func (p *Paragraph) Set(name string, value string) error {
	if !ValidFieldName(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	updated := entry{name: name, value: value, raw: FormatField(name, value)}
	if i := p.index(name); i >= 0 {
		p.entries[i] = updated
		return nil
	}
	at := len(p.entries)
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].isField() {
			at = i + 1
			break
		}
	}
	p.entries = append(p.entries, entry{})
	copy(p.entries[at+1:], p.entries[at:])
	p.entries[at] = updated
	return nil
}

// Remove drops every field called name and reports whether any existed.
func (p *Paragraph) Remove(name string) bool {
	kept := p.entries[:0]
	removed := false
	for _, e := range p.entries {
		if e.isField() && e.name == name {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
	return removed
}

func (p *Paragraph) index(name string) int {
	for i, e := range p.entries {
		if e.isField() && e.name == name {
			return i
		}
	}
	return -1
}

func (p *Paragraph) lines() []string {
	var out []string
	for _, e := range p.entries {
		out = append(out, e.raw...)
	}
	return out
}

// ValidFieldName reports whether name can be written as a field name:
// printable ASCII without spaces or colons, not starting with '#' or '-'.
func ValidFieldName(name string) bool {
	if name == "" || name[0] == '#' || name[0] == '-' {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 0x21 || c > 0x7e || c == ':' {
			return false
		}
	}
	return true
}

// FormatField renders a field in canonical folded form. Embedded newlines
// become continuation lines, empty lines are written as " ." and an empty
// value keeps the space after the colon.
func FormatField(name string, value string) []string {
	if value == "" {
		return []string{name + ": "}
	}
	parts := strings.Split(value, "\n")
	lines := make([]string, 0, len(parts))
	if parts[0] == "" {
		lines = append(lines, name+":")
	} else {
		lines = append(lines, name+": "+parts[0])
	}
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "" {
			lines = append(lines, " .")
			continue
		}
		lines = append(lines, " "+part)
	}
	return lines
}
