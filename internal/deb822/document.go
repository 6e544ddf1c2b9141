// Package deb822 reads and writes deb822 paragraph documents such as APT
// .sources files. Parsing keeps the original lines of every field, comment
// and separator so an unmodified document serializes back byte for byte and
// an edited one only changes the lines of the fields that were touched.
package deb822

import (
	"bytes"
	"iter"
	"strings"
)

// block is either a paragraph or a run of lines between paragraphs (blank
// separators and comment-only groups).
type block struct {
	paragraph *Paragraph
	raw       []string
}

// Document is an ordered sequence of paragraphs plus everything found
// between them.
type Document struct {
	blocks              []block
	missingFinalNewline bool
}

// Paragraphs iterates the paragraphs in document order. The sequence can be
// ranged over any number of times.
func (d *Document) Paragraphs() iter.Seq[*Paragraph] {
	return func(yield func(*Paragraph) bool) {
		for _, b := range d.blocks {
			if b.paragraph == nil {
				continue
			}
			if !yield(b.paragraph) {
				return
			}
		}
	}
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	n := 0
	for range d.Paragraphs() {
		n++
	}
	return n
}

// Paragraph returns the i-th paragraph, counting from zero.
func (d *Document) Paragraph(i int) (*Paragraph, bool) {
	if i < 0 {
		return nil, false
	}
	n := 0
	for p := range d.Paragraphs() {
		if n == i {
			return p, true
		}
		n++
	}
	return nil, false
}

// First returns the first paragraph or ErrEmptyDocument.
func (d *Document) First() (*Paragraph, error) {
	for p := range d.Paragraphs() {
		return p, nil
	}
	return nil, ErrEmptyDocument
}

// Append adds p at the end of the document, separated from the previous
// content by a single blank line.
func (d *Document) Append(p *Paragraph) {
	if lines := d.lines(); len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
		d.blocks = append(d.blocks, block{raw: []string{""}})
	}
	d.blocks = append(d.blocks, block{paragraph: p})
	d.missingFinalNewline = false
}

// Bytes serializes the document. Lines that were not modified are written
// exactly as they were parsed.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	lines := d.lines()
	for i, line := range lines {
		buf.WriteString(line)
		if i < len(lines)-1 || !d.missingFinalNewline {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func (d *Document) String() string {
	return string(d.Bytes())
}

func (d *Document) lines() []string {
	var out []string
	for _, b := range d.blocks {
		if b.paragraph != nil {
			out = append(out, b.paragraph.lines()...)
			continue
		}
		out = append(out, b.raw...)
	}
	return out
}
