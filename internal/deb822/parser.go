package deb822

import (
	"strings"
)

// Parse reads a deb822 document. Blank (or whitespace-only) lines separate
// paragraphs, lines starting with '#' are comments, lines starting with a
// space or tab continue the previous field and every other line must be a
// "Name: value" field.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	if text == "" {
		return doc, nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		doc.missingFinalNewline = true
	}

	p := parser{doc: doc}
	for i, line := range lines {
		if err := p.feed(i+1, line); err != nil {
			return nil, err
		}
	}
	p.endRun()
	p.flushGap()
	return doc, nil
}

// ParseBytes is Parse for byte slices.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(string(data))
}

type parser struct {
	doc *Document
	// current is the paragraph being built, nil between paragraphs.
	current *Paragraph
	// comments holds comment lines of the current run that are not yet
	// known to be leading, trailing or inside a folded value.
	comments []string
	gap      []string
}

func (p *parser) feed(lineNo int, line string) error {
	switch {
	case strings.TrimSpace(line) == "":
		p.endRun()
		p.gap = append(p.gap, line)
	case line[0] == '#':
		p.comments = append(p.comments, line)
	case line[0] == ' ' || line[0] == '\t':
		return p.continuation(lineNo, line)
	default:
		return p.field(lineNo, line)
	}
	return nil
}

func (p *parser) field(lineNo int, line string) error {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return &ParseError{Line: lineNo, Content: line, Reason: "missing ':' after field name"}
	}
	if !ValidFieldName(name) {
		return &ParseError{Line: lineNo, Content: line, Reason: "invalid field name"}
	}
	if p.current == nil {
		p.flushGap()
		p.current = &Paragraph{}
		p.doc.blocks = append(p.doc.blocks, block{paragraph: p.current})
	}
	p.flushComments()
	rest = strings.TrimRight(rest, " \t\r")
	p.current.entries = append(p.current.entries, entry{
		name:  name,
		value: strings.TrimPrefix(rest, " "),
		raw:   []string{line},
	})
	return nil
}

func (p *parser) continuation(lineNo int, line string) error {
	if p.current == nil {
		return &ParseError{Line: lineNo, Content: line, Reason: "continuation line outside a field"}
	}
	last := &p.current.entries[len(p.current.entries)-1]
	content := strings.TrimRight(line[1:], " \t\r")
	if content == "." {
		content = ""
	}
	last.raw = append(last.raw, p.comments...)
	last.raw = append(last.raw, line)
	last.value += "\n" + content
	p.comments = nil
	return nil
}

// endRun closes the current run of non-blank lines. Pending comments trail
// the paragraph, or form a free-standing block when no field was seen.
func (p *parser) endRun() {
	if p.current == nil {
		p.gap = append(p.gap, p.comments...)
		p.comments = nil
		return
	}
	p.flushComments()
	p.current = nil
}

func (p *parser) flushComments() {
	for _, c := range p.comments {
		p.current.entries = append(p.current.entries, entry{raw: []string{c}})
	}
	p.comments = nil
}

func (p *parser) flushGap() {
	if len(p.gap) == 0 {
		return
	}
	p.doc.blocks = append(p.doc.blocks, block{raw: p.gap})
	p.gap = nil
}
