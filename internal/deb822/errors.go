package deb822

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a first paragraph is requested from a
// document that has none, e.g. a zero-length or comment-only file.
var ErrEmptyDocument = errors.New("document has no paragraphs")

// ParseError reports a line that is neither a field, a continuation of a
// field, a comment nor a blank separator.
type ParseError struct {
	Line    int
	Content string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Content)
}
