package parser

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/scipopt/MIP-DD-sub001/lexer"
)

// ErrorKind classifies why a parse failed. Every kind is fatal.
type ErrorKind string

const (
	KindUnreadableFile     ErrorKind = "unreadable_file"
	KindUnknownSection     ErrorKind = "unknown_section"
	KindMalformedLine      ErrorKind = "malformed_line"
	KindDuplicateName      ErrorKind = "duplicate_name"
	KindUnknownReference   ErrorKind = "unknown_reference"
	KindMarkerMismatch     ErrorKind = "marker_mismatch"
	KindUnknownBoundCode   ErrorKind = "unknown_bound_code"
	KindUnsupportedSection ErrorKind = "unsupported_section"
	KindPrematureEnd       ErrorKind = "premature_end"
	KindLimitExceeded      ErrorKind = "limit_exceeded"
	KindInternal           ErrorKind = "internal"
)

// ParseError reports the first failure of a parse together with the section
// that was active and the offending line. Path is set when the source was a
// named file.
type ParseError struct {
	Kind    ErrorKind
	Path    string
	Section lexer.Section
	LineNo  int
	Line    string
	Err     error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("read error in section %s: %s", e.Section, e.Kind)
	if e.LineNo > 0 {
		base += fmt.Sprintf(" at line %d", e.LineNo)
	}
	if e.Path != "" {
		base = e.Path + ": " + base
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	if line := strings.TrimSpace(e.Line); line != "" {
		base += fmt.Sprintf(" (%q)", line)
	}
	return base
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err, or anything it wraps, is a ParseError of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the ParseError in err's chain, or "" if there is
// none.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Unreadable classifies a failure to open the input, before any line was
// read.
func Unreadable(err error) error {
	return &ParseError{Kind: KindUnreadableFile, Err: err}
}

func failf(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Err: errors.Errorf(format, args...)}
}

func wrapf(kind ErrorKind, err error, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}
