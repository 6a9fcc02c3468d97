package batch

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError
type ErrorKind int

const (
	KindMalformedLine ErrorKind = iota + 1
	KindIncompleteRecord
	KindDuplicateField
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedLine:
		return "malformed line"
	case KindIncompleteRecord:
		return "incomplete record"
	case KindDuplicateField:
		return "duplicate field"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by ParseError.Is and IOError.Is
var (
	ErrMalformedLine    = errors.New("malformed line")
	ErrIncompleteRecord = errors.New("incomplete record")
	ErrDuplicateField   = errors.New("duplicate field")
	ErrIO               = errors.New("i/o error")
)

// ParseError reports where and why the input was rejected.
// Line is 1-based and counts the header line.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Content string
	// Field names the offending field for duplicate and incomplete errors
	Field string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindIncompleteRecord:
		return fmt.Sprintf("line %d: %s: missing %s field at %q", e.Line, e.Kind, e.Field, e.Content)
	case KindDuplicateField:
		return fmt.Sprintf("line %d: %s: %s set twice: %q", e.Line, e.Kind, e.Field, e.Content)
	default:
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Kind, e.Content)
	}
}

// Is lets errors.Is match a ParseError against the Err* sentinels
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedLine:
		return e.Kind == KindMalformedLine
	case ErrIncompleteRecord:
		return e.Kind == KindIncompleteRecord
	case ErrDuplicateField:
		return e.Kind == KindDuplicateField
	}
	return false
}

// IOError wraps a filesystem failure so it is never mistaken for bad input
type IOError struct {
	Op   string
	Path string
	// Line is the 1-based input line being read when the failure hit, or 0
	Line int
	Err  error
}

func (e *IOError) Error() string {
	msg := "failed to " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
