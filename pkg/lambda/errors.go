package lambda

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInput
	KindOutOfBounds
	KindResource
	KindLexical
	KindBadParse
	KindUnbound
	KindStepLimit
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input error"
	case KindOutOfBounds:
		return "out of bounds"
	case KindResource:
		return "resource exhausted"
	case KindLexical:
		return "lexical error"
	case KindBadParse:
		return "bad parse"
	case KindUnbound:
		return "unbound variable"
	case KindStepLimit:
		return "step limit reached"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown error"
	}
}

// Pos is a location in the program text. Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// IsValid reports whether p was set by the lexer.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Error is the error type returned by the lexer, parser and reducer.
type Error struct {
	Kind Kind
	Msg  string
	Pos  Pos
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "":
		return e.Kind.String()
	case e.Pos.IsValid():
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

// Is makes errors.Is match any *Error of the same Kind, so the Err*
// sentinels can be used as targets.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInput       = &Error{Kind: KindInput}
	ErrOutOfBounds = &Error{Kind: KindOutOfBounds}
	ErrResource    = &Error{Kind: KindResource}
	ErrLexical     = &Error{Kind: KindLexical}
	ErrBadParse    = &Error{Kind: KindBadParse}
	ErrUnbound     = &Error{Kind: KindUnbound}
	ErrStepLimit   = &Error{Kind: KindStepLimit}
	ErrInterrupted = &Error{Kind: KindInterrupted}
)

func newError(kind Kind, pos Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
