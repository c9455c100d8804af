package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/esparse/ecma/interner"
	gfn "github.com/panyam/goutils/fn"
)

type ErrorKind int

const (
	// ErrorExpected: a specific token set was required and something else
	// was found.
	ErrorExpected ErrorKind = iota
	// ErrorAbruptEnd: the input ended while a production still required
	// tokens.
	ErrorAbruptEnd
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorExpected:
		return "expected"
	case ErrorAbruptEnd:
		return "abrupt end"
	}
	return "unknown"
}

// Error is a syntax error. Parsing stops at the first one.
type Error struct {
	Kind ErrorKind
	// Expected lists the token descriptions that would have been accepted.
	Expected []string
	// Found is the display text of the offending token.
	Found string
	Pos   Position
	// Production names the construct being parsed, e.g. "lexical declaration".
	Production string
}

// ErrUnexpectedEnd matches any abrupt-end Error under errors.Is.
var ErrUnexpectedEnd = &Error{Kind: ErrorAbruptEnd}

func (e *Error) Error() string {
	return e.format(true)
}

// Message is the error text without the position, for renderers that show
// the position separately.
func (e *Error) Message() string {
	return e.format(false)
}

func (e *Error) format(withPos bool) string {
	var b strings.Builder
	switch e.Kind {
	case ErrorAbruptEnd:
		b.WriteString("unexpected end of input")
	default:
		quoted := gfn.Map(e.Expected, strconv.Quote)
		if len(quoted) == 1 {
			fmt.Fprintf(&b, "expected %s", quoted[0])
		} else {
			fmt.Fprintf(&b, "expected one of %s", strings.Join(quoted, ", "))
		}
		fmt.Fprintf(&b, ", found %q", e.Found)
		if withPos && e.Pos.Line > 0 {
			fmt.Fprintf(&b, " at %s", e.Pos)
		}
	}
	if e.Production != "" {
		fmt.Fprintf(&b, " while parsing %s", e.Production)
	}
	return b.String()
}

func (e *Error) Is(target error) bool {
	return target == ErrUnexpectedEnd && e.Kind == ErrorAbruptEnd
}

func expectedError(expected []string, found Token, in *interner.Interner, production string) *Error {
	if found.Kind == TokenEOF {
		return abruptEndError(found.Pos(), production)
	}
	return &Error{
		Kind:       ErrorExpected,
		Expected:   expected,
		Found:      found.Display(in),
		Pos:        found.Pos(),
		Production: production,
	}
}

func abruptEndError(pos Position, production string) *Error {
	return &Error{Kind: ErrorAbruptEnd, Pos: pos, Production: production}
}
