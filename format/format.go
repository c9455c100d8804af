// Package format renders parse results: syntax trees as JSON or indented
// text, token streams as lines, and syntax errors as source snippets.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/dhamidi/esparse/ecma/parser"
)

type Encoder interface {
	Encode(node *parser.Node) error
	MarshalText(node *parser.Node) ([]byte, error)
}

// Names of the tree encoders accepted by NewEncoder.
const (
	FormatJSON    = "json"
	FormatTree    = "tree"
	FormatCompact = "compact"
)

// NewEncoder returns the tree encoder registered under name.
func NewEncoder(name string, w io.Writer, in *interner.Interner) (Encoder, error) {
	switch name {
	case FormatJSON, "":
		return NewASTJSONEncoder(w, in), nil
	case FormatTree:
		return NewTreeEncoder(w, false), nil
	case FormatCompact:
		return NewCompactEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want %s, %s or %s)", name, FormatJSON, FormatTree, FormatCompact)
}
