package format

import (
	"io"

	"github.com/dhamidi/esparse/ecma/parser"
)

// TreeEncoder writes one node per line, indented by depth.
type TreeEncoder struct {
	w             io.Writer
	showPositions bool
}

func NewTreeEncoder(w io.Writer, showPositions bool) *TreeEncoder {
	return &TreeEncoder{w: w, showPositions: showPositions}
}

func (e *TreeEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	if e.showPositions {
		return []byte(node.StringWithPositions()), nil
	}
	return []byte(node.String()), nil
}

// CompactEncoder writes the tree as a single S-expression line.
type CompactEncoder struct {
	w io.Writer
}

func NewCompactEncoder(w io.Writer) *CompactEncoder {
	return &CompactEncoder{w: w}
}

func (e *CompactEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *CompactEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return []byte(node.Compact() + "\n"), nil
}
