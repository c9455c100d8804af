package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/dhamidi/esparse/ecma/parser"
)

type ASTJSONEncoder struct {
	w        io.Writer
	interner *interner.Interner
}

// NewASTJSONEncoder returns an encoder writing indented JSON to w. When in is
// non-nil, identifier nodes carry their interned name as well as the token
// text.
func NewASTJSONEncoder(w io.Writer, in *interner.Interner) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, interner: in}
}

func (e *ASTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(node), "", "  ")
}

// EncodeError writes a syntax error in the same document shape as a tree:
// a single object with kind "Error".
func (e *ASTJSONEncoder) EncodeError(err error) error {
	jn := &astJSONNode{Kind: parser.KindError.String(), Error: errorToJSON(err)}
	text, jerr := json.MarshalIndent(jn, "", "  ")
	if jerr != nil {
		return jerr
	}
	_, jerr = e.w.Write(text)
	return jerr
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Token    string         `json:"token,omitempty"`
	Name     string         `json:"name,omitempty"`
	Op       string         `json:"op,omitempty"`
	Flags    []string       `json:"flags,omitempty"`
	Error    *astJSONError  `json:"error,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONError struct {
	Message    string           `json:"message"`
	Kind       string           `json:"kind,omitempty"`
	Expected   []string         `json:"expected,omitempty"`
	Found      string           `json:"found,omitempty"`
	Production string           `json:"production,omitempty"`
	Position   *astJSONPosition `json:"position,omitempty"`
}

func errorToJSON(err error) *astJSONError {
	je := &astJSONError{Message: err.Error()}
	var syntaxErr *parser.Error
	if errors.As(err, &syntaxErr) {
		je.Kind = syntaxErr.Kind.String()
		je.Expected = syntaxErr.Expected
		je.Found = syntaxErr.Found
		je.Production = syntaxErr.Production
		if syntaxErr.Pos.Line != 0 {
			je.Position = &astJSONPosition{Line: syntaxErr.Pos.Line, Column: syntaxErr.Pos.Column}
		}
	}
	return je
}

func (e *ASTJSONEncoder) nodeToJSON(n *parser.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:  n.Kind.String(),
		Op:    n.Op.String(),
		Flags: n.Flags.Names(),
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &astJSONSpan{
			Start: astJSONPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   astJSONPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if e.interner != nil && !n.Sym.IsNone() {
		jn.Name = e.interner.Resolve(n.Sym)
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}

	return jn
}
