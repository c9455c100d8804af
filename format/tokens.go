package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/esparse/ecma/parser"
	gfn "github.com/panyam/goutils/fn"
)

// TokenEncoder writes one token per line as tab-separated position, kind and
// quoted literal:
//
//	1:1	var	"var"
//	1:5	identifier	"x"
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	lines := gfn.Map(tokens, tokenLine)
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func tokenLine(tok parser.Token) string {
	literal := "-"
	if tok.Literal != "" {
		literal = strconv.Quote(tok.Literal)
	}
	return fmt.Sprintf("%s\t%s\t%s", tok.Pos(), tok.Kind, literal)
}
