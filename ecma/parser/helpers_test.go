package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/stretchr/testify/require"
)

func parseScriptFragment(t *testing.T, src string, opts ...Option) *Node {
	t.Helper()
	node, err := ParseScript(strings.NewReader(src), opts...).Finish()
	require.NoError(t, err, "parsing %q", src)
	require.NotNil(t, node)
	return node
}

func parseExprFragment(t *testing.T, src string, opts ...Option) *Node {
	t.Helper()
	node, err := ParseExpression(strings.NewReader(src), opts...).Finish()
	require.NoError(t, err, "parsing %q", src)
	require.NotNil(t, node)
	return node
}

// assertSyntaxError parses src as a script and returns the *Error it fails
// with.
func assertSyntaxError(t *testing.T, src string, opts ...Option) *Error {
	t.Helper()
	node, err := ParseScript(strings.NewReader(src), opts...).Finish()
	require.Error(t, err, "parsing %q should fail", src)
	require.Nil(t, node)
	var syntaxErr *Error
	require.True(t, errors.As(err, &syntaxErr), "want *Error, got %T", err)
	return syntaxErr
}

// newTestParser returns a parser positioned at the start of src, for calling
// productions directly.
func newTestParser(t *testing.T, src string) *Parser {
	t.Helper()
	p := ParseScript(strings.NewReader(src))
	require.NoError(t, p.readAll())
	p.start()
	return p
}

func newTestCursor(src string) *Cursor {
	lexer := NewLexer([]byte(src), "", nil)
	return NewCursor(newTokenStream(lexer, false), lexer.interner)
}

// lexAll returns the tokens the parser would see for src, ending with EOF.
func lexAll(src string, in *interner.Interner) []Token {
	stream := newTokenStream(NewLexer([]byte(src), "", in), false)
	var tokens []Token
	for {
		tok := stream.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}
