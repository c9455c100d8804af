package parser

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input    string
		complete bool
	}{
		{"var x = 1;", true},
		{"var x = 1", true},
		{"var x =", false},
		{"if (a) {", false},
		{"function f() {", false},
		{"2 **", false},
		{"var x y", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseScript(strings.NewReader(tt.input))
			assert.Equal(t, tt.complete, p.IsComplete())
		})
	}
}

func TestIsCompleteThenFinish(t *testing.T) {
	p := ParseScript(strings.NewReader("var x = 1;"))
	require.True(t, p.IsComplete())
	node, err := p.Finish()
	require.NoError(t, err)
	assert.Equal(t, "(Script (VarDecl (Declarator x (NumericLiteral 1))))", node.Compact())
}

func TestReset(t *testing.T) {
	p := ParseScript(strings.NewReader("var a;"))
	first, err := p.Finish()
	require.NoError(t, err)

	p.Reset(strings.NewReader("var b;"))
	second, err := p.Finish()
	require.NoError(t, err)

	assert.Equal(t, "(Script (VarDecl (Declarator a)))", first.Compact())
	assert.Equal(t, "(Script (VarDecl (Declarator b)))", second.Compact())
}

func TestWithFile(t *testing.T) {
	err := assertSyntaxError(t, "var 1", WithFile("main.js"))
	assert.Equal(t, "main.js", err.Pos.File)
	assert.Contains(t, err.Error(), "main.js:1:5")
}

func TestWithStartLine(t *testing.T) {
	err := assertSyntaxError(t, "\nvar 1", WithStartLine(10))
	assert.Equal(t, 11, err.Pos.Line)
}

func TestWithComments(t *testing.T) {
	src := "// leading\nvar x; /* trailing */"

	p := ParseScript(strings.NewReader(src), WithComments())
	_, err := p.Finish()
	require.NoError(t, err)
	comments := p.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, "// leading", comments[0].Literal)
	assert.Equal(t, "/* trailing */", comments[1].Literal)

	p = ParseScript(strings.NewReader(src))
	_, err = p.Finish()
	require.NoError(t, err)
	assert.Empty(t, p.Comments())
}

func TestWithInterner(t *testing.T) {
	in := interner.New()
	a, err := ParseScript(strings.NewReader("var shared;"), WithInterner(in)).Finish()
	require.NoError(t, err)
	b, err := ParseScript(strings.NewReader("shared = 1;"), WithInterner(in)).Finish()
	require.NoError(t, err)

	declared := a.Children[0].Children[0].Sym
	used := b.Children[0].Children[0].Left().Sym
	assert.Equal(t, declared, used)
	assert.Equal(t, "shared", in.Resolve(used))
}

func TestWithContext(t *testing.T) {
	node, err := ParseExpression(strings.NewReader("yield 1"), WithContext(Context{AllowIn: true, AllowYield: true})).Finish()
	require.NoError(t, err)
	assert.Equal(t, "(Yield (NumericLiteral 1))", node.Compact())

	_, err = ParseExpression(strings.NewReader("a in b"), WithContext(Context{})).Finish()
	var syntaxErr *Error
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "in", syntaxErr.Found)
}

func TestNewFromTokenSource(t *testing.T) {
	in := interner.New()
	tokens := lexAll("var a = 1, b;", in)
	script, err := New(NewSliceSource(tokens), in).Finish()
	require.NoError(t, err)
	assert.Equal(t, "(Script (VarDecl (Declarator a (NumericLiteral 1)) (Declarator b)))", script.Compact())
}

func TestParseIsDeterministic(t *testing.T) {
	src := `
function fib(n) {
  if (n < 2) return n
  return fib(n - 1) + fib(n - 2)
}
var squares = [1, 2, 3].map(x => x ** 2), total = 0
for (const s of squares) { total += s }
`
	first, err := ParseScript(strings.NewReader(src)).Finish()
	require.NoError(t, err)
	second, err := ParseScript(strings.NewReader(src)).Finish()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parse trees differ (-first +second):\n%s", diff)
	}
}

func TestContextIsNotMutated(t *testing.T) {
	ctx := Context{AllowIn: true, AllowYield: true}
	derived := ctx.WithIn(false).WithAwait(true)

	assert.Equal(t, Context{AllowIn: true, AllowYield: true}, ctx)
	assert.Equal(t, Context{AllowIn: false, AllowYield: true, AllowAwait: true}, derived)

	p := newTestParser(t, "for (x in y) ;")
	_, err := p.parseStatement(ctx)
	require.NoError(t, err)
	assert.True(t, ctx.AllowIn)
}

func TestNodeString(t *testing.T) {
	node := parseScriptFragment(t, "var x = 2 ** 3 ** 2;")
	want := `Script
  VarDecl
    Declarator x
      BinaryOp **
        NumericLiteral 2
        BinaryOp **
          NumericLiteral 3
          NumericLiteral 2
`
	assert.Equal(t, want, node.String())
	assert.Contains(t, node.StringWithPositions(), "Declarator x [1:5-1:20]")
}

func TestNodeJSON(t *testing.T) {
	node := parseExprFragment(t, "a ** b")
	data, err := json.Marshal(node)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "BinaryOp", decoded["kind"])
	assert.Equal(t, "**", decoded["op"])
	children, ok := decoded["children"].([]any)
	require.True(t, ok)
	assert.Len(t, children, 2)
}

func TestNodeWalk(t *testing.T) {
	node := parseScriptFragment(t, "var a = b + c, d;")
	var names []string
	node.Walk(func(n *Node) bool {
		if n.Kind == KindDeclarator || n.Kind == KindIdentifier {
			names = append(names, n.TokenLiteral())
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}
