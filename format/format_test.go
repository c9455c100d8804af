package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseScript(t *testing.T, src string) (*parser.Node, *interner.Interner) {
	t.Helper()
	p := parser.ParseScript(strings.NewReader(src))
	node, err := p.Finish()
	require.NoError(t, err)
	return node, p.Interner()
}

func parseError(t *testing.T, src string) error {
	t.Helper()
	_, err := parser.ParseScript(strings.NewReader(src)).Finish()
	require.Error(t, err)
	return err
}

func TestASTJSONEncoder(t *testing.T) {
	node, in := parseScript(t, "var x = a ** 2;")

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf, in).Encode(node))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Script", doc["kind"])

	decl := doc["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "VarDecl", decl["kind"])

	declarator := decl["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "Declarator", declarator["kind"])
	assert.Equal(t, "x", declarator["token"])
	assert.Equal(t, "x", declarator["name"])

	span := declarator["span"].(map[string]any)
	assert.Equal(t, map[string]any{"line": 1.0, "column": 5.0}, span["start"])

	binary := declarator["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "BinaryOp", binary["kind"])
	assert.Equal(t, "**", binary["op"])
}

func TestASTJSONEncoderWithoutInterner(t *testing.T) {
	node, _ := parseScript(t, "var x;")

	text, err := NewASTJSONEncoder(nil, nil).MarshalText(node)
	require.NoError(t, err)
	assert.NotContains(t, string(text), `"name"`)
	assert.Contains(t, string(text), `"token": "x"`)
}

func TestASTJSONEncodeError(t *testing.T) {
	var buf bytes.Buffer
	enc := NewASTJSONEncoder(&buf, nil)
	require.NoError(t, enc.EncodeError(parseError(t, "var x y")))

	var doc struct {
		Kind  string `json:"kind"`
		Error struct {
			Message  string `json:"message"`
			Kind     string `json:"kind"`
			Found    string `json:"found"`
			Position struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"position"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Error", doc.Kind)
	assert.Equal(t, "expected", doc.Error.Kind)
	assert.Equal(t, "y", doc.Error.Found)
	assert.Equal(t, 1, doc.Error.Position.Line)
	assert.Equal(t, 7, doc.Error.Position.Column)
	assert.Contains(t, doc.Error.Message, `found "y"`)
}

func TestASTJSONEncodePlainError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf, nil).EncodeError(errors.New("read main.js: permission denied")))
	assert.JSONEq(t, `{"kind":"Error","error":{"message":"read main.js: permission denied"}}`, buf.String())
}

func TestTreeEncoders(t *testing.T) {
	node, _ := parseScript(t, "x = 2 ** y;")

	tests := []struct {
		name string
		enc  func(*bytes.Buffer) Encoder
		want string
	}{
		{
			name: "tree",
			enc:  func(b *bytes.Buffer) Encoder { return NewTreeEncoder(b, false) },
			want: "Script\n  ExprStmt\n    Assign =\n      Identifier x\n      BinaryOp **\n        NumericLiteral 2\n        Identifier y\n",
		},
		{
			name: "compact",
			enc:  func(b *bytes.Buffer) Encoder { return NewCompactEncoder(b) },
			want: "(Script (ExprStmt (Assign = (Identifier x) (BinaryOp ** (NumericLiteral 2) (Identifier y)))))\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.enc(&buf).Encode(node))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTreeEncoderPositions(t *testing.T) {
	node, _ := parseScript(t, "var x = 1;")
	text, err := NewTreeEncoder(nil, true).MarshalText(node)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Declarator x [1:5-1:10]")
}

func TestNewEncoder(t *testing.T) {
	var buf bytes.Buffer
	for name, want := range map[string]any{
		"":            &ASTJSONEncoder{},
		FormatJSON:    &ASTJSONEncoder{},
		FormatTree:    &TreeEncoder{},
		FormatCompact: &CompactEncoder{},
	} {
		enc, err := NewEncoder(name, &buf, nil)
		require.NoError(t, err, name)
		assert.IsType(t, want, enc, name)
	}

	_, err := NewEncoder("xml", &buf, nil)
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestTokenEncoder(t *testing.T) {
	lexer := parser.NewLexer([]byte("var x"), "", nil)
	var tokens []parser.Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == parser.TokenEOF {
			break
		}
	}

	var buf bytes.Buffer
	require.NoError(t, NewTokenEncoder(&buf).Encode(tokens))
	want := "1:1\tvar\t\"var\"\n" +
		"1:4\twhitespace\t\" \"\n" +
		"1:5\tidentifier\t\"x\"\n" +
		"1:6\tend of input\t-\n"
	assert.Equal(t, want, buf.String())

	text, err := NewTokenEncoder(nil).MarshalText(nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDiagnosticRenderer(t *testing.T) {
	src := "let a = 1;\nvar x y\nlet b;\n"
	got := NewDiagnosticRenderer(nil, false).String("a.js", []byte(src), parseError(t, src))

	lines := strings.Split(got, "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.True(t, strings.HasPrefix(lines[0], "syntax error in a.js at 2:7: "), lines[0])
	assert.Contains(t, lines[0], `found "y"`)
	assert.NotContains(t, lines[0], " at 2:7 while", "position is only in the header")
	assert.Equal(t, []string{
		"",
		"   1 | let a = 1;",
		"   2 | var x y",
		"     |       ^",
		"   3 | let b;",
	}, lines[1:6])
	assert.NotContains(t, got, "\x1b[")
}

func TestDiagnosticRendererFirstLineAndTabs(t *testing.T) {
	src := "\tvar 1"
	got := NewDiagnosticRenderer(nil, false).String("", []byte(src), parseError(t, src))

	lines := strings.Split(got, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "syntax error at 1:6: "), lines[0])
	assert.Equal(t, "   1 | \tvar 1", lines[2])
	assert.Equal(t, "     | \t    ^", lines[3])
}

func TestDiagnosticRendererCarriageReturns(t *testing.T) {
	src := "a;\rvar x y\r\nb;"
	got := NewDiagnosticRenderer(nil, false).String("", []byte(src), parseError(t, src))

	lines := strings.Split(got, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "syntax error at 2:7: "), lines[0])
	assert.Equal(t, []string{
		"",
		"   1 | a;",
		"   2 | var x y",
		"     |       ^",
		"   3 | b;",
	}, lines[1:6])
}

func TestDiagnosticRendererColor(t *testing.T) {
	src := "var x y"
	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticRenderer(&buf, true).Render("a.js", []byte(src), parseError(t, src)))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "var x y")
}

func TestDiagnosticRendererPlainError(t *testing.T) {
	r := NewDiagnosticRenderer(nil, false)
	assert.Equal(t, "error in a.js: boom\n", r.String("a.js", nil, errors.New("boom")))
	assert.Equal(t, "error: boom\n", r.String("", nil, errors.New("boom")))
	assert.Empty(t, r.String("a.js", nil, nil))
}
