package grammar

import (
	"strings"
	"testing"

	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"
)

func loadDefault(t *testing.T) ebnf.Grammar {
	t.Helper()
	g, err := Default()
	require.NoError(t, err)
	return g
}

func tokenize(src string) []parser.Token {
	lexer := parser.NewLexer([]byte(src), "", nil)
	var tokens []parser.Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == parser.TokenEOF {
			return tokens
		}
	}
}

func TestDefaultGrammarVerifies(t *testing.T) {
	g := loadDefault(t)

	err := Verify(g, Start)
	assert.NoError(t, err, "%v", Errors(err))

	for _, name := range []string{"Script", "ExponentiationExpression", "VariableStatement", "input_element"} {
		assert.Contains(t, g, name)
	}
}

func TestVerifyReportsEveryProblem(t *testing.T) {
	src := `
Script = Statement { Statement } .
Statement = Missing ";" .
Orphan = "x" .
`
	g, err := Parse("broken.ebnf", strings.NewReader(src))
	require.NoError(t, err)

	err = Verify(g, "Script")
	require.Error(t, err)
	errs := Errors(err)
	require.Len(t, errs, 2)

	var messages []string
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "missing production Missing")
	assert.Contains(t, joined, "Orphan is unreachable")
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.ebnf", strings.NewReader(`Script = "a" `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse grammar")
	assert.NotEmpty(t, Errors(err))
}

func TestErrorsOfPlainError(t *testing.T) {
	assert.Nil(t, Errors(nil))
	err := assert.AnError
	assert.Equal(t, []error{err}, Errors(err))
}

func TestScannerAgreesWithLexer(t *testing.T) {
	g := loadDefault(t)
	inputs := []string{
		"var x = 0x1F + .5e3 ** y; // done",
		"let s = 'it\\'s' /* c ** d */ ?? \"q\";",
		"a >>>= b !== c && d?.e",
		"for (const k of [1, 2_000, 3n]) { total **= k }",
		"f(...args) => { return x <= y }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			s, err := NewScanner(g, []byte(input), "")
			require.NoError(t, err)

			var fromGrammar []string
			for _, lx := range s.All() {
				switch lx.Kind {
				case "whitespace", "line_terminator", "comment", "EOF":
					continue
				}
				assert.NotEqual(t, "error", lx.Kind, "unexpected input at %s", lx.Pos)
				fromGrammar = append(fromGrammar, lx.Literal)
			}

			var fromLexer []string
			for _, tok := range tokenize(input) {
				switch tok.Kind {
				case parser.TokenWhitespace, parser.TokenLineTerminator, parser.TokenComment, parser.TokenLineComment, parser.TokenEOF:
					continue
				}
				fromLexer = append(fromLexer, tok.Literal)
			}

			assert.Equal(t, fromLexer, fromGrammar)
		})
	}
}

func TestScannerPositionsAndErrors(t *testing.T) {
	g := loadDefault(t)
	s, err := NewScanner(g, []byte("a\n  #b"), "x.js")
	require.NoError(t, err)

	lexemes := s.All()
	kinds := make([]string, len(lexemes))
	for i, lx := range lexemes {
		kinds[i] = lx.Kind
	}
	assert.Equal(t, []string{"identifier", "line_terminator", "whitespace", "error", "identifier", "EOF"}, kinds)
	assert.Equal(t, "x.js:2:3", lexemes[3].Pos.String())
	assert.Equal(t, "#", lexemes[3].Literal)
}

func TestScannerNeedsInputElement(t *testing.T) {
	g, err := Parse("tiny.ebnf", strings.NewReader(`Script = "a" .`))
	require.NoError(t, err)
	_, err = NewScanner(g, []byte("a"), "")
	assert.Error(t, err)
}

func TestRecognizerAgreesWithParser(t *testing.T) {
	g := loadDefault(t)
	r := NewRecognizer(g)

	tests := []struct {
		input  string
		accept bool
	}{
		{"var x = 2 ** 3 ** 2;", true},
		{"var a = 1, b;", true},
		{"let y = (-a) ** b;", true},
		{"const f = async (x, y) => x ?? y;", true},
		{"for (var i = 0; i < n; i++) { total += i; }", true},
		{"for (const k in o) ;", true},
		{"for (x of xs) break;", true},
		{"function* g() { yield* h(); }", true},
		{"if (a) b(); else { c = [1, , 2]; }", true},
		{"try { f(); } catch (e) { g(e?.message); } finally { done(); }", true},
		{"switch (x) { case 1: y(); default: z(); }", true},
		{"o = { a: 1, b, [k]: v, get p() { return 1; }, ...rest };", true},
		{"label: while (true) { continue label; }", true},
		{"new Foo(1).bar[0]();", true},
		{"typeof x === 'string' && !y;", true},
		{"a = b ? c : d;", true},
		{"var a = 1;\n", true},
		{"var a = 1;\nvar b = 2;", true},
		{"if (a) {\n  b = 1;\n}\n", true},
		{"f(\n1);", true},
		{"var a = 1,\n    b = 2\nc = a\n  ** b\n", true},
		{"function f() {\n  return 1;\n}\n", true},
		{"// note\nx = 1;\n", true},
		{"-a ** b;", false},
		{"var 5;", false},
		{"var x y;", false},
		{"a ?? b || c;", false},
		{"x = 2 **;", false},
		{"throw;", false},
		{"if (a) {", false},
		{"var a = 1\n2 b;", false},
		{"a\n=;", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			grammarErr := r.Recognize(ScriptStart, tokenize(tt.input))
			_, parseErr := parser.ParseScript(strings.NewReader(tt.input)).Finish()

			if tt.accept {
				assert.NoError(t, grammarErr, "grammar")
				assert.NoError(t, parseErr, "parser")
			} else {
				assert.Error(t, grammarErr, "grammar")
				assert.Error(t, parseErr, "parser")
			}
		})
	}
}

func TestRecognizerErrors(t *testing.T) {
	r := NewRecognizer(loadDefault(t))

	err := r.Recognize("Nope", tokenize("a;"))
	assert.ErrorContains(t, err, `production "Nope" not found`)

	err = r.Recognize(ScriptStart, tokenize("var x = 1 2;"))
	assert.ErrorContains(t, err, `1:11: Script does not derive "2"`)

	err = r.Recognize(ScriptStart, tokenize("var x ="))
	assert.ErrorContains(t, err, "input ends before Script is complete")
}

func TestRecognizerLineTerminators(t *testing.T) {
	r := NewRecognizer(loadDefault(t))
	tokens := tokenize("a = 1\nb = 2\n")

	assert.NoError(t, r.Recognize(ScriptStart, tokens))

	r.SetSkipKinds(parser.TokenWhitespace, parser.TokenLineTerminator)
	assert.Error(t, r.Recognize(ScriptStart, tokens))
}

func TestRecognizerLineTerminatorErrorPosition(t *testing.T) {
	r := NewRecognizer(loadDefault(t))
	err := r.Recognize(ScriptStart, tokenize("var a = 1;\nvar 5;\n"))
	assert.ErrorContains(t, err, `2:5: Script does not derive "5"`)
}
