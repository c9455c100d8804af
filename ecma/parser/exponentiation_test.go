package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentiation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 ** 3", "(BinaryOp ** (NumericLiteral 2) (NumericLiteral 3))"},
		{"2 ** 3 ** 2", "(BinaryOp ** (NumericLiteral 2) (BinaryOp ** (NumericLiteral 3) (NumericLiteral 2)))"},
		{"a ** b ** c ** d", "(BinaryOp ** (Identifier a) (BinaryOp ** (Identifier b) (BinaryOp ** (Identifier c) (Identifier d))))"},
		{"a ** -b", "(BinaryOp ** (Identifier a) (UnaryOp - (Identifier b)))"},
		{"a ** typeof b", "(BinaryOp ** (Identifier a) (UnaryOp typeof (Identifier b)))"},
		{"a++ ** 2", "(BinaryOp ** (Update ++ (Identifier a)) (NumericLiteral 2))"},
		{"++a ** 2", "(BinaryOp ** (Update ++ prefix (Identifier a)) (NumericLiteral 2))"},
		{"(-a) ** b", "(BinaryOp ** (UnaryOp - paren (Identifier a)) (Identifier b))"},
		{"(a ** b) ** c", "(BinaryOp ** (BinaryOp ** paren (Identifier a) (Identifier b)) (Identifier c))"},
		{"a * b ** c", "(BinaryOp * (Identifier a) (BinaryOp ** (Identifier b) (Identifier c)))"},
		{"a ** b * c", "(BinaryOp * (BinaryOp ** (Identifier a) (Identifier b)) (Identifier c))"},
		{"x.y ** f()", "(BinaryOp ** (Member y (Identifier x)) (Call (Identifier f)))"},
		{"-a", "(UnaryOp - (Identifier a))"},
		{"await ** 2", "(BinaryOp ** (Identifier await) (NumericLiteral 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseExprFragment(t, tt.input)
			assert.Equal(t, tt.want, got.Compact())
		})
	}
}

func TestExponentiationOperator(t *testing.T) {
	node := parseExprFragment(t, "2 ** 3")
	assert.Equal(t, KindBinaryOp, node.Kind)
	assert.Equal(t, OpExp, node.Op)
	assert.Equal(t, CategoryNumeric, node.Op.Category())
	assert.Equal(t, "2", node.Left().TokenLiteral())
	assert.Equal(t, "3", node.Right().TokenLiteral())
}

func TestExponentiationUnaryBase(t *testing.T) {
	tests := []struct {
		input string
		pos   string
	}{
		{"-a ** b;", "1:4"},
		{"+a ** b;", "1:4"},
		{"!a ** b;", "1:4"},
		{"~a ** b;", "1:4"},
		{"typeof a ** b;", "1:10"},
		{"void a ** b;", "1:8"},
		{"delete a ** b;", "1:10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := assertSyntaxError(t, tt.input)
			assert.Equal(t, ErrorExpected, err.Kind)
			assert.Equal(t, "**", err.Found)
			assert.Equal(t, tt.pos, err.Pos.String())
		})
	}
}

func TestExponentiationAwait(t *testing.T) {
	t.Run("operator in module", func(t *testing.T) {
		node := parseExprFragment(t, "await x", WithModule())
		assert.Equal(t, "(Await (Identifier x))", node.Compact())

		err := assertSyntaxError(t, "await x ** 2;", WithModule())
		assert.Equal(t, "**", err.Found)
	})

	t.Run("identifier in script", func(t *testing.T) {
		_, err := ParseExpression(strings.NewReader("await x")).Finish()
		var syntaxErr *Error
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, "x", syntaxErr.Found)
	})
}

func TestExponentiationAbruptEnd(t *testing.T) {
	for _, input := range []string{"2 **", "2 ** 3 **", "a ** -"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseExpression(strings.NewReader(input)).Finish()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnexpectedEnd), "got %v", err)
		})
	}
}

func TestExponentiationStopsAtLastToken(t *testing.T) {
	p := newTestParser(t, "a ** b ; c")
	node, err := p.parseExponentiationExpr(ScriptContext)
	require.NoError(t, err)
	assert.Equal(t, "(BinaryOp ** (Identifier a) (Identifier b))", node.Compact())

	next, ok := p.cursor.Peek(0)
	require.True(t, ok)
	assert.Equal(t, TokenSemicolon, next.Kind)
}

func TestExponentiationFromTokenSlice(t *testing.T) {
	in := interner.New()
	tokens := lexAll("x ** y", in)
	p := New(NewSliceSource(tokens[:len(tokens)-1]), in)
	p.start()
	node, err := p.parseExponentiationExpr(ScriptContext)
	require.NoError(t, err)
	assert.Equal(t, "(BinaryOp ** (Identifier x) (Identifier y))", node.Compact())
	assert.Equal(t, "x", p.Interner().Resolve(node.Left().Sym))
}

func TestExponentiationSpan(t *testing.T) {
	node := parseExprFragment(t, "a ** bc")
	assert.Equal(t, "1:1", node.Span.Start.String())
	assert.Equal(t, "1:8", node.Span.End.String())
}
