package parser

import (
	"testing"

	"github.com/dhamidi/esparse/ecma/interner"
)

func TestTokenKindClasses(t *testing.T) {
	tests := []struct {
		kind       TokenKind
		keyword    bool
		punctuator bool
		literal    bool
	}{
		{TokenVar, true, false, false},
		{TokenYield, true, false, false},
		{TokenTrue, true, false, true},
		{TokenNumber, false, false, true},
		{TokenIdent, false, false, false},
		{TokenExp, false, true, false},
		{TokenCoalesceAssign, false, true, false},
		{TokenEOF, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.keyword)
			}
			if got := tt.kind.IsPunctuator(); got != tt.punctuator {
				t.Errorf("IsPunctuator() = %v, want %v", got, tt.punctuator)
			}
			if got := tt.kind.IsLiteral(); got != tt.literal {
				t.Errorf("IsLiteral() = %v, want %v", got, tt.literal)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	if got := LookupKeyword("instanceof"); got != TokenInstanceof {
		t.Errorf("LookupKeyword(instanceof) = %v, want %v", got, TokenInstanceof)
	}
	if got := LookupKeyword("of"); got != TokenIdent {
		t.Errorf("LookupKeyword(of) = %v, want %v", got, TokenIdent)
	}
}

func TestTokenDisplay(t *testing.T) {
	in := interner.New()
	name := Token{Kind: TokenIdent, Literal: "raw", Sym: in.Intern("value")}

	tests := []struct {
		name string
		tok  Token
		in   *interner.Interner
		want string
	}{
		{"end of input", Token{Kind: TokenEOF}, nil, "end of input"},
		{"line terminator", Token{Kind: TokenLineTerminator, Literal: "\n"}, nil, "line terminator"},
		{"identifier resolved", name, in, "value"},
		{"identifier without interner", name, nil, "raw"},
		{"punctuator", Token{Kind: TokenExp, Literal: "**"}, nil, "**"},
		{"no literal", Token{Kind: TokenSemicolon}, nil, ";"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Display(tt.in); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("String() = %q, want %q", got, "3:7")
	}
	if got := (Position{File: "lib.js", Line: 1, Column: 2}).String(); got != "lib.js:1:2" {
		t.Errorf("String() = %q, want %q", got, "lib.js:1:2")
	}
}
