package parser

import "strings"

// TokenSource is the pull interface the Cursor reads from. After the end of
// input it must keep returning a TokenEOF token.
type TokenSource interface {
	NextToken() Token
}

// tokenStream adapts a Lexer into a TokenSource: whitespace is dropped,
// comments are collected on request, and a block comment spanning lines
// counts as a line terminator.
type tokenStream struct {
	lexer           *Lexer
	includeComments bool
	comments        []Token
}

func newTokenStream(lexer *Lexer, includeComments bool) *tokenStream {
	return &tokenStream{lexer: lexer, includeComments: includeComments}
}

func (s *tokenStream) NextToken() Token {
	for {
		tok := s.lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if s.includeComments {
				s.comments = append(s.comments, tok)
			}
			if tok.Kind == TokenComment && containsLineBreak(tok.Literal) {
				return Token{Kind: TokenLineTerminator, Span: tok.Span}
			}
			continue
		}
		return tok
	}
}

func containsLineBreak(s string) bool {
	return strings.ContainsAny(s, "\n\r\u2028\u2029")
}

// SliceSource serves a fixed token sequence. A trailing TokenEOF is implied
// when the slice does not end with one.
type SliceSource struct {
	tokens []Token
	pos    int
}

func NewSliceSource(tokens []Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

func (s *SliceSource) NextToken() Token {
	if s.pos >= len(s.tokens) {
		var end Position
		if n := len(s.tokens); n > 0 {
			end = s.tokens[n-1].Span.End
		}
		return Token{Kind: TokenEOF, Span: Span{Start: end, End: end}}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}
