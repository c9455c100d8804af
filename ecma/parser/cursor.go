package parser

import "github.com/dhamidi/esparse/ecma/interner"

// Cursor is a finite-lookahead view over a TokenSource. Tokens are pulled on
// demand and kept, so lookahead never consumes. Line terminator tokens stay in
// the buffer for the automatic-termination rules but are invisible to Peek
// and Next.
//
// A Cursor supports exactly one step of pushback: Back undoes the most recent
// Next and may not be called again until the next Next.
type Cursor struct {
	src      TokenSource
	interner *interner.Interner
	buf      []Token
	done     bool
	pos      int
	saved    int
}

func NewCursor(src TokenSource, in *interner.Interner) *Cursor {
	return &Cursor{src: src, interner: in, saved: -1}
}

func (c *Cursor) fill(i int) bool {
	for len(c.buf) <= i {
		if c.done {
			return false
		}
		tok := c.src.NextToken()
		c.buf = append(c.buf, tok)
		if tok.Kind == TokenEOF {
			c.done = true
		}
	}
	return true
}

// raw returns the buffered token at index i. At the end of the stream it
// returns the end-of-stream token and false.
func (c *Cursor) raw(i int) (Token, bool) {
	if !c.fill(i) {
		return c.eof(), false
	}
	tok := c.buf[i]
	if tok.Kind == TokenEOF {
		return tok, false
	}
	return tok, true
}

func (c *Cursor) eof() Token {
	if n := len(c.buf); n > 0 && c.buf[n-1].Kind == TokenEOF {
		return c.buf[n-1]
	}
	return Token{Kind: TokenEOF}
}

func (c *Cursor) skipLineTerminators(i int) int {
	for {
		tok, ok := c.raw(i)
		if !ok || tok.Kind != TokenLineTerminator {
			return i
		}
		i++
	}
}

// index returns the buffer index of the token skip positions ahead.
func (c *Cursor) index(skip int) (int, bool) {
	i := c.skipLineTerminators(c.pos)
	for n := 0; n < skip; n++ {
		if _, ok := c.raw(i); !ok {
			return i, false
		}
		i = c.skipLineTerminators(i + 1)
	}
	_, ok := c.raw(i)
	return i, ok
}

// Peek returns the token skip positions ahead without consuming anything.
// Past the end of the stream it returns the end-of-stream token and false.
func (c *Cursor) Peek(skip int) (Token, bool) {
	i, ok := c.index(skip)
	if !ok {
		return c.eof(), false
	}
	return c.buf[i], true
}

// Next consumes and returns the next token. At the end of the stream it
// returns the end-of-stream token and false without moving.
func (c *Cursor) Next() (Token, bool) {
	c.saved = c.pos
	i, ok := c.index(0)
	if !ok {
		return c.eof(), false
	}
	c.pos = i + 1
	return c.buf[i], true
}

// Back undoes the most recent Next. It panics when there is nothing to undo:
// a second Back in a row is a programming error.
func (c *Cursor) Back() {
	if c.saved < 0 {
		panic("parser: Cursor.Back without a preceding Next")
	}
	c.pos = c.saved
	c.saved = -1
}

// Prev returns the most recently consumed token.
func (c *Cursor) Prev() (Token, bool) {
	for i := c.pos - 1; i >= 0; i-- {
		if c.buf[i].Kind != TokenLineTerminator {
			return c.buf[i], true
		}
	}
	return Token{}, false
}

// NextIsLineTerminator reports whether a line break separates the last
// consumed token from the next one.
func (c *Cursor) NextIsLineTerminator() bool {
	_, ok := c.PeekLineTerminator()
	return ok
}

// PeekLineTerminator returns the line break between the last consumed token
// and the next one, if there is one.
func (c *Cursor) PeekLineTerminator() (Token, bool) {
	tok, ok := c.raw(c.pos)
	return tok, ok && tok.Kind == TokenLineTerminator
}

// LineTerminatorBefore reports whether a line break precedes the token skip
// positions ahead.
func (c *Cursor) LineTerminatorBefore(skip int) bool {
	i, _ := c.index(skip)
	if i == 0 || i > len(c.buf) {
		return false
	}
	return c.buf[i-1].Kind == TokenLineTerminator && i-1 >= c.pos
}

// PeekAfterGroup treats the token skip positions ahead as an opening
// bracket, finds its matching closing bracket and returns the token that
// follows it. It returns false when the group is not closed.
func (c *Cursor) PeekAfterGroup(skip int) (Token, bool) {
	i, ok := c.index(skip)
	if !ok {
		return c.eof(), false
	}
	depth := 0
	for {
		tok, ok := c.raw(i)
		if !ok {
			return tok, false
		}
		switch tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		}
		i++
		if depth == 0 {
			break
		}
	}
	i = c.skipLineTerminators(i)
	return c.raw(i)
}

// PeekSemicolon decides whether the current statement may end here. It ends
// at an explicit `;` (returned so the caller can consume it), before a `}`,
// at the end of the stream, or, unless strict is set, when a line break
// precedes the next token. When the statement cannot end, the offending
// token is returned.
func (c *Cursor) PeekSemicolon(strict bool) (bool, *Token) {
	next, ok := c.Peek(0)
	if !ok {
		return true, nil
	}
	switch next.Kind {
	case TokenSemicolon, TokenRBrace:
		return true, &next
	}
	if !strict && c.NextIsLineTerminator() {
		return true, &next
	}
	return false, &next
}

// ExpectSemicolon terminates a statement, consuming an explicit `;`.
func (c *Cursor) ExpectSemicolon(strict bool, production string) error {
	ok, tok := c.PeekSemicolon(strict)
	if !ok {
		return expectedError([]string{TokenSemicolon.String()}, *tok, c.interner, production)
	}
	if tok != nil && tok.Kind == TokenSemicolon {
		c.Next()
	}
	return nil
}

// Expect consumes the next token if it has the given kind.
func (c *Cursor) Expect(kind TokenKind, production string) (Token, error) {
	tok, ok := c.Next()
	if !ok {
		return tok, abruptEndError(tok.Pos(), production)
	}
	if tok.Kind != kind {
		return tok, expectedError([]string{kind.String()}, tok, c.interner, production)
	}
	return tok, nil
}
