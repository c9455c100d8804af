package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/esparse/ecma/interner"
)

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
)

// Lexer turns source bytes into tokens. It does not know about regular
// expression or template literals; a backtick yields a TokenError and `/` is
// always a division punctuator.
type Lexer struct {
	input    []byte
	file     string
	pos      int
	line     int
	column   int
	interner *interner.Interner
}

func NewLexer(input []byte, file string, in *interner.Interner) *Lexer {
	if in == nil {
		in = interner.New()
	}
	return &Lexer{
		input:    input,
		file:     file,
		pos:      0,
		line:     1,
		column:   1,
		interner: in,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	switch {
	case ch == '\n':
		l.line++
		l.column = 1
	case ch == '\r' && l.peek() != '\n':
		l.line++
		l.column = 1
	default:
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// advanceRune consumes one UTF-8 encoded rune. Columns count bytes, except
// that the Unicode line and paragraph separators start a new line.
func (l *Lexer) advanceRune() rune {
	r, size := l.peekRune()
	if size <= 1 {
		l.advance()
		return r
	}
	l.pos += size
	if r == lineSeparator || r == paragraphSeparator {
		l.line++
		l.column = 1
	} else {
		l.column += size
	}
	return r
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if l.isWhitespaceOrLineTerminator() {
		return l.scanWhitespace(startPos)
	}

	if r, _ := l.peekRune(); isIdentifierStart(r) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' || ch == '"' {
		return l.scanStringLiteral(startPos, ch)
	}

	return l.scanPunctuator(startPos)
}

func (l *Lexer) isWhitespaceOrLineTerminator() bool {
	switch l.peek() {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	r, _ := l.peekRune()
	return r == lineSeparator || r == paragraphSeparator || r == '\u00a0' || r == '\ufeff' ||
		(r >= utf8.RuneSelf && unicode.Is(unicode.Zs, r))
}

// scanWhitespace consumes a run of whitespace. A run that contains a line
// break is reported as a single TokenLineTerminator.
func (l *Lexer) scanWhitespace(start Position) Token {
	kind := TokenWhitespace
	for !l.atEnd() && l.isWhitespaceOrLineTerminator() {
		r := l.advanceRune()
		if r == '\n' || r == '\r' || r == lineSeparator || r == paragraphSeparator {
			kind = TokenLineTerminator
		}
	}
	return l.token(kind, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEnd() && l.peek() != '\n' && l.peek() != '\r' {
		r, _ := l.peekRune()
		if r == lineSeparator || r == paragraphSeparator {
			break
		}
		l.advanceRune()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.atEnd() {
			return l.token(TokenError, start)
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advanceRune()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for !l.atEnd() {
		r, _ := l.peekRune()
		if !isIdentifierPart(r) {
			break
		}
		l.advanceRune()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])

	kind := LookupKeyword(literal)
	tok := Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
	if kind == TokenIdent {
		tok.Sym = l.interner.Intern(literal)
	}
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' {
		switch l.peekN(1) {
		case 'x', 'X':
			return l.scanRadixNumber(start, isHexDigit)
		case 'o', 'O':
			return l.scanRadixNumber(start, isOctalDigit)
		case 'b', 'B':
			return l.scanRadixNumber(start, isBinaryDigit)
		}
	}

	isInteger := true
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	if l.peek() == '.' {
		isInteger = false
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isInteger = false
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			return l.token(TokenError, start)
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if isInteger && l.peek() == 'n' {
		l.advance()
	}

	// 3in is not a number followed by `in`.
	if r, _ := l.peekRune(); isIdentifierStart(r) {
		return l.token(TokenError, start)
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanRadixNumber(start Position, digit func(byte) bool) Token {
	l.advanceN(2)
	if !digit(l.peek()) {
		return l.token(TokenError, start)
	}
	for digit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == 'n' {
		l.advance()
	}
	if r, _ := l.peekRune(); isIdentifierStart(r) || isDigit(l.peek()) {
		return l.token(TokenError, start)
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanStringLiteral(start Position, quote byte) Token {
	l.advance()
	for {
		if l.atEnd() {
			return l.token(TokenError, start)
		}
		ch := l.peek()
		if ch == quote {
			l.advance()
			break
		}
		if ch == '\n' || ch == '\r' {
			return l.token(TokenError, start)
		}
		if ch == '\\' {
			l.advance()
			if l.atEnd() {
				return l.token(TokenError, start)
			}
			// Line continuation: the escaped line break is part of the literal.
			if l.peek() == '\r' && l.peekN(1) == '\n' {
				l.advance()
			}
		}
		l.advanceRune()
	}
	return l.token(TokenString, start)
}

func (l *Lexer) scanPunctuator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)

	case '.':
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.advanceN(3)
			return l.token(TokenEllipsis, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case '?':
		if l.peekN(1) == '?' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenCoalesceAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenCoalesce, start)
		}
		// a?.5:b is a conditional, not an optional chain.
		if l.peekN(1) == '.' && !isDigit(l.peekN(2)) {
			l.advanceN(2)
			return l.token(TokenOptionalChain, start)
		}
		l.advance()
		return l.token(TokenQuestion, start)

	case '=':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStrictEq, start)
			}
			l.advanceN(2)
			return l.token(TokenEq, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStrictNotEq, start)
			}
			l.advanceN(2)
			return l.token(TokenNotEq, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(TokenUShrAssign, start)
				}
				l.advanceN(3)
				return l.token(TokenUShr, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenLogicalAndAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenAndAssign, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenLogicalOrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenOrAssign, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenXorAssign, start)
		}
		l.advance()
		return l.token(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '*' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenExpAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenExp, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	l.advanceRune()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isIdentifierStart(r rune) bool {
	if r < utf8.RuneSelf {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentifierPart(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentifierStart(r) || (r >= '0' && r <= '9')
	}
	return isIdentifierStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
		r == '\u200c' || r == '\u200d'
}
