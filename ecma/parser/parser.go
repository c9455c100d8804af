package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/esparse/ecma/interner"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("esparse.parser")

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// WithInterner shares a symbol table between parsers.
func WithInterner(in *interner.Interner) Option {
	return func(p *Parser) {
		p.interner = in
	}
}

// WithContext sets the grammar parameters the entry production starts with.
func WithContext(ctx Context) Option {
	return func(p *Parser) {
		p.ctx = ctx
	}
}

// WithModule parses with the module goal: top-level await is an operator.
func WithModule() Option {
	return WithContext(ModuleContext)
}

type parseFunc func(*Parser, Context) (*Node, error)

type Parser struct {
	file            string
	startLine       int
	includeComments bool
	reader          io.Reader
	input           []byte
	source          TokenSource
	stream          *tokenStream
	interner        *interner.Interner
	cursor          *Cursor
	ctx             Context
	entry           parseFunc
}

func newParser(entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		startLine: 1,
		ctx:       ScriptContext,
		entry:     entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.interner == nil {
		p.interner = interner.New()
	}
	return p
}

// ParseScript prepares a parser for a whole script read from r.
func ParseScript(r io.Reader, opts ...Option) *Parser {
	p := newParser((*Parser).parseScript, opts)
	p.reader = r
	return p
}

// ParseExpression prepares a parser for a single expression read from r.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	p := newParser((*Parser).parseExpressionOnly, opts)
	p.reader = r
	return p
}

// New prepares a script parser over an existing token source. Tokens from a
// source are consumed, so Finish can only succeed once.
func New(src TokenSource, in *interner.Interner, opts ...Option) *Parser {
	if in != nil {
		opts = append([]Option{WithInterner(in)}, opts...)
	}
	p := newParser((*Parser).parseScript, opts)
	p.source = src
	return p
}

func (p *Parser) Interner() *interner.Interner {
	return p.interner
}

func (p *Parser) Comments() []Token {
	if p.stream == nil {
		return nil
	}
	return p.stream.comments
}

func (p *Parser) readAll() error {
	if p.input != nil || p.reader == nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

func (p *Parser) start() {
	if p.source != nil {
		p.cursor = NewCursor(p.source, p.interner)
		return
	}
	lexer := NewLexer(p.input, p.file, p.interner)
	lexer.line = p.startLine
	p.stream = newTokenStream(lexer, p.includeComments)
	p.cursor = NewCursor(p.stream, p.interner)
}

// IsComplete reports whether it is safe to call Finish.
// Returns false when the input ends in the middle of a construct, such as
// "var x =" or "if (a) {", so more input could still make it valid.
func (p *Parser) IsComplete() bool {
	if p.source != nil {
		return true
	}
	if err := p.readAll(); err != nil {
		return false
	}
	if len(p.input) == 0 {
		return false
	}
	saved := *p
	p.start()
	_, err := p.entry(p, p.ctx)
	*p = saved
	return !errors.Is(err, ErrUnexpectedEnd)
}

// Finish parses the input. The first syntax error stops parsing and is
// returned as an *Error.
func (p *Parser) Finish() (*Node, error) {
	if err := p.readAll(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	p.start()
	log.Debugf("parsing %s", p.displayName())
	node, err := p.entry(p, p.ctx)
	if err != nil {
		log.Debugf("%s: %s", p.displayName(), err)
		return nil, err
	}
	return node, nil
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.source = nil
	p.stream = nil
	p.cursor = nil
}

func (p *Parser) displayName() string {
	if p.file != "" {
		return p.file
	}
	return "<input>"
}

func (p *Parser) parseExpressionOnly(ctx Context) (*Node, error) {
	expr, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.cursor.Peek(0); ok {
		return nil, p.expected(tok, "expression", TokenEOF.String())
	}
	return expr, nil
}

// Helpers shared by the productions.

func (p *Parser) expected(found Token, production string, expected ...string) *Error {
	return expectedError(expected, found, p.interner, production)
}

func (p *Parser) abruptEnd(production string) *Error {
	tok, _ := p.cursor.Peek(0)
	return abruptEndError(tok.Pos(), production)
}

// peekIs reports whether the next token has the given kind.
func (p *Parser) peekIs(kind TokenKind) bool {
	tok, ok := p.cursor.Peek(0)
	return ok && tok.Kind == kind
}

// peekIsName reports whether the next token is the identifier name.
func (p *Parser) peekIsName(name string) bool {
	tok, ok := p.cursor.Peek(0)
	return ok && tok.Kind == TokenIdent && tok.Literal == name
}

// accept consumes the next token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.peekIs(kind) {
		p.cursor.Next()
		return true
	}
	return false
}

func (p *Parser) startPos() Position {
	tok, _ := p.cursor.Peek(0)
	return tok.Pos()
}

// finish sets the end of the node's span to the end of the last consumed
// token.
func (p *Parser) finish(n *Node, start Position) *Node {
	n.Span.Start = start
	if tok, ok := p.cursor.Prev(); ok {
		n.Span.End = tok.Span.End
	}
	return n
}

func (p *Parser) leaf(kind NodeKind, tok Token) *Node {
	t := tok
	return &Node{Kind: kind, Span: tok.Span, Token: &t}
}

func (p *Parser) identifier(tok Token) *Node {
	n := p.leaf(KindIdentifier, tok)
	n.Sym = p.symbol(tok)
	return n
}

func (p *Parser) symbol(tok Token) interner.Sym {
	if !tok.Sym.IsNone() {
		return tok.Sym
	}
	return p.interner.Intern(tok.Literal)
}

func (p *Parser) omitted() *Node {
	pos := p.startPos()
	return &Node{Kind: KindOmitted, Span: Span{Start: pos, End: pos}}
}

// isIdentifierReference reports whether tok can name a binding under ctx.
// yield and await are reserved only where they act as operators.
func isIdentifierReference(tok Token, ctx Context) bool {
	switch tok.Kind {
	case TokenIdent, TokenLet:
		return true
	case TokenYield:
		return !ctx.AllowYield
	case TokenAwait:
		return !ctx.AllowAwait
	}
	return false
}

// isIdentifierName reports whether tok may be used as a property name, which
// admits reserved words.
func isIdentifierName(tok Token) bool {
	return tok.Kind == TokenIdent || tok.Kind.IsKeyword()
}

func (p *Parser) parseBindingIdentifier(ctx Context, production string) (*Node, error) {
	tok, ok := p.cursor.Next()
	if !ok {
		return nil, abruptEndError(tok.Pos(), production)
	}
	if !isIdentifierReference(tok, ctx) {
		return nil, p.expected(tok, production, "identifier")
	}
	return p.identifier(tok), nil
}
