// Package parser provides a recursive-descent parser for an ECMAScript
// subset.
//
// # Overview
//
// Source bytes are turned into tokens by the Lexer, filtered into a
// TokenSource, and read by the productions through a Cursor. Every
// production is a method with the shape
//
//	func (p *Parser) parseX(ctx Context) (*Node, error)
//
// and either returns a finished node or the first syntax error. There is no
// error recovery: parsing stops at the first *Error.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Cursor    │────▶│ Productions │
//	│  (bytes)    │     │  (tokens)   │     │ (lookahead) │     │   (Node)    │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//
// # Grammar parameters
//
// The Context passed to each production carries the In, Yield and Await
// parameters of the grammar. A production that changes one derives a copy
// for its sub-productions:
//
//	head := ctx.WithIn(false) // for (x in y) must not read `x in y`
//
// # Statement termination
//
// Line terminators are kept in the token stream but skipped by Peek and
// Next. Cursor.PeekSemicolon decides whether a statement may end at the
// current position, which is how a missing `;` is tolerated after a line
// break, before `}` or at the end of input.
//
// # Usage
//
//	p := parser.ParseScript(strings.NewReader("var x = 2 ** 3 ** 2;"))
//	script, err := p.Finish()
//	if err != nil {
//	    var syntaxErr *parser.Error
//	    if errors.As(err, &syntaxErr) {
//	        fmt.Println(syntaxErr.Pos, syntaxErr.Expected)
//	    }
//	}
//	fmt.Print(script)
//
// Output:
//
//	Script
//	  VarDecl
//	    Declarator x
//	      BinaryOp **
//	        NumericLiteral 2
//	        BinaryOp **
//	          NumericLiteral 3
//	          NumericLiteral 2
//
// IsComplete reports whether the input ends in the middle of a construct,
// which lets a REPL keep reading lines until a statement is whole.
package parser
