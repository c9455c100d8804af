package parser

func (p *Parser) parsePrimaryExpr(ctx Context) (*Node, error) {
	start := p.startPos()
	tok, ok := p.cursor.Next()
	if !ok {
		return nil, abruptEndError(tok.Pos(), "primary expression")
	}

	switch tok.Kind {
	case TokenThis:
		return p.leaf(KindThis, tok), nil
	case TokenNumber:
		return p.leaf(KindNumericLiteral, tok), nil
	case TokenString:
		return p.leaf(KindStringLiteral, tok), nil
	case TokenTrue, TokenFalse:
		return p.leaf(KindBooleanLiteral, tok), nil
	case TokenNull:
		return p.leaf(KindNullLiteral, tok), nil
	case TokenLBracket:
		return p.parseArrayLiteral(ctx, start)
	case TokenLBrace:
		return p.parseObjectLiteral(ctx, start)
	case TokenLParen:
		return p.parseParenthesizedExpr(ctx)
	case TokenFunction:
		p.cursor.Back()
		return p.parseFunction(ctx, KindFunctionExpr, start, false)
	}

	if tok.Literal == "async" && tok.Kind == TokenIdent &&
		p.peekIs(TokenFunction) && !p.cursor.NextIsLineTerminator() {
		return p.parseFunction(ctx, KindFunctionExpr, start, true)
	}
	if isIdentifierReference(tok, ctx) {
		return p.identifier(tok), nil
	}
	return nil, p.expected(tok, "primary expression", "expression")
}

// The opening parenthesis has been consumed.
func (p *Parser) parseParenthesizedExpr(ctx Context) (*Node, error) {
	expr, err := p.parseExpression(ctx.WithIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, "parenthesized expression"); err != nil {
		return nil, err
	}
	expr.Flags |= FlagParenthesized
	return expr, nil
}

// ArrayLiteral: `[` (Elision | AssignmentExpression | `...` AssignmentExpression),* `]`
// The opening bracket has been consumed.
func (p *Parser) parseArrayLiteral(ctx Context, start Position) (*Node, error) {
	n := &Node{Kind: KindArrayLiteral}
	for {
		tok, ok := p.cursor.Peek(0)
		if !ok {
			return nil, abruptEndError(tok.Pos(), "array literal")
		}
		switch tok.Kind {
		case TokenRBracket:
			p.cursor.Next()
			return p.finish(n, start), nil
		case TokenComma:
			p.cursor.Next()
			n.AddChild(&Node{Kind: KindElision, Span: tok.Span})
			continue
		}

		elem, err := p.parseSpreadOrAssignment(ctx.WithIn(true))
		if err != nil {
			return nil, err
		}
		n.AddChild(elem)

		tok, ok = p.cursor.Next()
		if !ok {
			return nil, abruptEndError(tok.Pos(), "array literal")
		}
		switch tok.Kind {
		case TokenComma:
		case TokenRBracket:
			return p.finish(n, start), nil
		default:
			return nil, p.expected(tok, "array literal", ",", "]")
		}
	}
}

// The opening brace has been consumed.
func (p *Parser) parseObjectLiteral(ctx Context, start Position) (*Node, error) {
	n := &Node{Kind: KindObjectLiteral}
	for {
		if p.accept(TokenRBrace) {
			return p.finish(n, start), nil
		}
		prop, err := p.parseProperty(ctx.WithIn(true))
		if err != nil {
			return nil, err
		}
		n.AddChild(prop)

		tok, ok := p.cursor.Next()
		if !ok {
			return nil, abruptEndError(tok.Pos(), "object literal")
		}
		switch tok.Kind {
		case TokenComma:
		case TokenRBrace:
			return p.finish(n, start), nil
		default:
			return nil, p.expected(tok, "object literal", ",", "}")
		}
	}
}

// isMethodModifier reports whether the next token is get, set or async used
// as a prefix to a property name rather than as the name itself.
func (p *Parser) isMethodModifier() bool {
	tok, ok := p.cursor.Peek(0)
	if !ok || tok.Kind != TokenIdent {
		return false
	}
	switch tok.Literal {
	case "get", "set":
	case "async":
		if p.cursor.LineTerminatorBefore(1) {
			return false
		}
	default:
		return false
	}
	next, ok := p.cursor.Peek(1)
	if !ok {
		return false
	}
	switch next.Kind {
	case TokenComma, TokenColon, TokenLParen, TokenRBrace, TokenAssign:
		return false
	}
	return true
}

func (p *Parser) parseProperty(ctx Context) (*Node, error) {
	start := p.startPos()
	if p.accept(TokenEllipsis) {
		arg, err := p.parseAssignmentExpr(ctx)
		if err != nil {
			return nil, err
		}
		return p.finish(&Node{Kind: KindSpread, Children: []*Node{arg}}, start), nil
	}

	var flags NodeFlags
	if p.isMethodModifier() {
		mod, _ := p.cursor.Next()
		switch mod.Literal {
		case "get":
			flags |= FlagGetter
		case "set":
			flags |= FlagSetter
		case "async":
			flags |= FlagAsync | FlagMethod
		}
	}
	if p.accept(TokenStar) {
		flags |= FlagGenerator | FlagMethod
	}

	keyTok, _ := p.cursor.Peek(0)
	key, computed, err := p.parsePropertyKey(ctx)
	if err != nil {
		return nil, err
	}

	n := &Node{Kind: KindProperty, Children: []*Node{key}}
	switch {
	case flags&(FlagGetter|FlagSetter|FlagAsync|FlagGenerator) != 0, p.peekIs(TokenLParen):
		if flags&(FlagGetter|FlagSetter) == 0 {
			flags |= FlagMethod
		}
		fn, err := p.parseMethod(flags.Has(FlagAsync), flags.Has(FlagGenerator))
		if err != nil {
			return nil, err
		}
		n.AddChild(fn)
	case p.accept(TokenColon):
		value, err := p.parseAssignmentExpr(ctx)
		if err != nil {
			return nil, err
		}
		n.AddChild(value)
	case flags == 0 && !computed && isIdentifierReference(keyTok, ctx):
		flags |= FlagShorthand
		n.AddChild(p.identifier(keyTok))
	default:
		tok, _ := p.cursor.Peek(0)
		return nil, p.expected(tok, "object literal", ":")
	}
	if computed {
		flags |= FlagComputed
	}
	n.Flags = flags
	return p.finish(n, start), nil
}

// PropertyName: IdentifierName | StringLiteral | NumericLiteral | `[` AssignmentExpression `]`
func (p *Parser) parsePropertyKey(ctx Context) (key *Node, computed bool, err error) {
	tok, ok := p.cursor.Next()
	if !ok {
		return nil, false, abruptEndError(tok.Pos(), "property name")
	}
	switch {
	case tok.Kind == TokenLBracket:
		key, err = p.parseAssignmentExpr(ctx.WithIn(true))
		if err != nil {
			return nil, false, err
		}
		if _, err := p.cursor.Expect(TokenRBracket, "property name"); err != nil {
			return nil, false, err
		}
		return key, true, nil
	case tok.Kind == TokenString:
		return p.leaf(KindStringLiteral, tok), false, nil
	case tok.Kind == TokenNumber:
		return p.leaf(KindNumericLiteral, tok), false, nil
	case isIdentifierName(tok):
		return p.identifier(tok), false, nil
	}
	return nil, false, p.expected(tok, "property name", "property name")
}
