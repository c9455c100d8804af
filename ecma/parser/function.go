package parser

// parseFunction parses `function` `*`? name? FormalParameters FunctionBody.
// A leading async has already been consumed when async is set; start is the
// position of the first token of the whole construct.
func (p *Parser) parseFunction(ctx Context, kind NodeKind, start Position, async bool) (*Node, error) {
	production := "function expression"
	if kind == KindFunctionDecl {
		production = "function declaration"
	}
	if _, err := p.cursor.Expect(TokenFunction, production); err != nil {
		return nil, err
	}

	n := &Node{Kind: kind}
	if async {
		n.Flags |= FlagAsync
	}
	if p.accept(TokenStar) {
		n.Flags |= FlagGenerator
	}
	body := Context{AllowIn: true, AllowYield: n.Flags.Has(FlagGenerator), AllowAwait: async}

	// A declaration's name is bound in the enclosing scope, an expression's
	// in its own.
	nameCtx := body
	if kind == KindFunctionDecl {
		nameCtx = ctx
	}
	if kind == KindFunctionDecl || !p.peekIs(TokenLParen) {
		name, err := p.parseBindingIdentifier(nameCtx, production)
		if err != nil {
			return nil, err
		}
		n.Token = name.Token
		n.Sym = name.Sym
	}

	params, err := p.parseFormalParameters(body)
	if err != nil {
		return nil, err
	}
	block, err := p.parseFunctionBody(body)
	if err != nil {
		return nil, err
	}
	n.Children = []*Node{params, block}
	return p.finish(n, start), nil
}

// parseMethod parses the parameters and body of an object literal method.
func (p *Parser) parseMethod(async, generator bool) (*Node, error) {
	start := p.startPos()
	body := Context{AllowIn: true, AllowYield: generator, AllowAwait: async}
	n := &Node{Kind: KindFunctionExpr}
	if async {
		n.Flags |= FlagAsync
	}
	if generator {
		n.Flags |= FlagGenerator
	}
	params, err := p.parseFormalParameters(body)
	if err != nil {
		return nil, err
	}
	block, err := p.parseFunctionBody(body)
	if err != nil {
		return nil, err
	}
	n.Children = []*Node{params, block}
	return p.finish(n, start), nil
}

// FormalParameters: `(` (BindingIdentifier Initializer?),* (`...` BindingIdentifier)? `)`
func (p *Parser) parseFormalParameters(ctx Context) (*Node, error) {
	start := p.startPos()
	if _, err := p.cursor.Expect(TokenLParen, "formal parameters"); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindParameters}
	for !p.accept(TokenRParen) {
		paramStart := p.startPos()
		if p.accept(TokenEllipsis) {
			name, err := p.parseBindingIdentifier(ctx, "rest parameter")
			if err != nil {
				return nil, err
			}
			n.AddChild(p.finish(&Node{Kind: KindRestParameter, Children: []*Node{name}}, paramStart))
			if _, err := p.cursor.Expect(TokenRParen, "formal parameters"); err != nil {
				return nil, err
			}
			break
		}

		param, err := p.parseParameter(ctx)
		if err != nil {
			return nil, err
		}
		n.AddChild(param)

		tok, ok := p.cursor.Next()
		if !ok {
			return nil, abruptEndError(tok.Pos(), "formal parameters")
		}
		if tok.Kind == TokenRParen {
			break
		}
		if tok.Kind != TokenComma {
			return nil, p.expected(tok, "formal parameters", ",", ")")
		}
	}
	return p.finish(n, start), nil
}

func (p *Parser) parseParameter(ctx Context) (*Node, error) {
	start := p.startPos()
	name, err := p.parseBindingIdentifier(ctx, "formal parameter")
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindParameter, Children: []*Node{name}}
	if p.accept(TokenAssign) {
		def, err := p.parseAssignmentExpr(ctx.WithIn(true))
		if err != nil {
			return nil, err
		}
		n.AddChild(def)
	}
	return p.finish(n, start), nil
}

func (p *Parser) parseFunctionBody(ctx Context) (*Node, error) {
	return p.parseBlockWith(ctx, "function body")
}

// arrowFunctionAhead looks past the parameters of a possible arrow function
// for `=>` without consuming anything.
func (p *Parser) arrowFunctionAhead(ctx Context) (arrow, async bool) {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return false, false
	}
	if tok.Kind == TokenLParen {
		after, ok := p.cursor.PeekAfterGroup(0)
		return ok && after.Kind == TokenArrow, false
	}
	if !isIdentifierReference(tok, ctx) {
		return false, false
	}
	next, ok := p.cursor.Peek(1)
	if !ok {
		return false, false
	}
	if next.Kind == TokenArrow {
		return !p.cursor.LineTerminatorBefore(1), false
	}
	if tok.Kind != TokenIdent || tok.Literal != "async" || p.cursor.LineTerminatorBefore(1) {
		return false, false
	}
	switch {
	case next.Kind == TokenLParen:
		after, ok := p.cursor.PeekAfterGroup(1)
		return ok && after.Kind == TokenArrow, ok && after.Kind == TokenArrow
	case isIdentifierReference(next, ctx):
		third, ok := p.cursor.Peek(2)
		isArrow := ok && third.Kind == TokenArrow
		return isArrow, isArrow
	}
	return false, false
}

// ArrowFunction: async? ArrowParameters `=>` ConciseBody
func (p *Parser) parseArrowFunction(ctx Context, async bool) (*Node, error) {
	start := p.startPos()
	n := &Node{Kind: KindArrowFunction}
	if async {
		p.cursor.Next()
		n.Flags |= FlagAsync
	}
	paramCtx := ctx.WithAwait(ctx.AllowAwait || async)

	var params *Node
	if p.peekIs(TokenLParen) {
		var err error
		params, err = p.parseFormalParameters(paramCtx)
		if err != nil {
			return nil, err
		}
	} else {
		name, err := p.parseBindingIdentifier(paramCtx, "arrow function")
		if err != nil {
			return nil, err
		}
		param := &Node{Kind: KindParameter, Span: name.Span, Children: []*Node{name}}
		params = &Node{Kind: KindParameters, Span: name.Span, Children: []*Node{param}}
	}
	if _, err := p.cursor.Expect(TokenArrow, "arrow function"); err != nil {
		return nil, err
	}

	body := Context{AllowIn: ctx.AllowIn, AllowAwait: async}
	var concise *Node
	var err error
	if p.peekIs(TokenLBrace) {
		concise, err = p.parseFunctionBody(body.WithIn(true))
	} else {
		concise, err = p.parseAssignmentExpr(body)
	}
	if err != nil {
		return nil, err
	}
	n.Children = []*Node{params, concise}
	return p.finish(n, start), nil
}
