package parser

func (p *Parser) parseScript(ctx Context) (*Node, error) {
	n := &Node{Kind: KindScript}
	for {
		if _, ok := p.cursor.Peek(0); !ok {
			break
		}
		stmt, err := p.parseStatementListItem(ctx)
		if err != nil {
			return nil, err
		}
		n.AddChild(stmt)
	}
	if len(n.Children) > 0 {
		n.Span = spanBetween(n.Children[0], n.Children[len(n.Children)-1])
	}
	return n, nil
}

// StatementListItem: Statement | Declaration
func (p *Parser) parseStatementListItem(ctx Context) (*Node, error) {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return nil, abruptEndError(tok.Pos(), "statement")
	}
	switch {
	case tok.Kind == TokenFunction:
		return p.parseFunction(ctx, KindFunctionDecl, tok.Pos(), false)
	case p.asyncFunctionAhead():
		p.cursor.Next()
		return p.parseFunction(ctx, KindFunctionDecl, tok.Pos(), true)
	case p.lexicalDeclarationAhead(ctx):
		return p.parseLexicalDeclaration(ctx)
	}
	return p.parseStatement(ctx)
}

func (p *Parser) asyncFunctionAhead() bool {
	tok, ok := p.cursor.Peek(0)
	if !ok || tok.Kind != TokenIdent || tok.Literal != "async" {
		return false
	}
	next, ok := p.cursor.Peek(1)
	return ok && next.Kind == TokenFunction && !p.cursor.LineTerminatorBefore(1)
}

func (p *Parser) parseStatement(ctx Context) (*Node, error) {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return nil, abruptEndError(tok.Pos(), "statement")
	}

	switch tok.Kind {
	case TokenLBrace:
		return p.parseBlock(ctx)
	case TokenVar:
		return p.parseVariableStatement(ctx)
	case TokenSemicolon:
		p.cursor.Next()
		return p.leaf(KindEmptyStmt, tok), nil
	case TokenIf:
		return p.parseIfStatement(ctx)
	case TokenWhile:
		return p.parseWhileStatement(ctx)
	case TokenDo:
		return p.parseDoWhileStatement(ctx)
	case TokenFor:
		return p.parseForStatement(ctx)
	case TokenReturn:
		return p.parseReturnStatement(ctx)
	case TokenBreak:
		return p.parseJumpStatement(ctx, KindBreakStmt, "break statement")
	case TokenContinue:
		return p.parseJumpStatement(ctx, KindContinueStmt, "continue statement")
	case TokenThrow:
		return p.parseThrowStatement(ctx)
	case TokenSwitch:
		return p.parseSwitchStatement(ctx)
	case TokenTry:
		return p.parseTryStatement(ctx)
	case TokenDebugger:
		p.cursor.Next()
		if err := p.cursor.ExpectSemicolon(false, "debugger statement"); err != nil {
			return nil, err
		}
		return p.finish(&Node{Kind: KindDebuggerStmt}, tok.Pos()), nil
	}

	if isIdentifierReference(tok, ctx) {
		if next, ok := p.cursor.Peek(1); ok && next.Kind == TokenColon {
			return p.parseLabeledStatement(ctx)
		}
	}
	return p.parseExpressionStatement(ctx)
}

func (p *Parser) parseExpressionStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	expr, err := p.parseExpression(ctx.WithIn(true))
	if err != nil {
		return nil, err
	}
	if err := p.cursor.ExpectSemicolon(false, "expression statement"); err != nil {
		return nil, err
	}
	return p.finish(&Node{Kind: KindExprStmt, Children: []*Node{expr}}, start), nil
}

func (p *Parser) parseBlock(ctx Context) (*Node, error) {
	return p.parseBlockWith(ctx, "block statement")
}

// parseBlockWith parses `{` StatementListItem* `}`.
func (p *Parser) parseBlockWith(ctx Context, production string) (*Node, error) {
	start := p.startPos()
	if _, err := p.cursor.Expect(TokenLBrace, production); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindBlock}
	for !p.peekIs(TokenRBrace) {
		if tok, ok := p.cursor.Peek(0); !ok {
			return nil, abruptEndError(tok.Pos(), production)
		}
		stmt, err := p.parseStatementListItem(ctx)
		if err != nil {
			return nil, err
		}
		n.AddChild(stmt)
	}
	p.cursor.Next()
	return p.finish(n, start), nil
}

// parseCondition parses `(` Expression `)` after a keyword.
func (p *Parser) parseCondition(ctx Context, production string) (*Node, error) {
	if _, err := p.cursor.Expect(TokenLParen, production); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(ctx.WithIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, production); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIfStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	p.cursor.Next()
	test, err := p.parseCondition(ctx, "if statement")
	if err != nil {
		return nil, err
	}
	consequent, err := p.parseStatement(ctx)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindIfStmt, Children: []*Node{test, consequent}}
	if p.accept(TokenElse) {
		alternate, err := p.parseStatement(ctx)
		if err != nil {
			return nil, err
		}
		n.AddChild(alternate)
	}
	return p.finish(n, start), nil
}

func (p *Parser) parseWhileStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	p.cursor.Next()
	test, err := p.parseCondition(ctx, "while statement")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement(ctx)
	if err != nil {
		return nil, err
	}
	return p.finish(&Node{Kind: KindWhileStmt, Children: []*Node{test, body}}, start), nil
}

// The `;` after a do-while statement may always be omitted.
func (p *Parser) parseDoWhileStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	p.cursor.Next()
	body, err := p.parseStatement(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenWhile, "do-while statement"); err != nil {
		return nil, err
	}
	test, err := p.parseCondition(ctx, "do-while statement")
	if err != nil {
		return nil, err
	}
	p.accept(TokenSemicolon)
	return p.finish(&Node{Kind: KindDoWhileStmt, Children: []*Node{body, test}}, start), nil
}

// parseForStatement parses the three for forms. The head is parsed with
// `in` disabled so that `for (a in b)` is not read as a relational
// expression.
func (p *Parser) parseForStatement(ctx Context) (*Node, error) {
	const production = "for statement"
	start := p.startPos()
	p.cursor.Next()
	if _, err := p.cursor.Expect(TokenLParen, production); err != nil {
		return nil, err
	}

	head := ctx.WithIn(false)
	var init *Node
	var err error
	switch {
	case p.peekIs(TokenSemicolon):
		init = p.omitted()
	case p.peekIs(TokenVar), p.lexicalDeclarationAhead(ctx):
		init, err = p.parseForDeclarationList(head)
	default:
		init, err = p.parseExpression(head)
	}
	if err != nil {
		return nil, err
	}

	if kind, ok := p.forEachAhead(); ok {
		return p.parseForEachRest(ctx, kind, init, start)
	}

	if _, err := p.cursor.Expect(TokenSemicolon, production); err != nil {
		return nil, err
	}
	test := p.omitted()
	if !p.peekIs(TokenSemicolon) {
		if test, err = p.parseExpression(ctx.WithIn(true)); err != nil {
			return nil, err
		}
	}
	if _, err := p.cursor.Expect(TokenSemicolon, production); err != nil {
		return nil, err
	}
	update := p.omitted()
	if !p.peekIs(TokenRParen) {
		if update, err = p.parseExpression(ctx.WithIn(true)); err != nil {
			return nil, err
		}
	}
	if _, err := p.cursor.Expect(TokenRParen, production); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(ctx)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindForStmt, Children: []*Node{init, test, update, body}}
	return p.finish(n, start), nil
}

// forEachAhead reports whether the for head continues with `in` or `of`.
func (p *Parser) forEachAhead() (NodeKind, bool) {
	tok, ok := p.cursor.Peek(0)
	switch {
	case !ok:
		return 0, false
	case tok.Kind == TokenIn:
		return KindForInStmt, true
	case tok.Kind == TokenIdent && tok.Literal == "of":
		return KindForOfStmt, true
	}
	return 0, false
}

func (p *Parser) parseForEachRest(ctx Context, kind NodeKind, left *Node, start Position) (*Node, error) {
	const production = "for statement"
	tok, _ := p.cursor.Next()
	if left.Kind == KindOmitted {
		return nil, p.expected(tok, production, "identifier")
	}
	if left.Kind.IsDeclaration() {
		if len(left.Children) != 1 {
			return nil, p.expected(tok, production, ";")
		}
		if init := left.Children[0].Init(); init != nil && (kind == KindForOfStmt || left.Kind != KindVarDecl) {
			return nil, p.expected(tok, production, ";")
		}
	}

	var right *Node
	var err error
	if kind == KindForOfStmt {
		right, err = p.parseAssignmentExpr(ctx.WithIn(true))
	} else {
		right, err = p.parseExpression(ctx.WithIn(true))
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRParen, production); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(ctx)
	if err != nil {
		return nil, err
	}
	return p.finish(&Node{Kind: kind, Children: []*Node{left, right, body}}, start), nil
}

// ReturnStatement: `return` [no LineTerminator here] Expression? `;`
func (p *Parser) parseReturnStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	p.cursor.Next()
	n := &Node{Kind: KindReturnStmt}
	if terminated, _ := p.cursor.PeekSemicolon(false); !terminated {
		arg, err := p.parseExpression(ctx.WithIn(true))
		if err != nil {
			return nil, err
		}
		n.AddChild(arg)
	}
	if err := p.cursor.ExpectSemicolon(false, "return statement"); err != nil {
		return nil, err
	}
	return p.finish(n, start), nil
}

// break and continue take an optional label on the same line.
func (p *Parser) parseJumpStatement(ctx Context, kind NodeKind, production string) (*Node, error) {
	start := p.startPos()
	p.cursor.Next()
	n := &Node{Kind: kind}
	if !p.cursor.NextIsLineTerminator() {
		if tok, ok := p.cursor.Peek(0); ok && isIdentifierReference(tok, ctx) {
			p.cursor.Next()
			n.Token = &tok
			n.Sym = p.symbol(tok)
		}
	}
	if err := p.cursor.ExpectSemicolon(false, production); err != nil {
		return nil, err
	}
	return p.finish(n, start), nil
}

// ThrowStatement: `throw` [no LineTerminator here] Expression `;`
func (p *Parser) parseThrowStatement(ctx Context) (*Node, error) {
	const production = "throw statement"
	start := p.startPos()
	p.cursor.Next()
	if lt, ok := p.cursor.PeekLineTerminator(); ok {
		return nil, &Error{
			Kind:       ErrorExpected,
			Expected:   []string{"expression"},
			Found:      TokenLineTerminator.String(),
			Pos:        lt.Pos(),
			Production: production,
		}
	}
	arg, err := p.parseExpression(ctx.WithIn(true))
	if err != nil {
		return nil, err
	}
	if err := p.cursor.ExpectSemicolon(false, production); err != nil {
		return nil, err
	}
	return p.finish(&Node{Kind: KindThrowStmt, Children: []*Node{arg}}, start), nil
}

func (p *Parser) parseSwitchStatement(ctx Context) (*Node, error) {
	const production = "switch statement"
	start := p.startPos()
	p.cursor.Next()
	discriminant, err := p.parseCondition(ctx, production)
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenLBrace, production); err != nil {
		return nil, err
	}

	n := &Node{Kind: KindSwitchStmt, Children: []*Node{discriminant}}
	seenDefault := false
	for !p.accept(TokenRBrace) {
		clauseStart := p.startPos()
		tok, ok := p.cursor.Next()
		if !ok {
			return nil, abruptEndError(tok.Pos(), production)
		}

		var clause *Node
		switch {
		case tok.Kind == TokenCase:
			test, err := p.parseExpression(ctx.WithIn(true))
			if err != nil {
				return nil, err
			}
			clause = &Node{Kind: KindSwitchCase, Children: []*Node{test}}
		case tok.Kind == TokenDefault && !seenDefault:
			seenDefault = true
			clause = &Node{Kind: KindSwitchDefault}
		default:
			return nil, p.expected(tok, production, "case", "default", "}")
		}
		if _, err := p.cursor.Expect(TokenColon, production); err != nil {
			return nil, err
		}
		for {
			next, ok := p.cursor.Peek(0)
			if !ok {
				return nil, abruptEndError(next.Pos(), production)
			}
			if next.Kind == TokenCase || next.Kind == TokenDefault || next.Kind == TokenRBrace {
				break
			}
			stmt, err := p.parseStatementListItem(ctx)
			if err != nil {
				return nil, err
			}
			clause.AddChild(stmt)
		}
		n.AddChild(p.finish(clause, clauseStart))
	}
	return p.finish(n, start), nil
}

func (p *Parser) parseTryStatement(ctx Context) (*Node, error) {
	const production = "try statement"
	start := p.startPos()
	p.cursor.Next()
	block, err := p.parseBlock(ctx)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindTryStmt, Children: []*Node{block}}

	if p.peekIs(TokenCatch) {
		catchStart := p.startPos()
		p.cursor.Next()
		catch := &Node{Kind: KindCatchClause}
		if p.accept(TokenLParen) {
			param, err := p.parseBindingIdentifier(ctx, "catch clause")
			if err != nil {
				return nil, err
			}
			catch.AddChild(param)
			if _, err := p.cursor.Expect(TokenRParen, "catch clause"); err != nil {
				return nil, err
			}
		}
		body, err := p.parseBlock(ctx)
		if err != nil {
			return nil, err
		}
		catch.AddChild(body)
		n.AddChild(p.finish(catch, catchStart))
	}
	if p.peekIs(TokenFinally) {
		finallyStart := p.startPos()
		p.cursor.Next()
		body, err := p.parseBlock(ctx)
		if err != nil {
			return nil, err
		}
		n.AddChild(p.finish(&Node{Kind: KindFinallyClause, Children: []*Node{body}}, finallyStart))
	}

	if len(n.Children) == 1 {
		tok, ok := p.cursor.Peek(0)
		if !ok {
			return nil, abruptEndError(tok.Pos(), production)
		}
		return nil, p.expected(tok, production, "catch", "finally")
	}
	return p.finish(n, start), nil
}

func (p *Parser) parseLabeledStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	label, _ := p.cursor.Next()
	p.cursor.Next()
	body, err := p.parseStatement(ctx)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindLabeledStmt, Token: &label, Sym: p.symbol(label), Children: []*Node{body}}
	return p.finish(n, start), nil
}
