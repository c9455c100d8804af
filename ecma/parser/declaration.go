package parser

var declarationKinds = map[TokenKind]NodeKind{
	TokenVar:   KindVarDecl,
	TokenLet:   KindLetDecl,
	TokenConst: KindConstDecl,
}

// VariableStatement: `var` VariableDeclarationList `;`
func (p *Parser) parseVariableStatement(ctx Context) (*Node, error) {
	start := p.startPos()
	if _, err := p.cursor.Expect(TokenVar, "variable statement"); err != nil {
		return nil, err
	}
	list, err := p.parseVariableDeclarationList(ctx.WithIn(true), KindVarDecl)
	if err != nil {
		return nil, err
	}
	if err := p.cursor.ExpectSemicolon(false, "variable statement"); err != nil {
		return nil, err
	}
	return p.finish(list, start), nil
}

// LexicalDeclaration: (`let` | `const`) BindingList `;`
func (p *Parser) parseLexicalDeclaration(ctx Context) (*Node, error) {
	start := p.startPos()
	tok, _ := p.cursor.Next()
	list, err := p.parseVariableDeclarationList(ctx.WithIn(true), declarationKinds[tok.Kind])
	if err != nil {
		return nil, err
	}
	if err := p.cursor.ExpectSemicolon(false, "lexical declaration"); err != nil {
		return nil, err
	}
	return p.finish(list, start), nil
}

// parseVariableDeclarationList parses declarators separated by commas until
// the statement can be terminated.
func (p *Parser) parseVariableDeclarationList(ctx Context, kind NodeKind) (*Node, error) {
	list := &Node{Kind: kind}
	for {
		decl, err := p.parseVariableDeclaration(ctx, kind, false)
		if err != nil {
			return nil, err
		}
		list.AddChild(decl)

		// The comma is tried before statement termination, so `var a\n, b`
		// is one statement. Ending at the line break would leave a
		// statement starting with `,`, which never parses.
		if p.accept(TokenComma) {
			continue
		}
		terminated, tok := p.cursor.PeekSemicolon(false)
		if terminated {
			break
		}
		return nil, p.expected(*tok, "lexical declaration", ";", ",")
	}
	list.Span = spanBetween(list.Children[0], list.Children[len(list.Children)-1])
	return list, nil
}

// parseForDeclarationList parses the declaration in a for-statement head.
// The list ends at the first token that is not a comma; the caller checks
// for `;`, `in` or `of`.
func (p *Parser) parseForDeclarationList(ctx Context) (*Node, error) {
	start := p.startPos()
	tok, _ := p.cursor.Next()
	kind := declarationKinds[tok.Kind]
	list := &Node{Kind: kind}
	for {
		decl, err := p.parseVariableDeclaration(ctx, kind, true)
		if err != nil {
			return nil, err
		}
		list.AddChild(decl)
		if !p.accept(TokenComma) {
			break
		}
	}
	return p.finish(list, start), nil
}

// VariableDeclaration: BindingIdentifier Initializer?
//
// In a for-statement head a const may omit its initializer, since for-in
// and for-of provide the value.
func (p *Parser) parseVariableDeclaration(ctx Context, kind NodeKind, inForHead bool) (*Node, error) {
	tok, ok := p.cursor.Next()
	if !ok {
		return nil, abruptEndError(tok.Pos(), "variable declaration")
	}
	if !isIdentifierReference(tok, ctx) || (kind != KindVarDecl && tok.Kind == TokenLet) {
		return nil, p.expected(tok, "variable declaration", "identifier")
	}

	decl := &Node{Kind: KindDeclarator, Token: &tok, Sym: p.symbol(tok)}
	if p.accept(TokenAssign) {
		init, err := p.parseAssignmentExpr(ctx)
		if err != nil {
			return nil, err
		}
		decl.AddChild(init)
	} else if kind == KindConstDecl && !inForHead {
		next, _ := p.cursor.Peek(0)
		return nil, p.expected(next, "lexical declaration", "=")
	}
	return p.finish(decl, tok.Pos()), nil
}

// lexicalDeclarationAhead reports whether the next tokens start a let or
// const declaration. let is an identifier unless a binding name follows it.
func (p *Parser) lexicalDeclarationAhead(ctx Context) bool {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return false
	}
	switch tok.Kind {
	case TokenConst:
		return true
	case TokenLet:
		next, ok := p.cursor.Peek(1)
		return ok && (isIdentifierReference(next, ctx) || next.Kind == TokenLBracket || next.Kind == TokenLBrace)
	}
	return false
}
