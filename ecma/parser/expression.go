package parser

func binaryNode(op Op, opTok Token, left, right *Node) *Node {
	return &Node{
		Kind:     KindBinaryOp,
		Op:       op,
		Token:    &opTok,
		Span:     spanBetween(left, right),
		Children: []*Node{left, right},
	}
}

// Expression: AssignmentExpression (`,` AssignmentExpression)*
func (p *Parser) parseExpression(ctx Context) (*Node, error) {
	first, err := p.parseAssignmentExpr(ctx)
	if err != nil {
		return nil, err
	}
	if !p.peekIs(TokenComma) {
		return first, nil
	}
	seq := &Node{Kind: KindSequence, Children: []*Node{first}}
	for p.accept(TokenComma) {
		next, err := p.parseAssignmentExpr(ctx)
		if err != nil {
			return nil, err
		}
		seq.AddChild(next)
	}
	return p.finish(seq, first.Span.Start), nil
}

func (p *Parser) parseAssignmentExpr(ctx Context) (*Node, error) {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return nil, abruptEndError(tok.Pos(), "assignment expression")
	}
	if tok.Kind == TokenYield && ctx.AllowYield {
		return p.parseYieldExpr(ctx)
	}
	if arrow, async := p.arrowFunctionAhead(ctx); arrow {
		return p.parseArrowFunction(ctx, async)
	}

	left, err := p.parseConditionalExpr(ctx)
	if err != nil {
		return nil, err
	}
	opTok, ok := p.cursor.Next()
	if !ok {
		return left, nil
	}
	op, isAssign := assignOps[opTok.Kind]
	if !isAssign {
		p.cursor.Back()
		return left, nil
	}
	right, err := p.parseAssignmentExpr(ctx)
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:     KindAssign,
		Op:       op,
		Token:    &opTok,
		Span:     spanBetween(left, right),
		Children: []*Node{left, right},
	}, nil
}

func (p *Parser) parseYieldExpr(ctx Context) (*Node, error) {
	start := p.startPos()
	tok, _ := p.cursor.Next()
	n := &Node{Kind: KindYield, Token: &tok}
	if p.cursor.NextIsLineTerminator() {
		return p.finish(n, start), nil
	}
	if p.accept(TokenStar) {
		n.Flags |= FlagDelegate
	} else if next, ok := p.cursor.Peek(0); !ok || !canStartExpression(next) {
		return p.finish(n, start), nil
	}
	arg, err := p.parseAssignmentExpr(ctx)
	if err != nil {
		return nil, err
	}
	n.AddChild(arg)
	return p.finish(n, start), nil
}

func canStartExpression(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenNumber, TokenString,
		TokenThis, TokenNull, TokenTrue, TokenFalse,
		TokenFunction, TokenNew, TokenDelete, TokenVoid, TokenTypeof,
		TokenAwait, TokenYield, TokenLet,
		TokenLParen, TokenLBracket, TokenLBrace,
		TokenPlus, TokenMinus, TokenNot, TokenBitNot,
		TokenIncrement, TokenDecrement:
		return true
	}
	return false
}

func (p *Parser) parseConditionalExpr(ctx Context) (*Node, error) {
	test, err := p.parseShortCircuitExpr(ctx)
	if err != nil {
		return nil, err
	}
	if !p.accept(TokenQuestion) {
		return test, nil
	}
	consequent, err := p.parseAssignmentExpr(ctx.WithIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenColon, "conditional expression"); err != nil {
		return nil, err
	}
	alternate, err := p.parseAssignmentExpr(ctx)
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:     KindConditional,
		Span:     spanBetween(test, alternate),
		Children: []*Node{test, consequent, alternate},
	}, nil
}

func isBareLogical(n *Node) bool {
	return n.Kind == KindBinaryOp && !n.Flags.Has(FlagParenthesized) &&
		(n.Op == OpAnd || n.Op == OpOr)
}

// ShortCircuitExpression: LogicalORExpression | CoalesceExpression.
// `??` cannot be mixed with `&&` or `||` without parentheses.
func (p *Parser) parseShortCircuitExpr(ctx Context) (*Node, error) {
	left, err := p.parseLogicalOrExpr(ctx)
	if err != nil {
		return nil, err
	}
	if !p.peekIs(TokenCoalesce) {
		return left, nil
	}
	if isBareLogical(left) {
		tok, _ := p.cursor.Peek(0)
		return nil, p.expected(tok, "coalesce expression", "parenthesized expression")
	}
	for {
		opTok, _ := p.cursor.Peek(0)
		if opTok.Kind != TokenCoalesce {
			break
		}
		p.cursor.Next()
		right, err := p.parseBitwiseOrExpr(ctx)
		if err != nil {
			return nil, err
		}
		left = binaryNode(OpCoalesce, opTok, left, right)
	}
	if tok, ok := p.cursor.Peek(0); ok && (tok.Kind == TokenAnd || tok.Kind == TokenOr) {
		return nil, p.expected(tok, "coalesce expression", "parenthesized expression")
	}
	return left, nil
}

// parseBinaryLevel parses one left-associative precedence level: operand
// (op operand)*, where op is any token kind in ops.
func (p *Parser) parseBinaryLevel(ctx Context, operand parseFunc, ops ...TokenKind) (*Node, error) {
	left, err := operand(p, ctx)
	if err != nil {
		return nil, err
	}
	for {
		opTok, ok := p.cursor.Peek(0)
		if !ok || !containsKind(ops, opTok.Kind) {
			return left, nil
		}
		if opTok.Kind == TokenIn && !ctx.AllowIn {
			return left, nil
		}
		p.cursor.Next()
		right, err := operand(p, ctx)
		if err != nil {
			return nil, err
		}
		left = binaryNode(binaryOps[opTok.Kind], opTok, left, right)
	}
}

func containsKind(kinds []TokenKind, kind TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parseLogicalOrExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseLogicalAndExpr, TokenOr)
}

func (p *Parser) parseLogicalAndExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseBitwiseOrExpr, TokenAnd)
}

func (p *Parser) parseBitwiseOrExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseBitwiseXorExpr, TokenBitOr)
}

func (p *Parser) parseBitwiseXorExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseBitwiseAndExpr, TokenBitXor)
}

func (p *Parser) parseBitwiseAndExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseEqualityExpr, TokenBitAnd)
}

func (p *Parser) parseEqualityExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseRelationalExpr,
		TokenEq, TokenNotEq, TokenStrictEq, TokenStrictNotEq)
}

// `in` is only an operator when ctx.AllowIn is set.
func (p *Parser) parseRelationalExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseShiftExpr,
		TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof, TokenIn)
}

func (p *Parser) parseShiftExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseAdditiveExpr, TokenShl, TokenShr, TokenUShr)
}

func (p *Parser) parseAdditiveExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseMultiplicativeExpr, TokenPlus, TokenMinus)
}

func (p *Parser) parseMultiplicativeExpr(ctx Context) (*Node, error) {
	return p.parseBinaryLevel(ctx, (*Parser).parseExponentiationExpr, TokenStar, TokenSlash, TokenPercent)
}

// isUnaryStart reports whether tok begins a UnaryExpression that is not an
// UpdateExpression. Such an operand cannot be the base of `**`.
func isUnaryStart(tok Token, ctx Context) bool {
	if tok.Kind == TokenAwait {
		return ctx.AllowAwait
	}
	_, ok := unaryOps[tok.Kind]
	return ok
}

// ExponentiationExpression:
//
//	UnaryExpression
//	UpdateExpression ** ExponentiationExpression
//
// The operator is right-associative. A unary operand is handed to the unary
// production whole, so `-a ** b` leaves `**` unconsumed and fails higher up.
func (p *Parser) parseExponentiationExpr(ctx Context) (*Node, error) {
	if tok, ok := p.cursor.Peek(0); ok && isUnaryStart(tok, ctx) {
		return p.parseUnaryExpr(ctx)
	}

	left, err := p.parseUpdateExpr(ctx)
	if err != nil {
		return nil, err
	}
	tok, ok := p.cursor.Next()
	if !ok {
		return left, nil
	}
	if tok.Kind != TokenExp {
		p.cursor.Back()
		return left, nil
	}
	right, err := p.parseExponentiationExpr(ctx)
	if err != nil {
		return nil, err
	}
	return binaryNode(OpExp, tok, left, right), nil
}

func (p *Parser) parseUnaryExpr(ctx Context) (*Node, error) {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return nil, abruptEndError(tok.Pos(), "unary expression")
	}
	if op, isUnary := unaryOps[tok.Kind]; isUnary {
		p.cursor.Next()
		operand, err := p.parseUnaryExpr(ctx)
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindUnaryOp,
			Op:       op,
			Token:    &tok,
			Span:     Span{Start: tok.Span.Start, End: operand.Span.End},
			Children: []*Node{operand},
		}, nil
	}
	if tok.Kind == TokenAwait && ctx.AllowAwait {
		p.cursor.Next()
		operand, err := p.parseUnaryExpr(ctx)
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindAwait,
			Token:    &tok,
			Span:     Span{Start: tok.Span.Start, End: operand.Span.End},
			Children: []*Node{operand},
		}, nil
	}
	return p.parseUpdateExpr(ctx)
}

// UpdateExpression: (++|--) UnaryExpression | LeftHandSideExpression (++|--)?
// No line break is allowed before a postfix operator.
func (p *Parser) parseUpdateExpr(ctx Context) (*Node, error) {
	tok, ok := p.cursor.Peek(0)
	if !ok {
		return nil, abruptEndError(tok.Pos(), "update expression")
	}
	if op, isUpdate := updateOps[tok.Kind]; isUpdate {
		p.cursor.Next()
		operand, err := p.parseUnaryExpr(ctx)
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindUpdate,
			Op:       op,
			Flags:    FlagPrefix,
			Token:    &tok,
			Span:     Span{Start: tok.Span.Start, End: operand.Span.End},
			Children: []*Node{operand},
		}, nil
	}

	operand, err := p.parseLeftHandSideExpr(ctx)
	if err != nil {
		return nil, err
	}
	if p.cursor.NextIsLineTerminator() {
		return operand, nil
	}
	next, ok := p.cursor.Peek(0)
	if !ok {
		return operand, nil
	}
	op, isUpdate := updateOps[next.Kind]
	if !isUpdate {
		return operand, nil
	}
	p.cursor.Next()
	return &Node{
		Kind:     KindUpdate,
		Op:       op,
		Token:    &next,
		Span:     Span{Start: operand.Span.Start, End: next.Span.End},
		Children: []*Node{operand},
	}, nil
}

func (p *Parser) parseLeftHandSideExpr(ctx Context) (*Node, error) {
	var expr *Node
	var err error
	if p.peekIs(TokenNew) {
		expr, err = p.parseNewExpr(ctx)
	} else {
		expr, err = p.parsePrimaryExpr(ctx)
	}
	if err != nil {
		return nil, err
	}
	return p.parseMemberTail(ctx, expr, true)
}

// parseNewExpr parses `new` callee arguments?. The callee is a member
// expression: calls inside it end the callee.
func (p *Parser) parseNewExpr(ctx Context) (*Node, error) {
	start := p.startPos()
	newTok, _ := p.cursor.Next()

	var callee *Node
	var err error
	if p.peekIs(TokenNew) {
		callee, err = p.parseNewExpr(ctx)
	} else {
		callee, err = p.parsePrimaryExpr(ctx)
	}
	if err != nil {
		return nil, err
	}
	callee, err = p.parseMemberTail(ctx, callee, false)
	if err != nil {
		return nil, err
	}

	n := &Node{Kind: KindNew, Token: &newTok, Children: []*Node{callee}}
	if p.peekIs(TokenLParen) {
		args, err := p.parseArguments(ctx)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, args...)
	}
	return p.finish(n, start), nil
}

// parseMemberTail applies property accesses, and calls when allowCall is
// set, to expr.
func (p *Parser) parseMemberTail(ctx Context, expr *Node, allowCall bool) (*Node, error) {
	for {
		tok, ok := p.cursor.Peek(0)
		if !ok {
			return expr, nil
		}
		var err error
		switch tok.Kind {
		case TokenDot:
			p.cursor.Next()
			expr, err = p.parseMemberName(expr, 0)
		case TokenOptionalChain:
			if !allowCall {
				return expr, nil
			}
			p.cursor.Next()
			switch {
			case p.peekIs(TokenLParen):
				expr, err = p.parseCall(ctx, expr, FlagOptional)
			case p.peekIs(TokenLBracket):
				expr, err = p.parseIndex(ctx, expr, FlagOptional)
			default:
				expr, err = p.parseMemberName(expr, FlagOptional)
			}
		case TokenLBracket:
			expr, err = p.parseIndex(ctx, expr, 0)
		case TokenLParen:
			if !allowCall {
				return expr, nil
			}
			expr, err = p.parseCall(ctx, expr, 0)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseMemberName(object *Node, flags NodeFlags) (*Node, error) {
	tok, ok := p.cursor.Next()
	if !ok {
		return nil, abruptEndError(tok.Pos(), "member expression")
	}
	if !isIdentifierName(tok) {
		return nil, p.expected(tok, "member expression", "identifier")
	}
	return &Node{
		Kind:     KindMember,
		Token:    &tok,
		Sym:      p.symbol(tok),
		Flags:    flags,
		Span:     Span{Start: object.Span.Start, End: tok.Span.End},
		Children: []*Node{object},
	}, nil
}

func (p *Parser) parseIndex(ctx Context, object *Node, flags NodeFlags) (*Node, error) {
	if _, err := p.cursor.Expect(TokenLBracket, "member expression"); err != nil {
		return nil, err
	}
	property, err := p.parseExpression(ctx.WithIn(true))
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.Expect(TokenRBracket, "member expression"); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindIndex, Flags: flags, Children: []*Node{object, property}}
	return p.finish(n, object.Span.Start), nil
}

func (p *Parser) parseCall(ctx Context, callee *Node, flags NodeFlags) (*Node, error) {
	args, err := p.parseArguments(ctx)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindCall, Flags: flags, Children: append([]*Node{callee}, args...)}
	return p.finish(n, callee.Span.Start), nil
}

// Arguments: `(` (AssignmentExpression | `...` AssignmentExpression),* `)`
func (p *Parser) parseArguments(ctx Context) ([]*Node, error) {
	if _, err := p.cursor.Expect(TokenLParen, "arguments"); err != nil {
		return nil, err
	}
	var args []*Node
	for {
		if p.accept(TokenRParen) {
			return args, nil
		}
		arg, err := p.parseSpreadOrAssignment(ctx.WithIn(true))
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok, ok := p.cursor.Next()
		if !ok {
			return nil, abruptEndError(tok.Pos(), "arguments")
		}
		switch tok.Kind {
		case TokenComma:
		case TokenRParen:
			return args, nil
		default:
			return nil, p.expected(tok, "arguments", ",", ")")
		}
	}
}

func (p *Parser) parseSpreadOrAssignment(ctx Context) (*Node, error) {
	start := p.startPos()
	if !p.accept(TokenEllipsis) {
		return p.parseAssignmentExpr(ctx)
	}
	arg, err := p.parseAssignmentExpr(ctx)
	if err != nil {
		return nil, err
	}
	return p.finish(&Node{Kind: KindSpread, Children: []*Node{arg}}, start), nil
}
