package parser

import (
	"strings"

	"github.com/dhamidi/esparse/ecma/interner"
)

type NodeKind int

const (
	KindError NodeKind = iota

	KindScript

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindVarDecl
	KindLetDecl
	KindConstDecl
	KindDeclarator
	KindIfStmt
	KindWhileStmt
	KindDoWhileStmt
	KindForStmt
	KindForInStmt
	KindForOfStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindSwitchStmt
	KindSwitchCase
	KindSwitchDefault
	KindTryStmt
	KindCatchClause
	KindFinallyClause
	KindLabeledStmt
	KindDebuggerStmt

	// Functions
	KindFunctionDecl
	KindFunctionExpr
	KindArrowFunction
	KindParameters
	KindParameter
	KindRestParameter

	// Expressions
	KindSequence
	KindAssign
	KindConditional
	KindBinaryOp
	KindUnaryOp
	KindUpdate
	KindAwait
	KindYield
	KindNew
	KindCall
	KindMember
	KindIndex
	KindSpread
	KindArrayLiteral
	KindElision
	KindObjectLiteral
	KindProperty
	KindIdentifier
	KindThis
	KindNumericLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral

	// A placeholder for an omitted optional part, e.g. a missing for-statement
	// test.
	KindOmitted
)

var nodeKindNames = map[NodeKind]string{
	KindError:          "Error",
	KindScript:         "Script",
	KindBlock:          "Block",
	KindEmptyStmt:      "EmptyStmt",
	KindExprStmt:       "ExprStmt",
	KindVarDecl:        "VarDecl",
	KindLetDecl:        "LetDecl",
	KindConstDecl:      "ConstDecl",
	KindDeclarator:     "Declarator",
	KindIfStmt:         "IfStmt",
	KindWhileStmt:      "WhileStmt",
	KindDoWhileStmt:    "DoWhileStmt",
	KindForStmt:        "ForStmt",
	KindForInStmt:      "ForInStmt",
	KindForOfStmt:      "ForOfStmt",
	KindReturnStmt:     "ReturnStmt",
	KindBreakStmt:      "BreakStmt",
	KindContinueStmt:   "ContinueStmt",
	KindThrowStmt:      "ThrowStmt",
	KindSwitchStmt:     "SwitchStmt",
	KindSwitchCase:     "SwitchCase",
	KindSwitchDefault:  "SwitchDefault",
	KindTryStmt:        "TryStmt",
	KindCatchClause:    "CatchClause",
	KindFinallyClause:  "FinallyClause",
	KindLabeledStmt:    "LabeledStmt",
	KindDebuggerStmt:   "DebuggerStmt",
	KindFunctionDecl:   "FunctionDecl",
	KindFunctionExpr:   "FunctionExpr",
	KindArrowFunction:  "ArrowFunction",
	KindParameters:     "Parameters",
	KindParameter:      "Parameter",
	KindRestParameter:  "RestParameter",
	KindSequence:       "Sequence",
	KindAssign:         "Assign",
	KindConditional:    "Conditional",
	KindBinaryOp:       "BinaryOp",
	KindUnaryOp:        "UnaryOp",
	KindUpdate:         "Update",
	KindAwait:          "Await",
	KindYield:          "Yield",
	KindNew:            "New",
	KindCall:           "Call",
	KindMember:         "Member",
	KindIndex:          "Index",
	KindSpread:         "Spread",
	KindArrayLiteral:   "ArrayLiteral",
	KindElision:        "Elision",
	KindObjectLiteral:  "ObjectLiteral",
	KindProperty:       "Property",
	KindIdentifier:     "Identifier",
	KindThis:           "This",
	KindNumericLiteral: "NumericLiteral",
	KindStringLiteral:  "StringLiteral",
	KindBooleanLiteral: "BooleanLiteral",
	KindNullLiteral:    "NullLiteral",
	KindOmitted:        "Omitted",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k NodeKind) IsDeclaration() bool {
	switch k {
	case KindVarDecl, KindLetDecl, KindConstDecl, KindFunctionDecl:
		return true
	}
	return false
}

type NodeFlags uint16

const (
	FlagPrefix NodeFlags = 1 << iota
	FlagGenerator
	FlagAsync
	FlagDelegate
	FlagOptional
	FlagComputed
	FlagShorthand
	FlagMethod
	FlagGetter
	FlagSetter
	FlagParenthesized
)

var flagNames = []struct {
	flag NodeFlags
	name string
}{
	{FlagPrefix, "prefix"},
	{FlagGenerator, "generator"},
	{FlagAsync, "async"},
	{FlagDelegate, "delegate"},
	{FlagOptional, "optional"},
	{FlagComputed, "computed"},
	{FlagShorthand, "shorthand"},
	{FlagMethod, "method"},
	{FlagGetter, "get"},
	{FlagSetter, "set"},
	{FlagParenthesized, "paren"},
}

func (f NodeFlags) Has(flag NodeFlags) bool {
	return f&flag != 0
}

func (f NodeFlags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// Node is a syntax tree node. The meaning of Children depends on Kind:
//
//	BinaryOp, Assign      left, right
//	UnaryOp, Update       operand
//	Conditional           test, consequent, alternate
//	VarDecl, LetDecl,
//	ConstDecl             one Declarator per declared name
//	Declarator            optional initializer; the name is in Token and Sym
//	Call, New             callee, arguments...
//	Member                object; the property name is in Token
//	Index                 object, property
//	ForStmt               init, test, update, body (Omitted for missing parts)
//	ForInStmt, ForOfStmt  left, right, body
//	FunctionDecl/Expr     Parameters, Block; the name is in Token
//	ArrowFunction         Parameters, body
//	Property              key, value
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Op       Op
	Sym      interner.Sym
	Flags    NodeFlags
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) child(i int) *Node {
	if i < len(n.Children) {
		return n.Children[i]
	}
	return nil
}

func (n *Node) Left() *Node {
	return n.child(0)
}

func (n *Node) Right() *Node {
	return n.child(1)
}

// Init returns the initializer of a Declarator, or nil.
func (n *Node) Init() *Node {
	if n.Kind != KindDeclarator {
		return nil
	}
	return n.child(0)
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Walk calls fn for n and its descendants in depth-first order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

// namedKinds print their token text in tree dumps.
var namedKinds = map[NodeKind]bool{
	KindIdentifier:     true,
	KindNumericLiteral: true,
	KindStringLiteral:  true,
	KindBooleanLiteral: true,
	KindDeclarator:     true,
	KindMember:         true,
	KindFunctionDecl:   true,
	KindFunctionExpr:   true,
	KindLabeledStmt:    true,
	KindBreakStmt:      true,
	KindContinueStmt:   true,
}

func (n *Node) label() string {
	parts := []string{n.Kind.String()}
	if n.Op != OpNone {
		parts = append(parts, n.Op.String())
	}
	if n.Token != nil && namedKinds[n.Kind] {
		parts = append(parts, n.Token.Literal)
	}
	parts = append(parts, n.Flags.Names()...)
	return strings.Join(parts, " ")
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.label())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}

// Compact renders the tree on one line, e.g.
// (BinaryOp ** (Identifier a) (Identifier b)).
func (n *Node) Compact() string {
	var b strings.Builder
	n.writeCompact(&b)
	return b.String()
}

func (n *Node) writeCompact(b *strings.Builder) {
	b.WriteString("(")
	b.WriteString(n.label())
	for _, child := range n.Children {
		b.WriteString(" ")
		child.writeCompact(b)
	}
	b.WriteString(")")
}

func spanBetween(first, last *Node) Span {
	return Span{Start: first.Span.Start, End: last.Span.End}
}
