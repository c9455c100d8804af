package parser

// Op identifies the operator of a binary, unary, update or assignment node.
type Op int

const (
	OpNone Op = iota

	// Numeric
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp

	// Bitwise
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpUShr

	// Comparison
	OpEq
	OpNotEq
	OpStrictEq
	OpStrictNotEq
	OpLT
	OpGT
	OpLE
	OpGE
	OpIn
	OpInstanceof

	// Logical
	OpAnd
	OpOr
	OpCoalesce

	// Unary
	OpPlus
	OpNeg
	OpNot
	OpBitNot
	OpTypeof
	OpVoid
	OpDelete

	// Update
	OpIncrement
	OpDecrement

	// Assignment
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpExpAssign
	OpShlAssign
	OpShrAssign
	OpUShrAssign
	OpBitAndAssign
	OpBitOrAssign
	OpBitXorAssign
	OpAndAssign
	OpOrAssign
	OpCoalesceAssign
)

type OpCategory int

const (
	CategoryNone OpCategory = iota
	CategoryNumeric
	CategoryBitwise
	CategoryComparison
	CategoryLogical
	CategoryUnary
	CategoryUpdate
	CategoryAssign
)

func (c OpCategory) String() string {
	switch c {
	case CategoryNumeric:
		return "numeric"
	case CategoryBitwise:
		return "bitwise"
	case CategoryComparison:
		return "comparison"
	case CategoryLogical:
		return "logical"
	case CategoryUnary:
		return "unary"
	case CategoryUpdate:
		return "update"
	case CategoryAssign:
		return "assign"
	}
	return "none"
}

var opSymbols = map[Op]string{
	OpAdd:            "+",
	OpSub:            "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpMod:            "%",
	OpExp:            "**",
	OpBitAnd:         "&",
	OpBitOr:          "|",
	OpBitXor:         "^",
	OpShl:            "<<",
	OpShr:            ">>",
	OpUShr:           ">>>",
	OpEq:             "==",
	OpNotEq:          "!=",
	OpStrictEq:       "===",
	OpStrictNotEq:    "!==",
	OpLT:             "<",
	OpGT:             ">",
	OpLE:             "<=",
	OpGE:             ">=",
	OpIn:             "in",
	OpInstanceof:     "instanceof",
	OpAnd:            "&&",
	OpOr:             "||",
	OpCoalesce:       "??",
	OpPlus:           "+",
	OpNeg:            "-",
	OpNot:            "!",
	OpBitNot:         "~",
	OpTypeof:         "typeof",
	OpVoid:           "void",
	OpDelete:         "delete",
	OpIncrement:      "++",
	OpDecrement:      "--",
	OpAssign:         "=",
	OpAddAssign:      "+=",
	OpSubAssign:      "-=",
	OpMulAssign:      "*=",
	OpDivAssign:      "/=",
	OpModAssign:      "%=",
	OpExpAssign:      "**=",
	OpShlAssign:      "<<=",
	OpShrAssign:      ">>=",
	OpUShrAssign:     ">>>=",
	OpBitAndAssign:   "&=",
	OpBitOrAssign:    "|=",
	OpBitXorAssign:   "^=",
	OpAndAssign:      "&&=",
	OpOrAssign:       "||=",
	OpCoalesceAssign: "??=",
}

func (op Op) String() string {
	if s, ok := opSymbols[op]; ok {
		return s
	}
	return ""
}

func (op Op) Category() OpCategory {
	switch {
	case op >= OpAdd && op <= OpExp:
		return CategoryNumeric
	case op >= OpBitAnd && op <= OpUShr:
		return CategoryBitwise
	case op >= OpEq && op <= OpInstanceof:
		return CategoryComparison
	case op >= OpAnd && op <= OpCoalesce:
		return CategoryLogical
	case op >= OpPlus && op <= OpDelete:
		return CategoryUnary
	case op >= OpIncrement && op <= OpDecrement:
		return CategoryUpdate
	case op >= OpAssign && op <= OpCoalesceAssign:
		return CategoryAssign
	}
	return CategoryNone
}

var binaryOps = map[TokenKind]Op{
	TokenPlus:        OpAdd,
	TokenMinus:       OpSub,
	TokenStar:        OpMul,
	TokenSlash:       OpDiv,
	TokenPercent:     OpMod,
	TokenExp:         OpExp,
	TokenBitAnd:      OpBitAnd,
	TokenBitOr:       OpBitOr,
	TokenBitXor:      OpBitXor,
	TokenShl:         OpShl,
	TokenShr:         OpShr,
	TokenUShr:        OpUShr,
	TokenEq:          OpEq,
	TokenNotEq:       OpNotEq,
	TokenStrictEq:    OpStrictEq,
	TokenStrictNotEq: OpStrictNotEq,
	TokenLT:          OpLT,
	TokenGT:          OpGT,
	TokenLE:          OpLE,
	TokenGE:          OpGE,
	TokenIn:          OpIn,
	TokenInstanceof:  OpInstanceof,
	TokenAnd:         OpAnd,
	TokenOr:          OpOr,
	TokenCoalesce:    OpCoalesce,
}

var unaryOps = map[TokenKind]Op{
	TokenPlus:   OpPlus,
	TokenMinus:  OpNeg,
	TokenNot:    OpNot,
	TokenBitNot: OpBitNot,
	TokenTypeof: OpTypeof,
	TokenVoid:   OpVoid,
	TokenDelete: OpDelete,
}

var updateOps = map[TokenKind]Op{
	TokenIncrement: OpIncrement,
	TokenDecrement: OpDecrement,
}

var assignOps = map[TokenKind]Op{
	TokenAssign:           OpAssign,
	TokenPlusAssign:       OpAddAssign,
	TokenMinusAssign:      OpSubAssign,
	TokenStarAssign:       OpMulAssign,
	TokenSlashAssign:      OpDivAssign,
	TokenPercentAssign:    OpModAssign,
	TokenExpAssign:        OpExpAssign,
	TokenShlAssign:        OpShlAssign,
	TokenShrAssign:        OpShrAssign,
	TokenUShrAssign:       OpUShrAssign,
	TokenAndAssign:        OpBitAndAssign,
	TokenOrAssign:         OpBitOrAssign,
	TokenXorAssign:        OpBitXorAssign,
	TokenLogicalAndAssign: OpAndAssign,
	TokenLogicalOrAssign:  OpOrAssign,
	TokenCoalesceAssign:   OpCoalesceAssign,
}
