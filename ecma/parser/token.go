package parser

import (
	"fmt"

	"github.com/dhamidi/esparse/ecma/interner"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenLineTerminator

	// Literals
	TokenIdent
	TokenNumber
	TokenString

	keywordStart
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenEnum
	TokenExport
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImport
	TokenIn
	TokenInstanceof
	TokenNew
	TokenNull
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeof
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith

	// Contextual keywords; the parser treats them as identifiers where the
	// grammar allows it.
	TokenAwait
	TokenLet
	TokenYield
	keywordEnd

	punctuatorStart
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenDot
	TokenEllipsis
	TokenSemicolon
	TokenComma
	TokenLT
	TokenGT
	TokenLE
	TokenGE
	TokenEq
	TokenNotEq
	TokenStrictEq
	TokenStrictNotEq
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenExp
	TokenIncrement
	TokenDecrement
	TokenShl
	TokenShr
	TokenUShr
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenNot
	TokenBitNot
	TokenAnd
	TokenOr
	TokenCoalesce
	TokenQuestion
	TokenOptionalChain
	TokenColon
	TokenArrow
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenExpAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenLogicalAndAssign
	TokenLogicalOrAssign
	TokenCoalesceAssign
	punctuatorEnd
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:              "end of input",
	TokenError:            "invalid token",
	TokenWhitespace:       "whitespace",
	TokenComment:          "comment",
	TokenLineComment:      "line comment",
	TokenLineTerminator:   "line terminator",
	TokenIdent:            "identifier",
	TokenNumber:           "numeric literal",
	TokenString:           "string literal",
	TokenBreak:            "break",
	TokenCase:             "case",
	TokenCatch:            "catch",
	TokenClass:            "class",
	TokenConst:            "const",
	TokenContinue:         "continue",
	TokenDebugger:         "debugger",
	TokenDefault:          "default",
	TokenDelete:           "delete",
	TokenDo:               "do",
	TokenElse:             "else",
	TokenEnum:             "enum",
	TokenExport:           "export",
	TokenExtends:          "extends",
	TokenFalse:            "false",
	TokenFinally:          "finally",
	TokenFor:              "for",
	TokenFunction:         "function",
	TokenIf:               "if",
	TokenImport:           "import",
	TokenIn:               "in",
	TokenInstanceof:       "instanceof",
	TokenNew:              "new",
	TokenNull:             "null",
	TokenReturn:           "return",
	TokenSuper:            "super",
	TokenSwitch:           "switch",
	TokenThis:             "this",
	TokenThrow:            "throw",
	TokenTrue:             "true",
	TokenTry:              "try",
	TokenTypeof:           "typeof",
	TokenVar:              "var",
	TokenVoid:             "void",
	TokenWhile:            "while",
	TokenWith:             "with",
	TokenAwait:            "await",
	TokenLet:              "let",
	TokenYield:            "yield",
	TokenLBrace:           "{",
	TokenRBrace:           "}",
	TokenLParen:           "(",
	TokenRParen:           ")",
	TokenLBracket:         "[",
	TokenRBracket:         "]",
	TokenDot:              ".",
	TokenEllipsis:         "...",
	TokenSemicolon:        ";",
	TokenComma:            ",",
	TokenLT:               "<",
	TokenGT:               ">",
	TokenLE:               "<=",
	TokenGE:               ">=",
	TokenEq:               "==",
	TokenNotEq:            "!=",
	TokenStrictEq:         "===",
	TokenStrictNotEq:      "!==",
	TokenPlus:             "+",
	TokenMinus:            "-",
	TokenStar:             "*",
	TokenSlash:            "/",
	TokenPercent:          "%",
	TokenExp:              "**",
	TokenIncrement:        "++",
	TokenDecrement:        "--",
	TokenShl:              "<<",
	TokenShr:              ">>",
	TokenUShr:             ">>>",
	TokenBitAnd:           "&",
	TokenBitOr:            "|",
	TokenBitXor:           "^",
	TokenNot:              "!",
	TokenBitNot:           "~",
	TokenAnd:              "&&",
	TokenOr:               "||",
	TokenCoalesce:         "??",
	TokenQuestion:         "?",
	TokenOptionalChain:    "?.",
	TokenColon:            ":",
	TokenArrow:            "=>",
	TokenAssign:           "=",
	TokenPlusAssign:       "+=",
	TokenMinusAssign:      "-=",
	TokenStarAssign:       "*=",
	TokenSlashAssign:      "/=",
	TokenPercentAssign:    "%=",
	TokenExpAssign:        "**=",
	TokenShlAssign:        "<<=",
	TokenShrAssign:        ">>=",
	TokenUShrAssign:       ">>>=",
	TokenAndAssign:        "&=",
	TokenOrAssign:         "|=",
	TokenXorAssign:        "^=",
	TokenLogicalAndAssign: "&&=",
	TokenLogicalOrAssign:  "||=",
	TokenCoalesceAssign:   "??=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k TokenKind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

func (k TokenKind) IsPunctuator() bool {
	return k > punctuatorStart && k < punctuatorEnd
}

func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokenNumber, TokenString, TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return false
}

// Token is an immutable lexical token. Identifier tokens carry the interned
// name in Sym; Literal always holds the source text.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Sym     interner.Sym
}

func (t Token) Pos() Position {
	return t.Span.Start
}

// Display renders the token for diagnostics. Identifiers are resolved through
// in when it is non-nil.
func (t Token) Display(in *interner.Interner) string {
	switch t.Kind {
	case TokenEOF, TokenLineTerminator:
		return t.Kind.String()
	case TokenIdent:
		if in != nil && !t.Sym.IsNone() {
			return in.Resolve(t.Sym)
		}
	}
	if t.Literal != "" {
		return t.Literal
	}
	return t.Kind.String()
}

var keywords = map[string]TokenKind{
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"enum":       TokenEnum,
	"export":     TokenExport,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"await":      TokenAwait,
	"let":        TokenLet,
	"yield":      TokenYield,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
