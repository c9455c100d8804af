package grammar

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dhamidi/esparse/ecma/parser"
	"golang.org/x/exp/ebnf"
)

// InputElement is the lexical production whose alternatives the Scanner
// tries at every position.
const InputElement = "input_element"

// Lexeme is a run of input matched by one lexical production.
type Lexeme struct {
	Kind    string
	Literal string
	Pos     parser.Position
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%s %s %q", l.Pos, l.Kind, l.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Scanner splits input into lexemes using the lexical productions of a
// grammar. At each position the longest match among the alternatives of
// input_element wins; on a tie the earlier alternative wins.
type Scanner struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	file     string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int // match length, -1 for no match
	visiting map[memoKey]bool
}

// NewScanner returns a scanner over input. It fails when the grammar does not
// define input_element as a list of production names.
func NewScanner(g ebnf.Grammar, input []byte, file string) (*Scanner, error) {
	kinds, err := inputElementKinds(g)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		grammar:  g,
		kinds:    kinds,
		input:    input,
		file:     file,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}, nil
}

func inputElementKinds(g ebnf.Grammar) ([]string, error) {
	prod, ok := g[InputElement]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("grammar has no %s production", InputElement)
	}
	var alts ebnf.Alternative
	switch e := prod.Expr.(type) {
	case ebnf.Alternative:
		alts = e
	default:
		alts = ebnf.Alternative{e}
	}
	kinds := make([]string, 0, len(alts))
	for _, alt := range alts {
		name, ok := alt.(*ebnf.Name)
		if !ok {
			return nil, fmt.Errorf("%s: alternatives must be production names", InputElement)
		}
		kinds = append(kinds, name.String)
	}
	return kinds, nil
}

func (s *Scanner) Position() parser.Position {
	return parser.Position{
		File:   s.file,
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

func (s *Scanner) advance() {
	if s.pos >= len(s.input) {
		return
	}
	ch := s.input[s.pos]
	s.pos++
	switch {
	case ch == '\n':
		s.line++
		s.column = 1
	case ch == '\r' && (s.pos >= len(s.input) || s.input[s.pos] != '\n'):
		s.line++
		s.column = 1
	default:
		s.column++
	}
}

// Next returns the next lexeme, or io.EOF at the end of input. Input that no
// production matches comes back one byte at a time with Kind "error".
func (s *Scanner) Next() (Lexeme, error) {
	if s.pos >= len(s.input) {
		return Lexeme{Kind: "EOF", Pos: s.Position()}, io.EOF
	}

	start := s.Position()
	// Match lengths are only valid for one starting offset.
	s.memo = make(map[memoKey]int)

	bestKind := ""
	bestLen := 0
	for _, kind := range s.kinds {
		s.visiting = make(map[memoKey]bool)
		if n := s.matchName(kind, s.pos); n > bestLen {
			bestLen = n
			bestKind = kind
		}
	}

	if bestLen == 0 {
		bestKind = "error"
		bestLen = 1
	}
	literal := string(s.input[s.pos : s.pos+bestLen])
	for i := 0; i < bestLen; i++ {
		s.advance()
	}
	return Lexeme{Kind: bestKind, Literal: literal, Pos: start}, nil
}

// All scans the rest of the input. The final lexeme has Kind "EOF".
func (s *Scanner) All() []Lexeme {
	var lexemes []Lexeme
	for {
		lx, err := s.Next()
		lexemes = append(lexemes, lx)
		if err == io.EOF {
			return lexemes
		}
	}
}

// match returns the length of the longest prefix of the input at offset
// that expr matches greedily, 0 for no match.
func (s *Scanner) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return s.matchToken(e.String, offset)

	case *ebnf.Range:
		return s.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := s.match(item, offset+total)
			if n == 0 && !nullable(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := s.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := s.match(e.Body, offset+total)
			if n == 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return s.match(e.Body, offset)

	case *ebnf.Group:
		return s.match(e.Body, offset)

	case *ebnf.Name:
		return s.matchName(e.String, offset)
	}
	return 0
}

// nullable reports whether a zero-length match of expr is a success.
func nullable(expr ebnf.Expression) bool {
	switch expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	}
	return false
}

func (s *Scanner) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := s.memo[key]; ok {
		if n < 0 {
			return 0
		}
		return n
	}
	// Left recursion at the same offset matches nothing.
	if s.visiting[key] {
		return 0
	}

	prod, ok := s.grammar[name]
	if !ok || prod.Expr == nil {
		s.memo[key] = -1
		return 0
	}

	s.visiting[key] = true
	n := s.match(prod.Expr, offset)
	delete(s.visiting, key)

	if n == 0 {
		s.memo[key] = -1
	} else {
		s.memo[key] = n
	}
	return n
}

func (s *Scanner) matchToken(token string, offset int) int {
	if offset+len(token) > len(s.input) {
		return 0
	}
	if string(s.input[offset:offset+len(token)]) == token {
		return len(token)
	}
	return 0
}

func (s *Scanner) matchRange(begin, end string, offset int) int {
	if offset >= len(s.input) {
		return 0
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(s.input[offset:])
	if r >= lo && r <= hi {
		return size
	}
	return 0
}
