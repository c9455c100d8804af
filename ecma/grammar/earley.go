package grammar

import (
	"fmt"

	"github.com/dhamidi/esparse/ecma/parser"
	"golang.org/x/exp/ebnf"
)

// symbol is one element on the right-hand side of a rule. Lexical production
// names and literal tokens are terminals; everything else names a rule.
type symbol struct {
	name     string
	terminal bool
	literal  bool
}

type rule struct {
	lhs string
	rhs []symbol
}

// item is an Earley item: a rule, how much of it has been recognized, and
// the chart position where it started.
type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Recognizer decides whether a token sequence derives from a production of
// the syntactic grammar. EBNF options, repetitions and groups are rewritten
// into plain rules over generated nonterminals.
//
// Line terminators that are not skipped may stand between any two tokens.
// Where the grammar names line_terminator one is consumed instead, so a
// statement without ";" still needs a line break after it.
type Recognizer struct {
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
	skip     map[parser.TokenKind]bool
	fresh    int
}

// NewRecognizer compiles the syntactic productions of g.
func NewRecognizer(g ebnf.Grammar) *Recognizer {
	r := &Recognizer{
		byLHS: make(map[string][]int),
		skip:  map[parser.TokenKind]bool{parser.TokenWhitespace: true, parser.TokenComment: true, parser.TokenLineComment: true},
	}
	for name, prod := range g {
		if isLexical(name) || prod.Expr == nil {
			continue
		}
		for _, alt := range r.alternatives(name, prod.Expr) {
			r.addRule(name, alt)
		}
	}
	r.computeNullable()
	return r
}

// SetSkipKinds replaces the token kinds dropped before recognition.
func (r *Recognizer) SetSkipKinds(kinds ...parser.TokenKind) {
	r.skip = make(map[parser.TokenKind]bool)
	for _, k := range kinds {
		r.skip[k] = true
	}
}

func (r *Recognizer) addRule(lhs string, rhs []symbol) {
	r.rules = append(r.rules, rule{lhs: lhs, rhs: rhs})
	r.byLHS[lhs] = append(r.byLHS[lhs], len(r.rules)-1)
}

func (r *Recognizer) newName(owner string) string {
	r.fresh++
	return fmt.Sprintf("%s#%d", owner, r.fresh)
}

// alternatives flattens expr into the right-hand sides of rules for owner.
func (r *Recognizer) alternatives(owner string, expr ebnf.Expression) [][]symbol {
	if alts, ok := expr.(ebnf.Alternative); ok {
		out := make([][]symbol, 0, len(alts))
		for _, alt := range alts {
			out = append(out, r.sequence(owner, alt))
		}
		return out
	}
	return [][]symbol{r.sequence(owner, expr)}
}

func (r *Recognizer) sequence(owner string, expr ebnf.Expression) []symbol {
	switch e := expr.(type) {
	case nil:
		return nil
	case ebnf.Sequence:
		var out []symbol
		for _, part := range e {
			out = append(out, r.sequence(owner, part)...)
		}
		return out
	case *ebnf.Name:
		return []symbol{{name: e.String, terminal: isLexical(e.String)}}
	case *ebnf.Token:
		return []symbol{{name: e.String, terminal: true, literal: true}}
	case *ebnf.Group:
		name := r.newName(owner)
		for _, alt := range r.alternatives(owner, e.Body) {
			r.addRule(name, alt)
		}
		return []symbol{{name: name}}
	case *ebnf.Option:
		name := r.newName(owner)
		r.addRule(name, nil)
		for _, alt := range r.alternatives(owner, e.Body) {
			r.addRule(name, alt)
		}
		return []symbol{{name: name}}
	case *ebnf.Repetition:
		// N = ε | N body.
		name := r.newName(owner)
		r.addRule(name, nil)
		for _, alt := range r.alternatives(owner, e.Body) {
			r.addRule(name, append([]symbol{{name: name}}, alt...))
		}
		return []symbol{{name: name}}
	case ebnf.Alternative:
		name := r.newName(owner)
		for _, alt := range r.alternatives(owner, e) {
			r.addRule(name, alt)
		}
		return []symbol{{name: name}}
	}
	// Ranges only occur in lexical productions.
	return nil
}

func (r *Recognizer) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, ru := range r.rules {
			if r.nullable[ru.lhs] {
				continue
			}
			empty := true
			for _, sym := range ru.rhs {
				if sym.terminal || !r.nullable[sym.name] {
					empty = false
					break
				}
			}
			if empty {
				r.nullable[ru.lhs] = true
				changed = true
			}
		}
	}
}

// Terminal returns the lexical production a token belongs to, or "" for
// keywords and punctuators, which the grammar spells out literally.
func Terminal(tok parser.Token) string {
	switch tok.Kind {
	case parser.TokenIdent:
		return "identifier"
	case parser.TokenNumber:
		return "numeric_literal"
	case parser.TokenString:
		return "string_literal"
	case parser.TokenLineTerminator:
		return "line_terminator"
	}
	return ""
}

func matches(sym symbol, tok parser.Token) bool {
	if sym.literal {
		return tok.Kind != parser.TokenString && tok.Literal == sym.name
	}
	return Terminal(tok) == sym.name
}

// Recognize reports whether tokens derive from start. A trailing TokenEOF is
// ignored. The error names the first token no derivation can consume.
func (r *Recognizer) Recognize(start string, tokens []parser.Token) error {
	if len(r.byLHS[start]) == 0 {
		return fmt.Errorf("production %q not found in grammar", start)
	}

	input := make([]parser.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == parser.TokenEOF || r.skip[tok.Kind] {
			continue
		}
		input = append(input, tok)
	}

	n := len(input)
	chart := make([]itemSet, n+1)
	for i := range chart {
		chart[i].seen = make(map[item]bool)
	}
	for _, ri := range r.byLHS[start] {
		chart[0].add(item{rule: ri})
	}

	for i := 0; i <= n; i++ {
		// Items are appended to chart[i] while it is processed.
		for j := 0; j < len(chart[i].items); j++ {
			it := chart[i].items[j]
			ru := r.rules[it.rule]

			if i < n && input[i].Kind == parser.TokenLineTerminator {
				chart[i+1].add(it)
			}

			if it.dot == len(ru.rhs) {
				r.complete(chart, i, it)
				continue
			}

			next := ru.rhs[it.dot]
			if next.terminal {
				if i < n && matches(next, input[i]) {
					chart[i+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}

			for _, ri := range r.byLHS[next.name] {
				chart[i].add(item{rule: ri, origin: i})
			}
			if r.nullable[next.name] {
				chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	for _, it := range chart[n].items {
		ru := r.rules[it.rule]
		if ru.lhs == start && it.origin == 0 && it.dot == len(ru.rhs) {
			return nil
		}
	}

	furthest := 0
	for i := n; i >= 0; i-- {
		if len(chart[i].items) > 0 {
			furthest = i
			break
		}
	}
	if furthest < n {
		tok := input[furthest]
		return fmt.Errorf("%s: %s does not derive %q", tok.Pos(), start, tok.Literal)
	}
	return fmt.Errorf("input ends before %s is complete", start)
}

func (r *Recognizer) complete(chart []itemSet, i int, done item) {
	lhs := r.rules[done.rule].lhs
	waiting := chart[done.origin].items
	for k := 0; k < len(waiting); k++ {
		it := waiting[k]
		ru := r.rules[it.rule]
		if it.dot < len(ru.rhs) && !ru.rhs[it.dot].terminal && ru.rhs[it.dot].name == lhs {
			chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
		// When done.origin == i, chart[i] grows as we go.
		waiting = chart[done.origin].items
	}
}
