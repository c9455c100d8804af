// Package grammar ships the EBNF description of the language esparse parses.
//
// The grammar is written in the notation of golang.org/x/exp/ebnf and
// embedded in the binary. Its lexical productions drive a Scanner and its
// syntactic productions drive an Earley Recognizer, which give a second,
// table-free opinion on inputs the hand-written parser handles.
package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"golang.org/x/exp/ebnf"
)

//go:embed ecmascript.ebnf
var source []byte

const (
	// Start is the root of the whole grammar, covering both the token and
	// the character level.
	Start = "SourceText"

	// ScriptStart is the root of the syntactic grammar.
	ScriptStart = "Script"

	// Filename names the embedded grammar in error positions.
	Filename = "ecmascript.ebnf"
)

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Default parses the embedded grammar.
func Default() (ebnf.Grammar, error) {
	return Parse(Filename, bytes.NewReader(source))
}

// Parse reads a grammar in x/exp/ebnf notation.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Load reads a grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Parse(filename, f)
}

// Verify checks that every production used is defined, that every
// production is reachable from start and that lexical productions only refer
// to lexical productions.
func Verify(g ebnf.Grammar, start string) error {
	return ebnf.Verify(g, start)
}

// Errors splits an error returned by Parse or Verify into the individual
// problems it reports. x/exp/ebnf collects them in an unexported slice type.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		v := reflect.ValueOf(unwrapped)
		if v.Kind() != reflect.Slice {
			continue
		}
		errs := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if e, ok := v.Index(i).Interface().(error); ok {
				errs = append(errs, e)
			}
		}
		return errs
	}
	return []error{err}
}

// isLexical mirrors x/exp/ebnf: lexical production names start with a
// lower-case letter.
func isLexical(name string) bool {
	return name != "" && !(name[0] >= 'A' && name[0] <= 'Z')
}
