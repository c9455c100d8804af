package main

import (
	"fmt"

	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/dhamidi/esparse/format"
	"github.com/spf13/cobra"
)

func newTokensCmd(opts *globalOptions) *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a script with positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			lexer := parser.NewLexer(data, name, nil)
			var tokens []parser.Token
			failed := false
			for {
				tok := lexer.NextToken()
				if tok.Kind == parser.TokenError {
					failed = true
				}
				if trivia || !isTrivia(tok.Kind) {
					tokens = append(tokens, tok)
				}
				if tok.Kind == parser.TokenEOF {
					break
				}
			}

			if err := format.NewTokenEncoder(cmd.OutOrStdout()).Encode(tokens); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			if failed {
				return fmt.Errorf("%s: invalid tokens", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace, comments and line terminators")

	return cmd
}

func isTrivia(kind parser.TokenKind) bool {
	switch kind {
	case parser.TokenWhitespace, parser.TokenComment, parser.TokenLineComment, parser.TokenLineTerminator:
		return true
	}
	return false
}
