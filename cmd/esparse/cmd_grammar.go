package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/esparse/ecma/grammar"
	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the EBNF grammar the parser implements",
	}

	cmd.PersistentFlags().StringVar(&grammarFile, "file", "", "grammar file to use instead of the built-in grammar")

	load := func() (ebnf.Grammar, error) {
		if grammarFile == "" {
			return grammar.Default()
		}
		return grammar.Load(grammarFile)
	}

	cmd.AddCommand(newGrammarCheckCmd(load))
	cmd.AddCommand(newGrammarScanCmd(load))
	cmd.AddCommand(newGrammarRecognizeCmd(load))
	cmd.AddCommand(newGrammarPrintCmd())

	return cmd
}

func newGrammarCheckCmd(load func() (ebnf.Grammar, error)) *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse and verify the grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := load()
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errReported
			}

			if startProduction == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%d productions parsed\n", len(g))
				return nil
			}
			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errReported
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d productions verified from %s\n", len(g), startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarScanCmd(load func() (ebnf.Grammar, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file|->",
		Short: "Split a file into lexemes using the grammar's lexical productions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := load()
			if err != nil {
				return err
			}
			name, data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			s, err := grammar.NewScanner(g, data, name)
			if err != nil {
				return err
			}
			failed := 0
			for _, lx := range s.All() {
				if lx.Kind == "error" {
					failed++
				}
				fmt.Fprintln(cmd.OutOrStdout(), lx)
			}
			if failed > 0 {
				return fmt.Errorf("%s: %d characters match no lexical production", name, failed)
			}
			return nil
		},
	}
}

func newGrammarRecognizeCmd(load func() (ebnf.Grammar, error)) *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "recognize <file|->",
		Short: "Check that the grammar derives a file, independently of the parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := load()
			if err != nil {
				return err
			}
			name, data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			lexer := parser.NewLexer(data, name, nil)
			var tokens []parser.Token
			for {
				tok := lexer.NextToken()
				tokens = append(tokens, tok)
				if tok.Kind == parser.TokenEOF {
					break
				}
			}

			if err := grammar.NewRecognizer(g).Recognize(startProduction, tokens); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: derived from %s\n", name, startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.ScriptStart, "production the input must derive")

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

func printErrors(w io.Writer, err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Fprintln(w, e)
	}
}
