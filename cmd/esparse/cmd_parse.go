package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/esparse/config"
	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/dhamidi/esparse/format"
	"github.com/spf13/cobra"
)

// errReported is returned after a command has already printed its failure.
var errReported = errors.New("reported")

func newParseCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string
	var module bool
	var includeComments bool
	var positions bool
	var expression bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a script and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg := *opts.cfg
			if module {
				cfg.Goal = config.GoalModule
			}
			if includeComments {
				cfg.Comments = true
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = cfg.Output
			}

			popts := append(cfg.ParserOptions(), parser.WithFile(name))
			var p *parser.Parser
			if expression {
				p = parser.ParseExpression(bytes.NewReader(data), popts...)
			} else {
				p = parser.ParseScript(bytes.NewReader(data), popts...)
			}
			node, perr := p.Finish()

			out := cmd.OutOrStdout()
			if perr != nil {
				if outputFormat == format.FormatJSON {
					if err := format.NewASTJSONEncoder(out, nil).EncodeError(perr); err != nil {
						return fmt.Errorf("encode json: %w", err)
					}
					fmt.Fprintln(out)
				}
				renderer := format.NewDiagnosticRenderer(cmd.ErrOrStderr(), opts.useColor())
				if err := renderer.Render(name, data, perr); err != nil {
					return err
				}
				return errReported
			}

			var encoder format.Encoder
			if outputFormat == format.FormatTree && positions {
				encoder = format.NewTreeEncoder(out, true)
			} else {
				encoder, err = format.NewEncoder(outputFormat, out, p.Interner())
				if err != nil {
					return err
				}
			}
			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == format.FormatJSON {
				fmt.Fprintln(out)
			}

			if includeComments {
				if err := format.NewTokenEncoder(out).Encode(p.Comments()); err != nil {
					return fmt.Errorf("encode comments: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", format.FormatJSON, "output format (json, tree, compact)")
	cmd.Flags().BoolVar(&module, "module", false, "parse with the module goal (top-level await)")
	cmd.Flags().BoolVar(&includeComments, "comments", false, "print the comments after the tree")
	cmd.Flags().BoolVar(&positions, "positions", false, "include source spans in tree output")
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "parse a single expression instead of a script")

	return cmd
}

// readInput reads the named file, or stdin for "-".
func readInput(arg string, stdin io.Reader) (string, []byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return arg, data, nil
}
