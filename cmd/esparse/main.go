package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/esparse/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("esparse.cli")

// globalOptions holds the persistent flags and the configuration they
// select. cfg is set before any subcommand runs.
type globalOptions struct {
	configPath string
	verbose    int
	logFile    string
	noColor    bool

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "esparse",
		Short:         "An ECMAScript parser",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: nearest .esparse.toml or .esparse.yaml)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

func (o *globalOptions) setup() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.Resolve(o.configPath, cwd)
	if err != nil {
		return err
	}
	o.cfg = cfg

	logFile := cfg.Log.File
	if o.logFile != "" {
		logFile = o.logFile
	}
	var logPath *string
	if logFile != "" {
		logPath = &logFile
	}
	commonlog.Configure(cfg.Log.Verbosity+o.verbose, logPath)

	if cfg.Path != "" {
		log.Debugf("using configuration %s", cfg.Path)
	}
	return nil
}

// useColor reports whether diagnostics should be colored: the configuration
// and flags allow it and the output is a terminal.
func (o *globalOptions) useColor() bool {
	return o.cfg.Color && !o.noColor && !color.NoColor
}
