package main

import (
	"github.com/dhamidi/esparse/config"
	"github.com/dhamidi/esparse/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without --config the server looks for a configuration from
			// the client's root directory instead of the working directory.
			var cfg *config.Config
			if opts.configPath != "" {
				cfg = opts.cfg
			}
			server := workspace.NewLSPServer(version, cfg)
			return server.RunStdio()
		},
	}
}
