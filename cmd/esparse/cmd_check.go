package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dhamidi/esparse/format"
	"github.com/dhamidi/esparse/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse every script under the given paths and report syntax errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			ws := workspace.New(".", opts.cfg)
			renderer := format.NewDiagnosticRenderer(cmd.ErrOrStderr(), opts.useColor())

			if watch {
				return watchPaths(cmd.Context(), ws, renderer, cmd.OutOrStdout(), args)
			}

			files, err := ws.Collect(args...)
			if err != nil {
				return err
			}
			if err := ws.ScanFiles(cmd.Context(), files); err != nil {
				return err
			}

			failed := ws.Failed()
			for _, doc := range failed {
				if err := renderer.Render(doc.Path, doc.Content, doc.Err); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d files checked, %d with errors\n", len(files), len(failed))
			if len(failed) > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check files when they change")

	return cmd
}

// watchPaths reports every change until interrupted.
func watchPaths(ctx context.Context, ws *workspace.Workspace, renderer *format.DiagnosticRenderer, out io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher := workspace.NewFileWatcher(ws, func(change workspace.Change) {
		if err := reportChange(renderer, out, change); err != nil {
			log.Warningf("report change: %s", err)
		}
	}, paths...)
	watcher.Start()
	log.Infof("watching %v", paths)

	<-ctx.Done()
	watcher.Stop()
	return nil
}

// reportChange prints a diagnostic for every updated file that failed to
// parse and a line for every other update and removal.
func reportChange(renderer *format.DiagnosticRenderer, out io.Writer, change workspace.Change) error {
	var errs []error
	for _, doc := range change.Updated {
		if doc.Err != nil {
			if err := renderer.Render(doc.Path, doc.Content, doc.Err); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		fmt.Fprintf(out, "ok %s\n", doc.Path)
	}
	for _, path := range change.Removed {
		fmt.Fprintf(out, "removed %s\n", path)
	}
	return errors.Join(errs...)
}
