package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mxkacsa/botgen/internal/watch"
	"github.com/mxkacsa/botgen/logger"
)

func newWatchCmd(a *app) *cobra.Command {
	f := &genFlags{}
	cmd := &cobra.Command{
		Use:   "watch <graph>",
		Short: "Regenerate the program whenever the graph file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rebuild := func(context.Context) error {
				if _, err := a.build(cmd, args[0], f); err != nil {
					printError(err)
				}
				return nil
			}
			// The first build runs right away; later ones on change.
			_ = rebuild(ctx)

			w, err := watch.New(args[0], 0, rebuild, logger.Base().Named("watch"))
			if err != nil {
				return err
			}
			pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", args[0])
			return w.Run(ctx)
		},
	}
	f.register(cmd)
	return cmd
}
