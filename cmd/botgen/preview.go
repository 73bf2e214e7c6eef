package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mxkacsa/botgen"
	"github.com/mxkacsa/botgen/parse"
)

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <graph>",
		Short: "Print a sample program with placeholder settings",
		Long: `Print the program a graph produces with placeholder options instead of
the configured ones. The output is meant for reading, not for running.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parse.NewParser().ParseFile(args[0])
			if err != nil {
				return err
			}
			src, err := botgen.Preview(g)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), src)
			return nil
		},
	}
}
