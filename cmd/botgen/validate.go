package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mxkacsa/botgen/parse"
)

func newValidateCmd(a *app) *cobra.Command {
	var strictWarnings bool
	cmd := &cobra.Command{
		Use:   "validate <graph>",
		Short: "Check a graph file without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parse.NewParser().ParseFile(args[0])
			if err != nil {
				var verrs *parse.ValidationErrors
				if errors.As(err, &verrs) {
					for _, e := range verrs.Errors {
						for _, line := range strings.Split(strings.TrimRight(e.Error(), "\n"), "\n") {
							pterm.Error.Println(strings.TrimSpace(line))
						}
					}
				}
				return err
			}

			warnings := parse.Lint(g)
			printWarnings(warnings)
			if strictWarnings && len(warnings) > 0 {
				return errors.Newf("%d warnings", len(warnings))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d nodes, %d connections, %d warnings\n",
				len(g.Nodes), len(g.Connections), len(warnings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strictWarnings, "warnings-as-errors", false, "fail when the graph has warnings")
	return cmd
}
