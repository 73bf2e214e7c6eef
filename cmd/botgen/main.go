// botgen compiles bot graphs drawn in the editor into Python aiogram 3
// programs.
//
// Usage:
//
//	botgen generate bot.json -o bot.py
//	botgen validate bot.yaml
//	botgen watch bot.json -o bot.py
//	botgen nodes
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mxkacsa/botgen/internal/config"
	"github.com/mxkacsa/botgen/logger"
)

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbosity  int
	jsonLog    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "botgen",
		Short: "Compile bot graphs into Python aiogram 3 programs",
		Long: `botgen compiles a graph of bot nodes (JSON or YAML, as exported by the
editor) into a single self-contained Python program for aiogram 3.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (BOTGEN_* prefix, e.g. BOTGEN_BOT_NAME)
3. Config file (--config, or ./botgen.toml / ./botgen.yaml)
4. Default values

Examples:
  botgen generate bot.json -o bot.py     # Compile a graph
  botgen validate bot.yaml               # Check a graph without compiling
  botgen watch bot.json -o bot.py        # Recompile on every save
  botgen nodes                           # List supported node types
  botgen config init                     # Write a starter botgen.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./botgen.toml if present)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().BoolVar(&a.jsonLog, "log-json", false, "log as JSON")

	root.AddCommand(
		newGenerateCmd(a),
		newValidateCmd(a),
		newPreviewCmd(a),
		newNodesCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and initializes the global logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	verbosity := a.verbosity
	if cfg.Log.Verbosity > verbosity {
		verbosity = cfg.Log.Verbosity
	}
	if err := logger.Initialize(a.jsonLog || cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "initialize logger")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError prints err and its hints for a human reader.
func printError(err error) {
	pterm.Error.Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(os.Stderr, "  %s %s\n", pterm.Green("hint:"), hint)
	}
}
