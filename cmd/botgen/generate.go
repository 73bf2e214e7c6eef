package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mxkacsa/botgen"
	"github.com/mxkacsa/botgen/gen"
	"github.com/mxkacsa/botgen/logger"
	"github.com/mxkacsa/botgen/parse"
)

// genFlags are the flags shared by generate and watch.
type genFlags struct {
	output string
	name   string
	token  string
	strict bool
	stdout bool
}

func (f *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default from config, bot.py)")
	cmd.Flags().StringVar(&f.name, "name", "", "bot name, overrides the config")
	cmd.Flags().StringVar(&f.token, "token", "", "substitute this token for the placeholder")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on transitions to unknown nodes")
	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "print the program instead of writing a file")
}

// options merges the config with the command line.
func (a *app) options(f *genFlags) gen.Options {
	opts := a.cfg.Options()
	if f.name != "" {
		opts.BotName = f.name
	}
	if f.strict {
		opts.StrictTargets = true
	}
	opts.Logger = logger.Base().Named("gen")
	return opts
}

func (a *app) outputPath(f *genFlags) string {
	if f.output != "" {
		return f.output
	}
	return a.cfg.Generate.Output
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &genFlags{}
	cmd := &cobra.Command{
		Use:   "generate <graph>",
		Short: "Compile a graph file into a bot program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.build(cmd, args[0], f)
			return err
		},
	}
	f.register(cmd)
	return cmd
}

// build runs one generation and writes its result. It returns the number of
// bytes produced.
func (a *app) build(cmd *cobra.Command, path string, f *genFlags) (int, error) {
	runID := uuid.NewString()
	log := logger.Logger.With(logger.FieldRunID, runID, logger.FieldFile, path)
	start := time.Now()

	res, err := botgen.GenerateFile(path, a.options(f))
	if err != nil {
		return 0, err
	}
	printWarnings(res.Warnings)

	src := res.Source
	if f.token != "" {
		if src, err = botgen.SubstituteToken(src, f.token); err != nil {
			return 0, err
		}
	}

	if f.stdout {
		fmt.Fprint(cmd.OutOrStdout(), src)
		return len(src), nil
	}

	out := a.outputPath(f)
	if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
		return 0, errors.Wrap(err, "write output")
	}
	log.Infow("generated",
		logger.FieldOutput, out,
		logger.FieldBytes, len(src),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", out)
	return len(src), nil
}

func printWarnings(ws []parse.Warning) {
	for _, w := range ws {
		pterm.Warning.Println(w.String())
	}
}
