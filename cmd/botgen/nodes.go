package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mxkacsa/botgen/gen"
)

func newNodesCmd(a *app) *cobra.Command {
	var messages bool
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List supported node types",
		Long: `List every node type the compiler understands with its category, slash
command and default synonyms. With --messages, list the message keys that
can be overridden in the [templates] section of the config instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data pterm.TableData
			if messages {
				data = messageTable()
			} else {
				data = nodeTable()
			}
			out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&messages, "messages", false, "list overridable message keys")
	return cmd
}

func nodeTable() pterm.TableData {
	data := pterm.TableData{{"Type", "Category", "Command", "Synonyms", "Description"}}
	for _, def := range gen.Definitions() {
		command := ""
		if def.Command != "" {
			command = "/" + def.Command
		}
		data = append(data, []string{
			string(def.Type),
			def.Category,
			command,
			strings.Join(def.DefaultSynonyms, ", "),
			def.Description,
		})
	}
	return data
}

func messageTable() pterm.TableData {
	defaults := gen.DefaultMessages()
	data := pterm.TableData{{"Key", "Default"}}
	for _, key := range gen.MessageKeys() {
		data = append(data, []string{key, defaults[key]})
	}
	return data
}
