// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/search"
)

func listCommand(registry *playbook.Playbook, streams Streams) *cli.Command {
	var query string
	return &cli.Command{
		Name:    "list",
		Summary: "Print the registered scenarios",
		Usage:   "playbook list [--query text]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVarP(&query, "query", "q", "", "only scenarios whose name or kind contains this text")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			var filter *string
			if query != "" {
				filter = &query
			}
			result := search.Filter(registry.Stores(), filter)

			writer := tabwriter.NewWriter(streams.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "SCENARIO\tLAYOUT\tSTYLE\tSOURCE")
			for _, data := range result.Flatten() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					data.ID,
					data.Scenario.Layout,
					data.Scenario.PresentationStyle,
					data.Scenario.Location(),
				)
			}
			if err := writer.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(streams.Stdout, "\n%d of %d scenarios\n", result.MatchedCount, result.ScenariosCount)
			return nil
		},
	}
}
