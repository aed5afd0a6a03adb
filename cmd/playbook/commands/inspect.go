// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/codec"
	"github.com/bureau-foundation/playbook/lib/export"
)

func inspectCommand(streams Streams) *cli.Command {
	var (
		diagnose bool
		show     string
		plain    bool
	)
	return &cli.Command{
		Name:    "inspect",
		Summary: "Describe a snapshot bundle",
		Usage:   "playbook inspect <bundle> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.BoolVar(&diagnose, "diagnose", false, "print the manifest in CBOR diagnostic notation")
			flagSet.StringVar(&show, "show", "", "print the frame of one scenario (Kind/name)")
			flagSet.BoolVar(&plain, "plain", false, "with --show, strip styling")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("inspect takes exactly one bundle path").
					WithHint("Usage: playbook inspect <bundle>")
			}
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return cli.NotFound("reading bundle: %w", err)
			}

			if diagnose {
				raw, _, err := export.RawManifest(bytes.NewReader(data))
				if err != nil {
					return cli.Validation("%s: %w", path, err)
				}
				notation, err := codec.Diagnose(raw)
				if err != nil {
					return cli.Validation("%s: %w", path, err)
				}
				fmt.Fprintln(streams.Stdout, notation)
				return nil
			}

			_, compression, err := export.RawManifest(bytes.NewReader(data))
			if err != nil {
				return cli.Validation("%s: %w", path, err)
			}
			manifest, err := export.ReadBundle(bytes.NewReader(data))
			if err != nil {
				return cli.Validation("%s: %w", path, err)
			}

			if show != "" {
				for _, shot := range manifest.Shots {
					if shot.ID().String() != show {
						continue
					}
					if plain {
						fmt.Fprintln(streams.Stdout, shot.Plain())
					} else {
						fmt.Fprintln(streams.Stdout, shot.Styled())
					}
					return nil
				}
				return cli.NotFound("no scenario %q in %s", show, path).
					WithHint("Run 'playbook inspect " + path + "' to list its scenarios.")
			}

			fmt.Fprintf(streams.Stdout, "%s: %q, version %d, %d scenarios, %s\n",
				path, manifest.Name, manifest.Version, len(manifest.Shots), compression)
			writer := tabwriter.NewWriter(streams.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "SCENARIO\tSIZE\tLAYOUT\tSCHEME\tPROFILE\tDIGEST")
			for _, shot := range manifest.Shots {
				fmt.Fprintf(writer, "%s\t%dx%d\t%s\t%s\t%s\t%x\n",
					shot.ID(), shot.Width, shot.Height, shot.Layout, shot.Scheme, shot.Profile, shot.Digest[:6])
			}
			return writer.Flush()
		},
	}
}
