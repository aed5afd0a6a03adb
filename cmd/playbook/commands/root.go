// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/config"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/store"
	"github.com/bureau-foundation/playbook/lib/version"
)

// Streams are the command's output destinations.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Root returns the playbook command over registry.
func Root(registry *playbook.Playbook, streams Streams) *cli.Command {
	var common settings
	var showVersion bool

	return &cli.Command{
		Name:        "playbook",
		Description: "Playbook: browse, present, and capture terminal UI scenarios.",
		Usage:       "playbook [command] [flags]",
		Output:      streams.Stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := common.flagSet("playbook")
			flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
			return flagSet
		},
		Run: func(args []string) error {
			if showVersion {
				version.Fprint(streams.Stdout, "playbook")
				return nil
			}
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0]).
					WithHint("Run 'playbook --help' for usage.")
			}
			return runSession(registry, store.Catalog, &common)
		},
		Subcommands: []*cli.Command{
			sessionCommand(registry, store.Catalog,
				"Browse scenarios in a split pane with live content"),
			sessionCommand(registry, store.Gallery,
				"Browse snapshot previews and present scenarios"),
			snapshotCommand(registry, streams),
			listCommand(registry, streams),
			inspectCommand(streams),
		},
		Examples: []cli.Example{
			{Description: "Browse the catalog", Command: "playbook"},
			{Description: "Preview everything in a dark gallery", Command: "playbook gallery --scheme dark"},
			{Description: "Write every frame as files", Command: "playbook snapshot --out snapshots"},
		},
	}
}

// settings are the flags every command shares. Flags left unset keep
// the config file's values.
type settings struct {
	configPath string
	logOutput  string
	name       string
	limit      int
	scheme     string
	profile    string

	flags *pflag.FlagSet
}

func (s *settings) flagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&s.configPath, "config", "", "config file (YAML or JSONC; default $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&s.logOutput, "log-output", "", "also write JSON log records to this file")
	flagSet.StringVar(&s.name, "name", "", "title shown in the header")
	flagSet.IntVar(&s.limit, "limit", 0, "scenarios captured eagerly; the rest capture on selection")
	flagSet.StringVar(&s.scheme, "scheme", "", "preview color scheme: light or dark")
	flagSet.StringVar(&s.profile, "profile", "", "preview color profile: truecolor, ansi256, ansi, or ascii")
	s.flags = flagSet
	return flagSet
}

// load reads the config file and applies the flags that were set.
func (s *settings) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if s.configPath != "" {
		cfg, err = config.LoadFile(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}

	changed := func(name string) bool { return s.flags != nil && s.flags.Changed(name) }
	if changed("name") {
		cfg.Name = s.name
	}
	if changed("limit") {
		cfg.Snapshot.Limit = s.limit
	}
	if changed("scheme") {
		cfg.Snapshot.ColorScheme = s.scheme
	}
	if changed("profile") {
		cfg.Snapshot.Profile = s.profile
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid settings: %w", err)
	}
	return cfg, nil
}

func sessionCommand(registry *playbook.Playbook, mode store.Mode, summary string) *cli.Command {
	var common settings
	return &cli.Command{
		Name:    mode.String(),
		Summary: summary,
		Flags: func() *pflag.FlagSet {
			return common.flagSet(mode.String())
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runSession(registry, mode, &common)
		},
	}
}

// liveScheme is the scheme live content renders against: the
// terminal's own background.
func liveScheme(dark bool) scenario.ColorScheme {
	if dark {
		return scenario.Dark
	}
	return scenario.Light
}
