// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// playbook browses and captures the scenarios registered in
// playbook.Default. This build registers the showcase of Playbook's
// own terminal components; projects with their own scenarios copy this
// main and register theirs alongside.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/playbook/cmd/playbook/commands"
	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/showcase"
)

func main() {
	showcase.Register(playbook.Default)

	root := commands.Root(playbook.Default, commands.Streams{Stdout: os.Stdout, Stderr: os.Stderr})
	if err := root.Execute(os.Args[1:]); err != nil {
		// Commands that print their own outcome return an ExitError;
		// don't add an "error:" line for those.
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}
