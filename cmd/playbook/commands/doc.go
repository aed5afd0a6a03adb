// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the playbook command tree over a registry:
//
//	playbook [flags]             catalog (the default)
//	playbook catalog [flags]     split-pane browser with live content
//	playbook gallery [flags]     preview grid with modal presentation
//	playbook snapshot [flags]    capture scenarios to files or a bundle
//	playbook list [flags]        print the registered scenarios
//	playbook inspect <bundle>    describe a snapshot bundle
//
// Every command reads lib/config: --config names the file, falling
// back to $PLAYBOOK_CONFIG, and flags override what the file sets.
package commands
