// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the playbook
// command.
//
// Configuration is loaded from at most one file, named by either the
// PLAYBOOK_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). Without either, [Default] applies. Files ending in
// .json or .jsonc are read as JSON with comments and trailing commas;
// anything else is read as YAML. File values overlay the defaults
// field by field, and command-line flags overlay the file.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Snapshot and Export sections
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Pipeline] -- converts to a snapshot pipeline config
package config
