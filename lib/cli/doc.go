// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the error types the playbook command returns.
//
// Commands return a [ToolError] built with [Validation], [NotFound], or
// [Internal] so main can tell bad input from a failure: validation
// errors exit with status 2 and print the usage hint, everything else
// exits with status 1. [ExitError] requests a specific status without
// printing anything, for commands that already reported their outcome.
package cli
