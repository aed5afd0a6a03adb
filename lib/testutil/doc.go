// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds the channel helpers shared by Playbook's
// tests. [RequireReceive] and [RequireClosed] wrap the select with a
// wall-clock safety valve so a broken pipeline fails the test instead
// of hanging it. Everything else in the tests runs on the fake clock
// from lib/clock; these helpers are the only place real time is used.
//
// Helpers call t.Fatalf on failure.
package testutil
