// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scenario defines the registration record at the center of
// Playbook: a named component configuration plus a factory that
// produces renderable content on demand.
//
// Content is always a bubbletea model. Scenarios that only have a
// string to show use the [View] or [ViewFunc] adapters, which wrap the
// string in a minimal hosting model; scenarios with their own model
// use [Model] or [ModelFunc]. All four normalize to [Factory], so the
// snapshot pipeline and the live catalog call factories the same way.
//
// A factory may be called many times (once per snapshot, once per
// live display) and must build equivalent content every time.
package scenario
