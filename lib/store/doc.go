// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package store holds the session state shared by the catalog and the
// gallery: search text and its derived result, which kind groups are
// expanded, the selected scenario, snapshot readiness, and the pending
// share request.
//
// Expanded groups are tracked in two independent sets. The user set
// records groups the user toggled by hand; the search set is rebuilt
// from the result whenever a non-empty query is entered and dropped
// when the query clears, which restores the user's expansion exactly
// as it was. [Store.IsOpened] and [Store.ToggleKind] read and write
// whichever set is active.
//
// A Store is mutated by one owner (the bubbletea event loop). The
// snapshot pipeline reports progress from its own goroutines, so all
// state sits behind a mutex, and [Store.Changes] tells the owner when
// to redraw.
package store
