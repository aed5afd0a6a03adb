// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package playbookui is the terminal presentation of a playbook
// session. [New] builds the model for the store's mode. A catalog
// store gets a split-pane browser: a search tree of kinds and
// scenarios on the left and the selected scenario's live content on
// the right. A gallery store gets a grid of snapshot previews grouped
// by kind; choosing a preview presents its live content modally or
// full screen per the scenario's presentation style.
//
// The model reads and mutate a [store.Store] and are the store's only
// writer while the program runs. The store's change notifications,
// snapshot pipeline progress, and live content commands all arrive as
// bubbletea messages, so every state change happens on the program's
// event loop.
//
// [LogHandler] routes warnings into the status bar.
package playbookui
