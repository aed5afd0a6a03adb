// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal components playbook is built from:
// an adaptive light/dark theme, scrollbar, overlay splicing, a dropdown
// menu, a framed modal, change animation, scenario notes rendered from
// markdown, highlighted source excerpts, and OSC 52 clipboard writes.
//
// Components render through a [Theme]. A theme bound to a lipgloss
// renderer with [Theme.WithRenderer] resolves its adaptive colors
// against that renderer's background and color profile, which is how
// the same component renders for the live terminal and for offscreen
// snapshot capture.
package tui
