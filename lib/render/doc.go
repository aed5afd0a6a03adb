// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render hosts scenario content and captures it as still
// frames.
//
// A [Host] owns one content instance built from a scenario's factory.
// It sizes the content for the scenario's layout, runs its Init
// command, and feeds resulting messages back into Update. Offscreen
// hosts pump their own commands during [Host.Settle]; interactive hosts
// hand commands back to the caller's bubbletea program.
//
// [Capture] turns a host's current view into an [Image]: the view
// cropped and padded to the resolved layout size, rendered through a
// lipgloss renderer pinned to the requested color profile and
// background. Two images with the same digest are identical cell for
// cell.
//
// Content is arbitrary user code. Every call into it recovers panics
// and reports them as [RenderPanicError], so one broken scenario never
// takes down the catalog.
package render
