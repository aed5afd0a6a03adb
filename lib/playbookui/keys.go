// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the catalog and the gallery.
type KeyMap struct {
	// Navigation: tree rows in the catalog, preview cells in the
	// gallery, or panel scrolling while a panel is open.
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding // Catalog: collapse kind / go to its header.
	Right    key.Binding // Catalog: expand kind / enter first scenario.
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Select toggles a kind, focuses the catalog's live content, or
	// presents the gallery's selected preview.
	Select key.Binding

	// FocusToggle moves keyboard focus between the catalog's tree and
	// its live content. Keys typed while content has focus go to the
	// content.
	FocusToggle key.Binding

	Search key.Binding // Focus the search bar.
	Back   key.Binding // Clear search, close panel, or dismiss presentation.

	Notes   key.Binding // Scenario notes panel.
	Source  key.Binding // Scenario source excerpt panel.
	Actions key.Binding // Actions menu.
	Share   key.Binding // Share the current frame.

	// ShareContent shares the frame while live content has the
	// keyboard, where Share would reach the content instead.
	ShareContent key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (h/j/k/l) alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "focus"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Notes: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "notes"),
	),
	Source: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "source"),
	),
	Actions: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "actions"),
	),
	Share: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "share"),
	),
	ShareContent: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "share"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
