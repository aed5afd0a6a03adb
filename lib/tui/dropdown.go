// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Action identifier returned on selection.
	Key   string // Optional shortcut hint shown right-aligned.
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. It captures all keyboard input when active (up/down to
// navigate, enter to select, escape to dismiss). The model owns the
// dropdown instance and routes input to it while it is open.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int // Screen Y coordinate of the dropdown's top-left corner.
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() (DropdownOption, bool) {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.Options) {
		return DropdownOption{}, false
	}
	return dropdown.Options[dropdown.Cursor], true
}

// SelectKey moves the cursor to the option whose shortcut is key and
// reports whether one matched.
func (dropdown *DropdownOverlay) SelectKey(key string) bool {
	for index, option := range dropdown.Options {
		if option.Key != "" && option.Key == key {
			dropdown.Cursor = index
			return true
		}
	}
	return false
}

// Width returns the total visible width of the rendered dropdown in
// columns, matching the width used by Render.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth, maxKeyWidth := 0, 0
	for _, option := range dropdown.Options {
		maxLabelWidth = max(maxLabelWidth, ansi.StringWidth(option.Label))
		maxKeyWidth = max(maxKeyWidth, ansi.StringWidth(option.Key))
	}
	// Layout: " > LABEL  KEY " with the key column only when used.
	width := 1 + 2 + maxLabelWidth + 1
	if maxKeyWidth > 0 {
		width += 2 + maxKeyWidth
	}
	return width
}

// Contains returns true if the screen coordinate (x, y) falls within
// the dropdown's bounding rectangle.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	if y < dropdown.AnchorY || y >= dropdown.AnchorY+len(dropdown.Options) {
		return false
	}
	return x >= dropdown.AnchorX && x < dropdown.AnchorX+dropdown.Width()
}

// OptionAtY returns the option index corresponding to the given
// screen Y coordinate, or -1 if the Y coordinate is outside the
// dropdown's vertical range.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	index := y - dropdown.AnchorY
	if index < 0 || index >= len(dropdown.Options) {
		return -1
	}
	return index
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width and a solid background. The highlighted
// option uses the selection colors.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()

	backgroundStyle := theme.NewStyle().
		Foreground(theme.PanelForeground).
		Background(theme.PanelBackground)
	keyStyle := theme.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.PanelBackground)
	selectedStyle := theme.NewStyle().
		Bold(true).
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		marker := " "
		style, hint := backgroundStyle, keyStyle
		if index == dropdown.Cursor {
			marker = ">"
			style, hint = selectedStyle, selectedStyle
		}

		left := " " + marker + " " + option.Label
		gap := totalWidth - ansi.StringWidth(left) - ansi.StringWidth(option.Key) - 1
		line := style.Render(left + strings.Repeat(" ", max(gap, 0)))
		if option.Key != "" {
			line += hint.Render(option.Key)
		}
		line += style.Render(" ")
		lines = append(lines, line)
	}
	return lines
}
