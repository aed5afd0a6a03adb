// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Chrome around a modal body: a rounded border on each side plus the
// title and footer rows.
const (
	modalChromeWidth  = 2
	modalChromeHeight = 4
)

// Modal frames pre-rendered body lines in a bordered, centered panel
// with a title row and a footer row. The body keeps its own styling;
// the frame only truncates and pads it.
type Modal struct {
	Title  string
	Footer string
	Body   []string

	// Scroll is the first visible body line when the body is taller
	// than the screen allows.
	Scroll int
}

// InnerSize returns the body area the modal would occupy on a screen
// of the given size.
func (modal Modal) InnerSize(screenWidth, screenHeight int) (width, height int) {
	width = max(ansi.StringWidth(modal.Title), ansi.StringWidth(modal.Footer))
	for _, line := range modal.Body {
		width = max(width, ansi.StringWidth(line))
	}
	width = max(min(width, screenWidth-modalChromeWidth), 0)
	height = max(min(len(modal.Body), screenHeight-modalChromeHeight), 0)
	return width, height
}

// MaxScroll returns the largest useful Scroll value for the screen.
func (modal Modal) MaxScroll(screenHeight int) int {
	_, height := modal.InnerSize(1<<16, screenHeight)
	return max(len(modal.Body)-height, 0)
}

// Render produces the modal's lines and the anchor that centers them
// on a screen of the given size, ready for [SpliceOverlay].
func (modal Modal) Render(theme Theme, screenWidth, screenHeight int) (lines []string, anchorX, anchorY int) {
	innerWidth, innerHeight := modal.InnerSize(screenWidth, screenHeight)
	scroll := min(max(modal.Scroll, 0), max(len(modal.Body)-innerHeight, 0))

	backgroundStyle := theme.NewStyle().Background(theme.PanelBackground)
	titleStyle := theme.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.PanelBackground)
	footerStyle := theme.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.PanelBackground)

	pad := func(line string) string {
		if ansi.StringWidth(line) > innerWidth {
			line = ansi.Truncate(line, innerWidth, "")
		}
		if gap := innerWidth - ansi.StringWidth(line); gap > 0 {
			line += backgroundStyle.Render(strings.Repeat(" ", gap))
		}
		return line
	}

	inner := make([]string, 0, innerHeight+2)
	inner = append(inner, pad(titleStyle.Render(ansi.Truncate(modal.Title, innerWidth, "…"))))
	for index := scroll; index < scroll+innerHeight; index++ {
		inner = append(inner, pad(modal.Body[index]+"\x1b[0m"))
	}
	inner = append(inner, pad(footerStyle.Render(ansi.Truncate(modal.Footer, innerWidth, "…"))))

	borderStyle := theme.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		BorderBackground(theme.PanelBackground)

	lines = strings.Split(borderStyle.Render(strings.Join(inner, "\n")), "\n")
	renderedWidth := 0
	if len(lines) > 0 {
		renderedWidth = ansi.StringWidth(lines[0])
	}
	anchorX = max((screenWidth-renderedWidth)/2, 0)
	anchorY = max((screenHeight-len(lines))/2, 0)
	return lines, anchorX, anchorY
}
