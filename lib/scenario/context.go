// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import "github.com/charmbracelet/lipgloss"

// ColorScheme selects the background the content is rendered against.
type ColorScheme int

const (
	// Light renders for a light terminal background.
	Light ColorScheme = iota
	// Dark renders for a dark terminal background.
	Dark
)

func (scheme ColorScheme) String() string {
	if scheme == Dark {
		return "dark"
	}
	return "light"
}

// ParseColorScheme parses "light" or "dark".
func ParseColorScheme(value string) (ColorScheme, bool) {
	switch value {
	case "light":
		return Light, true
	case "dark":
		return Dark, true
	}
	return Light, false
}

// Context is passed to a factory each time content is built.
type Context struct {
	// IsSnapshot is true when the content is built for still capture.
	// Content should stop animations and avoid randomized state.
	IsSnapshot bool

	// ColorScheme is the background the content will be shown on.
	ColorScheme ColorScheme

	// Renderer is the lipgloss renderer the host captures with. Styles
	// built from it resolve adaptive colors for ColorScheme. Never nil
	// when a host builds the context.
	Renderer *lipgloss.Renderer

	// Size is the size proposed by the host's layout.
	Size Size
}

// NewStyle returns a style bound to the context's renderer, falling
// back to the default renderer for hand-built contexts.
func (ctx Context) NewStyle() lipgloss.Style {
	if ctx.Renderer == nil {
		return lipgloss.NewStyle()
	}
	return ctx.Renderer.NewStyle()
}
