// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for playbook's terminal UI. Every
// color is adaptive: the light value is used on light backgrounds and
// the dark value on dark ones. Values are ANSI 256-color codes for
// broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.AdaptiveColor
	FaintText  lipgloss.AdaptiveColor

	// Selected row.
	SelectedBackground lipgloss.AdaptiveColor
	SelectedForeground lipgloss.AdaptiveColor

	// Accent marks the selected scenario's bullet, kind bookmarks, and
	// focused scrollbars.
	Accent lipgloss.AdaptiveColor

	// UI chrome.
	HeaderForeground lipgloss.AdaptiveColor
	BorderColor      lipgloss.AdaptiveColor
	HelpText         lipgloss.AdaptiveColor

	// Panels: modals, dropdowns, and preview placeholders.
	PanelForeground lipgloss.AdaptiveColor
	PanelBackground lipgloss.AdaptiveColor

	// Animation accents: background tint for previews that were just
	// captured (HotAccent) or just failed (FailedAccent).
	HotAccent    lipgloss.AdaptiveColor
	FailedAccent lipgloss.AdaptiveColor

	// Search match highlighting.
	SearchHighlightBackground lipgloss.AdaptiveColor

	// Status colors for the status bar.
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// renderer resolves adaptive colors. Nil uses lipgloss's default
	// renderer, which queries the terminal.
	renderer *lipgloss.Renderer
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	NormalText: lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
	FaintText:  lipgloss.AdaptiveColor{Light: "243", Dark: "245"},

	SelectedBackground: lipgloss.AdaptiveColor{Light: "254", Dark: "236"},
	SelectedForeground: lipgloss.AdaptiveColor{Light: "232", Dark: "255"},

	Accent: lipgloss.AdaptiveColor{Light: "26", Dark: "75"}, // blue

	HeaderForeground: lipgloss.AdaptiveColor{Light: "232", Dark: "255"},
	BorderColor:      lipgloss.AdaptiveColor{Light: "250", Dark: "240"},
	HelpText:         lipgloss.AdaptiveColor{Light: "245", Dark: "241"},

	PanelForeground: lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
	PanelBackground: lipgloss.AdaptiveColor{Light: "255", Dark: "237"},

	HotAccent:    lipgloss.AdaptiveColor{Light: "230", Dark: "58"}, // amber tint
	FailedAccent: lipgloss.AdaptiveColor{Light: "224", Dark: "52"}, // red tint

	SearchHighlightBackground: lipgloss.AdaptiveColor{Light: "229", Dark: "58"},

	Success: lipgloss.AdaptiveColor{Light: "28", Dark: "114"},
	Warning: lipgloss.AdaptiveColor{Light: "130", Dark: "220"},
	Error:   lipgloss.AdaptiveColor{Light: "160", Dark: "196"},
}

// WithRenderer returns a copy of the theme whose styles resolve
// against renderer.
func (theme Theme) WithRenderer(renderer *lipgloss.Renderer) Theme {
	theme.renderer = renderer
	return theme
}

// Renderer returns the renderer the theme is bound to, or nil.
func (theme Theme) Renderer() *lipgloss.Renderer { return theme.renderer }

// NewStyle returns an empty style bound to the theme's renderer.
func (theme Theme) NewStyle() lipgloss.Style {
	if theme.renderer == nil {
		return lipgloss.NewStyle()
	}
	return theme.renderer.NewStyle()
}

// Swatch is a named theme color.
type Swatch struct {
	Name  string
	Color lipgloss.AdaptiveColor
}

// Swatches lists the theme's colors in declaration order.
func (theme Theme) Swatches() []Swatch {
	return []Swatch{
		{"NormalText", theme.NormalText},
		{"FaintText", theme.FaintText},
		{"SelectedBackground", theme.SelectedBackground},
		{"SelectedForeground", theme.SelectedForeground},
		{"Accent", theme.Accent},
		{"HeaderForeground", theme.HeaderForeground},
		{"BorderColor", theme.BorderColor},
		{"HelpText", theme.HelpText},
		{"PanelForeground", theme.PanelForeground},
		{"PanelBackground", theme.PanelBackground},
		{"HotAccent", theme.HotAccent},
		{"FailedAccent", theme.FailedAccent},
		{"SearchHighlightBackground", theme.SearchHighlightBackground},
		{"Success", theme.Success},
		{"Warning", theme.Warning},
		{"Error", theme.Error},
	}
}
