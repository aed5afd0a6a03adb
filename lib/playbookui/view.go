// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/snapshot"
	"github.com/bureau-foundation/playbook/lib/store"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// searchVisible reports whether the search bar occupies a row. The
// catalog always shows it; the gallery shows it as a drawer.
func (model Model) searchVisible() bool {
	return model.mode == store.Catalog || model.searching || model.store.SearchTreeVisible()
}

// bodyHeight is the height between the header (and search bar) and
// the status bar.
func (model Model) bodyHeight() int {
	chrome := 2
	if model.searchVisible() {
		chrome++
	}
	return max(model.height-chrome, 0)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	lines := []string{model.renderHeader()}
	if model.searchVisible() {
		lines = append(lines, fitBlock([]string{model.search.View()}, model.width, 1)...)
	}
	height := model.bodyHeight()
	switch {
	case model.mode == store.Catalog:
		lines = append(lines, model.renderCatalog(height)...)
	case model.presented && model.style == scenario.Full:
		lines = append(lines, model.renderLive(model.width, height)...)
	default:
		lines = append(lines, model.renderGrid(model.width, height)...)
	}
	lines = append(lines, model.renderStatus())
	view := strings.Join(lines, "\n")

	if model.presented && model.style == scenario.Modal && model.live != nil {
		size := model.presentationSize()
		modal := tui.Modal{
			Title:  model.live.id.String(),
			Footer: "Esc close",
			Body:   trimBlock(model.renderLive(size.Width, size.Height)),
		}
		overlay, x, y := modal.Render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, overlay, x, y)
	}
	if model.panel != nil {
		overlay, x, y := model.panel.Render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, overlay, x, y)
	}
	if model.actions != nil {
		view = tui.SpliceOverlay(view, model.actions.Render(model.theme), model.actions.AnchorX, model.actions.AnchorY)
	}
	if model.sheet != nil {
		overlay, x, y := model.sheet.render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, overlay, x, y)
	}
	return view
}

// renderHeader renders the title, the preparation indicator, and the
// "N of M" counter.
func (model Model) renderHeader() string {
	theme := model.theme
	title := theme.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(model.store.Name())

	result := model.store.Result()
	counter := theme.NewStyle().Foreground(theme.FaintText).
		Render(fmt.Sprintf("%d of %d", result.MatchedCount, result.ScenariosCount))

	middle := ""
	if model.mode == store.Gallery && model.store.Status() == snapshot.Standby {
		middle = "  " + model.spinner.View() + " " +
			theme.NewStyle().Foreground(theme.FaintText).Render(preparingText)
	}

	left := title + middle
	gap := model.width - ansi.StringWidth(left) - ansi.StringWidth(counter)
	if gap < 1 {
		return fitBlock([]string{left}, model.width, 1)[0]
	}
	return left + strings.Repeat(" ", gap) + counter
}

// renderStatus renders the status bar: the latest log message while
// it is fresh, otherwise the key help for the current context.
func (model Model) renderStatus() string {
	theme := model.theme
	if model.status != "" {
		style := theme.NewStyle().Foreground(theme.NormalText)
		switch {
		case model.statusLevel >= slog.LevelError:
			style = style.Foreground(theme.Error)
		case model.statusLevel >= slog.LevelWarn:
			style = style.Foreground(theme.Warning)
		}
		return fitBlock([]string{style.Render(model.status)}, model.width, 1)[0]
	}

	var prefix string
	var bindings []key.Binding
	switch {
	case model.sheet != nil:
		prefix = "[SHARE]"
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Select, model.keys.Back}
	case model.actions != nil:
		prefix = "[ACTIONS]"
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Select, model.keys.Back}
	case model.panel != nil:
		prefix = "[PANEL]"
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Back}
	case model.searching:
		prefix = "[SEARCH]"
		bindings = []key.Binding{model.keys.Select, model.keys.Back}
	case model.presented:
		prefix = "[PRESENTING]"
		bindings = []key.Binding{model.keys.Back}
	case model.focus == focusContent:
		prefix = "[CONTENT]"
		bindings = []key.Binding{model.keys.FocusToggle}
	default:
		prefix = "[BROWSE]"
		bindings = []key.Binding{
			model.keys.Search, model.keys.Select, model.keys.Notes, model.keys.Source,
			model.keys.Actions, model.keys.Share, model.keys.Quit,
		}
		if model.mode == store.Catalog {
			bindings = append([]key.Binding{model.keys.FocusToggle}, bindings...)
		}
	}

	parts := []string{theme.NewStyle().Foreground(theme.Accent).Render(prefix)}
	help := theme.NewStyle().Foreground(theme.HelpText)
	for _, binding := range bindings {
		parts = append(parts, help.Render(binding.Help().Key+" "+binding.Help().Desc))
	}
	return fitBlock([]string{strings.Join(parts, "  ")}, model.width, 1)[0]
}

// placeBlock centers lines in a width x height block, cropping what
// does not fit.
func placeBlock(lines []string, width, height int) []string {
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, ansi.StringWidth(line))
	}
	left := max((width-blockWidth)/2, 0)
	top := max((height-len(lines))/2, 0)

	padded := make([]string, 0, top+len(lines))
	for range top {
		padded = append(padded, "")
	}
	indent := strings.Repeat(" ", left)
	for _, line := range lines {
		padded = append(padded, indent+line)
	}
	return fitBlock(padded, width, height)
}

// trimBlock drops trailing blank rows and columns a centered block was
// padded with, so a modal frame hugs its content.
func trimBlock(lines []string) []string {
	first, last := -1, -1
	for index, line := range lines {
		if strings.TrimSpace(ansi.Strip(line)) != "" {
			if first < 0 {
				first = index
			}
			last = index
		}
	}
	if first < 0 {
		return nil
	}
	return lines[first : last+1]
}
