// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// row is one line of the catalog's search tree: a kind header or a
// scenario under an expanded kind.
type row struct {
	header bool
	group  search.ListData
	data   search.Data
}

// buildRows flattens a result into tree rows. Scenarios appear only
// under opened kinds.
func buildRows(result search.Result, opened func(search.ListData) bool) []row {
	var rows []row
	for _, group := range result.Data {
		rows = append(rows, row{header: true, group: group})
		if !opened(group) {
			continue
		}
		for _, data := range group.Scenarios {
			rows = append(rows, row{group: group, data: data})
		}
	}
	return rows
}

// rebuildRows recomputes the tree from the store, keeping the cursor on
// the same row identity when it still exists.
func (model *Model) rebuildRows() {
	var current row
	hadCurrent := model.cursor >= 0 && model.cursor < len(model.rows)
	if hadCurrent {
		current = model.rows[model.cursor]
	}

	model.rows = buildRows(model.store.Result(), func(group search.ListData) bool {
		return model.store.IsOpened(group.Kind)
	})

	if hadCurrent {
		for index, candidate := range model.rows {
			if sameRow(candidate, current) {
				model.cursor = index
				return
			}
		}
	}
	model.cursor = min(max(model.cursor, 0), max(len(model.rows)-1, 0))
}

func sameRow(a, b row) bool {
	if a.header != b.header {
		return false
	}
	if a.header {
		return a.group.Kind == b.group.Kind
	}
	return a.data.ID == b.data.ID
}

// rowIndex returns the row showing id, or its kind's header when the
// kind is collapsed.
func (model Model) rowIndex(id playbook.ID) int {
	header := -1
	for index, candidate := range model.rows {
		if candidate.header && candidate.group.Kind == id.Kind {
			header = index
		}
		if !candidate.header && candidate.data.ID == id {
			return index
		}
	}
	return header
}

// moveCursor moves the tree cursor by delta rows and selects the
// scenario it lands on.
func (model *Model) moveCursor(delta int) tea.Cmd {
	if len(model.rows) == 0 {
		return nil
	}
	model.cursor = min(max(model.cursor+delta, 0), len(model.rows)-1)
	return model.selectCursor()
}

// selectCursor makes the scenario under the cursor the selection.
func (model *Model) selectCursor() tea.Cmd {
	if model.cursor >= len(model.rows) || model.rows[model.cursor].header {
		return nil
	}
	data := model.rows[model.cursor].data
	if model.live != nil && model.live.id == data.ID {
		return nil
	}
	model.store.Select(&data)
	return model.openLive(data, model.catalogContentSize())
}

// collapseOrGoToHeader collapses the kind under the cursor, or moves
// from a scenario to its kind's header.
func (model *Model) collapseOrGoToHeader() {
	if len(model.rows) == 0 {
		return
	}
	current := model.rows[model.cursor]
	if !current.header {
		model.cursor = model.rowIndex(playbook.ID{Kind: current.group.Kind})
		return
	}
	if model.store.IsOpened(current.group.Kind) {
		model.store.SetOpened(current.group.Kind, false)
		model.rebuildRows()
	}
}

// expandOrEnter expands the kind under the cursor, or moves into its
// first scenario when it is already open.
func (model *Model) expandOrEnter() tea.Cmd {
	if len(model.rows) == 0 {
		return nil
	}
	current := model.rows[model.cursor]
	if !current.header {
		return nil
	}
	if !model.store.IsOpened(current.group.Kind) {
		model.store.SetOpened(current.group.Kind, true)
		model.rebuildRows()
		return nil
	}
	if model.cursor+1 < len(model.rows) && !model.rows[model.cursor+1].header {
		return model.moveCursor(1)
	}
	return nil
}

// renderTree renders the tree pane: width columns including the
// scrollbar, height rows.
func (model Model) renderTree(width, height int) []string {
	lines := make([]string, 0, height)
	if len(model.rows) == 0 {
		message := "There are no scenarios"
		if model.store.Searching() {
			message = "This filter resulted in 0 results"
		}
		faint := model.theme.NewStyle().Foreground(model.theme.FaintText)
		for _, line := range strings.Split(ansi.Wrap(message, max(width-2, 1), " "), "\n") {
			lines = append(lines, " "+faint.Render(line))
		}
		return fitBlock(lines, width, height)
	}

	textWidth := max(width-1, 1)
	offset := max(model.cursor-height+1, 0)
	selected := model.store.Selected()
	for index := offset; index < len(model.rows) && len(lines) < height; index++ {
		lines = append(lines, model.renderRow(model.rows[index], index == model.cursor, selected, textWidth))
	}
	lines = fitBlock(lines, textWidth, height)

	scrollbar := strings.Split(tui.RenderScrollbar(model.theme, height, len(model.rows), height, offset, model.focus == focusTree && !model.searching), "\n")
	for index := range lines {
		lines[index] += scrollbar[index]
	}
	return lines
}

func (model Model) renderRow(current row, atCursor bool, selected *search.Data, width int) string {
	theme := model.theme
	base := theme.NewStyle().Foreground(theme.NormalText)
	highlight := theme.NewStyle().Background(theme.SearchHighlightBackground).Foreground(theme.NormalText)
	marker := theme.NewStyle().Foreground(theme.FaintText)

	var line string
	if current.header {
		arrow := "▸ "
		if model.store.IsOpened(current.group.Kind) {
			arrow = "▾ "
		}
		label := string(current.group.Kind)
		name := base.Bold(true).Render(label)
		if current.group.ShouldHighlight {
			name = tui.Highlight(label, current.group.KindMatch.Start, current.group.KindMatch.End, base.Bold(true), highlight.Bold(true))
		}
		count := marker.Render(fmt.Sprintf(" %d", len(current.group.Scenarios)))
		line = marker.Render(arrow) + name + count
	} else {
		bullet := marker.Render("  · ")
		if selected != nil && selected.ID == current.data.ID {
			bullet = theme.NewStyle().Foreground(theme.Accent).Render("  ● ")
		}
		label := current.data.ID.String()[len(current.data.ID.Kind)+1:]
		name := base.Render(label)
		if current.data.ShouldHighlight {
			name = tui.Highlight(label, current.data.NameMatch.Start, current.data.NameMatch.End, base, highlight)
		}
		line = bullet + name
	}

	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "…")
	}
	if atCursor && model.focus == focusTree && !model.searching {
		plain := ansi.Strip(line)
		pad := max(width-ansi.StringWidth(plain), 0)
		return theme.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render(plain + strings.Repeat(" ", pad))
	}
	return line
}

// fitBlock crops and pads lines to exactly width x height.
func fitBlock(lines []string, width, height int) []string {
	block := make([]string, height)
	for index := range block {
		line := ""
		if index < len(lines) {
			line = lines[index]
			if ansi.StringWidth(line) > width {
				line = ansi.Truncate(line, width, "")
			}
			if strings.Contains(line, "\x1b[") {
				line += "\x1b[0m"
			}
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		block[index] = line
	}
	return block
}
