// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/snapshot"
	"github.com/bureau-foundation/playbook/lib/store"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// Preview cell geometry: a name row above a thumbnail.
const (
	cellWidth       = 28
	thumbnailHeight = 6
	cellGap         = 2
)

// preparingText is shown while the snapshot batch is running.
const preparingText = "Preparing snapshots ..."

// gridColumns returns how many preview cells fit side by side.
func (model Model) gridColumns() int {
	return max((model.width-1+cellGap)/(cellWidth+cellGap), 1)
}

// currentCell returns the scenario under the grid cursor.
func (model Model) currentCell() (search.Data, bool) {
	flat := model.store.Result().Flatten()
	if model.gridCursor < 0 || model.gridCursor >= len(flat) {
		return search.Data{}, false
	}
	return flat[model.gridCursor], true
}

func (model *Model) clampGrid() {
	count := model.store.Result().MatchedCount
	model.gridCursor = min(max(model.gridCursor, 0), max(count-1, 0))
}

// moveGrid moves the grid cursor by delta cells in display order.
func (model *Model) moveGrid(delta int) tea.Cmd {
	model.gridCursor += delta
	model.clampGrid()
	return model.captureIfDeferred()
}

// moveGridVertical moves the cursor one cell row up or down, keeping
// the column. Crossing a group boundary lands in the nearest row of the
// adjacent group.
func (model *Model) moveGridVertical(direction int) tea.Cmd {
	if !model.stepGridVertical(direction) {
		return nil
	}
	return model.captureIfDeferred()
}

// stepGridVertical moves the cursor one cell row and reports whether
// it moved.
func (model *Model) stepGridVertical(direction int) bool {
	groups := model.store.Result().Data
	group, index, ok := locateCell(groups, model.gridCursor)
	if !ok {
		return false
	}
	columns := model.gridColumns()
	column := index % columns
	target := index/columns + direction
	lastRow := (len(groups[group].Scenarios) - 1) / columns

	if target >= 0 && target <= lastRow {
		index = min(target*columns+column, len(groups[group].Scenarios)-1)
	} else {
		next := group + direction
		for next >= 0 && next < len(groups) && len(groups[next].Scenarios) == 0 {
			next += direction
		}
		if next < 0 || next >= len(groups) {
			return false
		}
		group = next
		count := len(groups[group].Scenarios)
		if direction > 0 {
			index = min(column, count-1)
		} else {
			index = min(((count-1)/columns)*columns+column, count-1)
		}
	}

	flat := 0
	for _, preceding := range groups[:group] {
		flat += len(preceding.Scenarios)
	}
	model.gridCursor = flat + index
	return true
}

// locateCell maps a flat cell index to its group and position.
func locateCell(groups []search.ListData, flat int) (group, index int, ok bool) {
	for group, data := range groups {
		if flat < len(data.Scenarios) {
			return group, flat, flat >= 0
		}
		flat -= len(data.Scenarios)
	}
	return 0, 0, false
}

// captureIfDeferred starts an on-demand capture when the cursor rests
// on a preview the batch deferred.
func (model *Model) captureIfDeferred() tea.Cmd {
	if model.mode != store.Gallery {
		return nil
	}
	data, ok := model.currentCell()
	if !ok {
		return nil
	}
	entry, ok := model.store.Snapshot(data.ID)
	if !ok || entry.State != snapshot.Deferred {
		return nil
	}
	if _, done := model.captured[data.ID]; done || model.capturing[data.ID] {
		return nil
	}
	model.capturing[data.ID] = true
	session, ctx, id := model.store, model.ctx, data.ID
	return func() tea.Msg {
		image, err := session.Capture(ctx, id)
		if err != nil && ctx.Err() != nil {
			return nil
		}
		return captureMsg{id: id, image: image, err: err}
	}
}

// present shows the scenario under the grid cursor.
func (model *Model) present() tea.Cmd {
	data, ok := model.currentCell()
	if !ok {
		return nil
	}
	style, present := model.store.Select(&data)
	if !present {
		return nil
	}
	model.presented = true
	model.style = style
	return model.openLive(data, model.presentationSize())
}

// dismiss closes the presentation and clears the selection.
func (model *Model) dismiss() {
	model.closeLive()
	model.presented = false
	model.store.Select(nil)
}

// presentationSize is the screen area presented content gets: the
// whole body for full-screen presentation, or the inside of a modal
// frame with a margin.
func (model Model) presentationSize() scenario.Size {
	if model.style == scenario.Full {
		return scenario.Size{Width: model.width, Height: model.bodyHeight()}
	}
	return scenario.Size{Width: max(model.width-6, 1), Height: max(model.height-6, 1)}
}

// renderGrid renders the preview grid into width x height.
func (model Model) renderGrid(width, height int) []string {
	theme := model.theme
	faint := theme.NewStyle().Foreground(theme.FaintText)
	result := model.store.Result()
	if result.ScenariosCount == 0 {
		return placeBlock([]string{faint.Render("There are no scenarios")}, width, height)
	}
	if result.MatchedCount == 0 {
		return placeBlock([]string{faint.Render("This filter resulted in 0 results")}, width, height)
	}

	columns := model.gridColumns()
	now := model.clock.Now()
	heading := theme.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	highlight := heading.Background(theme.SearchHighlightBackground)
	gap := strings.Repeat(" ", cellGap)

	var lines []string
	cursorTop, cursorBottom := 0, 0
	flat := 0
	for _, group := range result.Data {
		label := string(group.Kind)
		title := heading.Render(label)
		if group.ShouldHighlight {
			title = tui.Highlight(label, group.KindMatch.Start, group.KindMatch.End, heading, highlight)
		}
		lines = append(lines, title+faint.Render(fmt.Sprintf("  %d", len(group.Scenarios))))

		for start := 0; start < len(group.Scenarios); start += columns {
			rowCells := group.Scenarios[start:min(start+columns, len(group.Scenarios))]
			rowLines := make([]string, 1+thumbnailHeight)
			for offset, data := range rowCells {
				selected := flat+start+offset == model.gridCursor
				cell := model.renderCell(data, selected, now)
				for index := range rowLines {
					if offset > 0 {
						rowLines[index] += gap
					}
					rowLines[index] += cell[index]
				}
				if selected {
					cursorTop = len(lines)
					cursorBottom = len(lines) + len(rowLines)
				}
			}
			lines = append(lines, rowLines...)
			lines = append(lines, "")
		}
		flat += len(group.Scenarios)
	}

	gridWidth := max(width-1, 1)
	offset := 0
	if cursorBottom > height {
		offset = min(cursorBottom-height, cursorTop)
	}
	visible := fitBlock(lines[min(offset, len(lines)):], gridWidth, height)
	scrollbar := strings.Split(tui.RenderScrollbar(theme, height, len(lines), height, offset, !model.searching), "\n")
	for index := range visible {
		visible[index] += scrollbar[index]
	}
	return visible
}

// renderCell renders one preview: the scenario name over its
// thumbnail or a placeholder for the snapshot's state.
func (model Model) renderCell(data search.Data, selected bool, now time.Time) []string {
	theme := model.theme
	nameStyle := theme.NewStyle().Foreground(theme.NormalText)
	highlight := nameStyle.Background(theme.SearchHighlightBackground)
	prefix := "  "
	if selected {
		nameStyle = nameStyle.Foreground(theme.Accent).Bold(true)
		highlight = highlight.Foreground(theme.Accent).Bold(true)
		prefix = "› "
	}
	if tint, hot := model.heat.Accent(theme, heatKey(data.ID), now); hot {
		nameStyle = nameStyle.Background(tint)
	}

	label := data.ID.String()[len(data.ID.Kind)+1:]
	name := nameStyle.Render(label)
	if data.ShouldHighlight {
		name = tui.Highlight(label, data.NameMatch.Start, data.NameMatch.End, nameStyle, highlight)
	}
	lines := []string{nameStyle.Render(prefix) + name}
	lines = append(lines, model.renderThumbnail(data)...)
	return fitBlock(lines, cellWidth, 1+thumbnailHeight)
}

func (model Model) renderThumbnail(data search.Data) []string {
	if image, ok := model.captured[data.ID]; ok {
		return image.Thumbnail(cellWidth, thumbnailHeight)
	}
	theme := model.theme
	entry, _ := model.store.Snapshot(data.ID)
	panel := theme.NewStyle().Background(theme.PanelBackground).Foreground(theme.FaintText)

	var message []string
	switch entry.State {
	case snapshot.Captured:
		return entry.Image.Thumbnail(cellWidth, thumbnailHeight)
	case snapshot.Pending:
		message = []string{model.spinner.View(), preparingText}
	case snapshot.Deferred:
		if model.capturing[data.ID] {
			message = []string{"Rendering ..."}
		} else {
			message = []string{"Select to render"}
		}
	case snapshot.Unavailable:
		panel = panel.Foreground(theme.Error)
		message = []string{"Unavailable"}
		if entry.Err != nil {
			message = append(message, ansi.Truncate(entry.Err.Error(), cellWidth-2, "…"))
		}
	}
	block := lipgloss.PlaceHorizontal(cellWidth, lipgloss.Center, strings.Join(message, "\n"))
	placed := placeBlock(strings.Split(block, "\n"), cellWidth, thumbnailHeight)
	for index, line := range placed {
		placed[index] = panel.Render(ansi.Strip(line))
	}
	return placed
}

// shareImage returns the frame the share sheet offers: the live
// content when one is on screen, otherwise the selected preview.
func (model Model) shareImage() (render.Image, bool) {
	if model.live != nil {
		if image, err := model.liveImage(); err == nil {
			return image, true
		}
		return render.Image{}, false
	}
	if model.mode != store.Gallery {
		return render.Image{}, false
	}
	data, ok := model.currentCell()
	if !ok {
		return render.Image{}, false
	}
	if image, ok := model.captured[data.ID]; ok {
		return image, true
	}
	if entry, ok := model.store.Snapshot(data.ID); ok && entry.State == snapshot.Captured {
		return entry.Image, true
	}
	return render.Image{}, false
}
