// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/export"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/snapshot"
	"github.com/bureau-foundation/playbook/lib/store"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// Action identifiers for the actions menu and the share sheet.
const (
	actionNotes        = "notes"
	actionSource       = "source"
	actionShare        = "share"
	actionToggleSearch = "toggle-search"
	actionReload       = "reload"

	shareCopy     = "copy"
	shareCopyANSI = "copy-ansi"
	shareExport   = "export"
)

// sourceContext is how many lines around a scenario's definition the
// source panel shows.
const sourceContext = 8

// panelFooter is the footer of notes and source panels.
const panelFooter = "j/k scroll  Esc close"

// openNotes shows the selected scenario's notes rendered as markdown.
func (model *Model) openNotes() tea.Cmd {
	data, ok := model.selectedData()
	if !ok {
		return nil
	}
	notes := strings.TrimSpace(data.Scenario.Notes)
	if notes == "" {
		return model.setStatus("No notes for "+data.ID.String(), slog.LevelInfo)
	}
	width := max(min(model.width-8, 80), 20)
	rendered := tui.RenderMarkdown(model.theme, notes, width)
	model.panel = &tui.Modal{
		Title:  "Notes: " + data.ID.String(),
		Footer: panelFooter,
		Body:   strings.Split(rendered, "\n"),
	}
	return nil
}

// openSource shows the code around the selected scenario's definition.
func (model *Model) openSource() tea.Cmd {
	data, ok := model.selectedData()
	if !ok {
		return nil
	}
	location := data.Scenario.Location()
	if data.Scenario.File == "" {
		return model.setStatus("No source location for "+data.ID.String(), slog.LevelInfo)
	}
	lines, err := tui.SourceExcerpt(model.theme, data.Scenario.File, data.Scenario.Line, sourceContext)
	if err != nil {
		return model.setStatus(err.Error(), slog.LevelWarn)
	}
	model.panel = &tui.Modal{
		Title:  location,
		Footer: panelFooter,
		Body:   lines,
	}
	return nil
}

// scrollPanel moves the open panel by delta lines.
func (model *Model) scrollPanel(delta int) {
	model.panel.Scroll = min(max(model.panel.Scroll+delta, 0), model.panel.MaxScroll(model.height))
}

// openActions opens the actions menu below the header.
func (model *Model) openActions() {
	options := []tui.DropdownOption{
		{Label: "Notes", Value: actionNotes, Key: "n"},
		{Label: "Source", Value: actionSource, Key: "s"},
		{Label: "Share frame", Value: actionShare, Key: "y"},
	}
	if model.mode == store.Gallery {
		options = append(options,
			tui.DropdownOption{Label: "Toggle search", Value: actionToggleSearch, Key: "/"},
			tui.DropdownOption{Label: "Reload previews", Value: actionReload, Key: "r"},
		)
	}
	model.actions = &tui.DropdownOverlay{Options: options, AnchorY: 1}
	model.actions.AnchorX = max(model.width-model.actions.Width()-1, 0)
}

// runAction performs an actions menu entry.
func (model *Model) runAction(value string) tea.Cmd {
	model.actions = nil
	switch value {
	case actionNotes:
		return model.openNotes()
	case actionSource:
		return model.openSource()
	case actionShare:
		return model.openShare()
	case actionToggleSearch:
		model.store.SetSearchTreeVisible(!model.store.SearchTreeVisible())
		return model.layoutLive()
	case actionReload:
		return model.reload()
	}
	return nil
}

// reload discards the session's previews and restarts the batch.
func (model *Model) reload() tea.Cmd {
	clear(model.captured)
	clear(model.capturing)
	clear(model.states)
	prepared := model.store.Prepare(model.ctx)
	return tea.Batch(
		waitForPrepared(model.ctx, prepared),
		model.spinner.Tick,
		model.setStatus("Reloading previews", slog.LevelInfo),
	)
}

// shareSheet offers what to do with a shared frame.
type shareSheet struct {
	id     playbook.ID
	layout scenario.Layout
	menu   tui.DropdownOverlay
}

func newShareSheet(id playbook.ID, layout scenario.Layout) *shareSheet {
	return &shareSheet{
		id:     id,
		layout: layout,
		menu: tui.DropdownOverlay{Options: []tui.DropdownOption{
			{Label: "Copy text", Value: shareCopy, Key: "c"},
			{Label: "Copy with colors", Value: shareCopyANSI, Key: "a"},
			{Label: "Export files", Value: shareExport, Key: "e"},
		}},
	}
}

func (sheet *shareSheet) render(theme tui.Theme, width, height int) ([]string, int, int) {
	modal := tui.Modal{
		Title:  "Share " + sheet.id.String(),
		Footer: "Enter choose  Esc cancel",
		Body:   sheet.menu.Render(theme),
	}
	return modal.Render(theme, width, height)
}

// openShare requests a share of the frame on screen and opens the
// sheet for it.
func (model *Model) openShare() tea.Cmd {
	data, ok := model.selectedData()
	if model.live != nil && model.live.host != nil {
		data.ID, data.Scenario, ok = model.live.id, model.live.host.Scenario(), true
	}
	if !ok {
		return nil
	}
	image, ok := model.shareImage()
	if !ok {
		entry, _ := model.store.Snapshot(data.ID)
		if model.mode == store.Gallery && entry.State != snapshot.Captured {
			return model.setStatus("No frame to share yet for "+data.ID.String(), slog.LevelInfo)
		}
		return model.setStatus("Nothing to share", slog.LevelInfo)
	}
	model.store.Share(image)
	model.sheet = newShareSheet(data.ID, data.Scenario.Layout)
	return nil
}

// closeShare dismisses the sheet and the store's share request.
func (model *Model) closeShare() {
	model.sheet = nil
	model.store.DismissShare()
}

// runShare performs a share sheet entry on the pending frame.
func (model *Model) runShare(action string) tea.Cmd {
	sheet := model.sheet
	image, ok := model.store.ShareItem()
	model.closeShare()
	if !ok || sheet == nil {
		return nil
	}

	switch action {
	case shareCopy, shareCopyANSI:
		text := image.Plain()
		if action == shareCopyANSI {
			text = image.String()
		}
		if err := model.options.Clipboard(text); err != nil {
			return model.setStatus("copy failed: "+err.Error(), slog.LevelError)
		}
		return model.setStatus("Copied "+sheet.id.String(), slog.LevelInfo)

	case shareExport:
		shot := export.NewShot(sheet.id, sheet.layout, image)
		written, err := export.WriteFiles(model.options.ExportDir, []export.Shot{shot})
		if err != nil {
			return model.setStatus("export failed: "+err.Error(), slog.LevelError)
		}
		return model.setStatus(fmt.Sprintf("Exported %s", strings.Join(written, ", ")), slog.LevelInfo)
	}
	return nil
}
