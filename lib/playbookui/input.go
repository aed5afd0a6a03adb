// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/store"
)

// handleKey routes a key press to whichever layer owns the keyboard:
// the share sheet, the actions menu, an open panel, the search bar,
// presented or focused content, and finally browsing.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, model.quit()
	}

	switch {
	case model.sheet != nil:
		return model, model.handleShareKey(message)
	case model.actions != nil:
		return model, model.handleActionsKey(message)
	case model.panel != nil:
		model.handlePanelKey(message)
		return model, nil
	case model.searching:
		return model, model.handleSearchKey(message)
	case model.presented:
		switch {
		case key.Matches(message, model.keys.Back):
			model.dismiss()
			return model, nil
		case key.Matches(message, model.keys.ShareContent):
			return model, model.openShare()
		}
		return model, model.updateLive(message)
	case model.mode == store.Catalog && model.focus == focusContent:
		switch {
		case key.Matches(message, model.keys.FocusToggle):
			model.focus = focusTree
			return model, nil
		case key.Matches(message, model.keys.ShareContent):
			return model, model.openShare()
		}
		return model, model.updateLive(message)
	}
	return model, model.handleBrowseKey(message)
}

func (model *Model) handleShareKey(message tea.KeyMsg) tea.Cmd {
	menu := &model.sheet.menu
	switch {
	case key.Matches(message, model.keys.Back):
		model.closeShare()
	case key.Matches(message, model.keys.Up):
		menu.MoveUp()
	case key.Matches(message, model.keys.Down):
		menu.MoveDown()
	case key.Matches(message, model.keys.Select):
		if option, ok := menu.Selected(); ok {
			return model.runShare(option.Value)
		}
	default:
		if menu.SelectKey(message.String()) {
			option, _ := menu.Selected()
			return model.runShare(option.Value)
		}
	}
	return nil
}

func (model *Model) handleActionsKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Actions):
		model.actions = nil
	case key.Matches(message, model.keys.Up):
		model.actions.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.actions.MoveDown()
	case key.Matches(message, model.keys.Select):
		if option, ok := model.actions.Selected(); ok {
			return model.runAction(option.Value)
		}
	default:
		if model.actions.SelectKey(message.String()) {
			option, _ := model.actions.Selected()
			return model.runAction(option.Value)
		}
	}
	return nil
}

func (model *Model) handlePanelKey(message tea.KeyMsg) {
	_, page := model.panel.InnerSize(model.width, model.height)
	switch {
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Quit),
		key.Matches(message, model.keys.Notes), key.Matches(message, model.keys.Source):
		model.panel = nil
	case key.Matches(message, model.keys.Up):
		model.scrollPanel(-1)
	case key.Matches(message, model.keys.Down):
		model.scrollPanel(1)
	case key.Matches(message, model.keys.PageUp):
		model.scrollPanel(-page)
	case key.Matches(message, model.keys.PageDown):
		model.scrollPanel(page)
	case key.Matches(message, model.keys.Home):
		model.panel.Scroll = 0
	case key.Matches(message, model.keys.End):
		model.panel.Scroll = model.panel.MaxScroll(model.height)
	}
}

func (model *Model) handleSearchKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		model.clearSearch()
		return model.layoutLive()
	case key.Matches(message, model.keys.Select):
		model.searching = false
		model.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	value := model.search.Value()
	model.store.SetSearchText(&value)
	model.afterSearch()
	return cmd
}

// clearSearch ends searching, restores the full result, and closes
// the gallery's search drawer.
func (model *Model) clearSearch() {
	model.searching = false
	model.search.Blur()
	model.search.SetValue("")
	model.store.SetSearchText(nil)
	if model.mode == store.Gallery {
		model.store.SetSearchTreeVisible(false)
	}
	model.afterSearch()
}

// afterSearch refreshes the tree or grid for a new result.
func (model *Model) afterSearch() {
	model.rebuildRows()
	if model.mode == store.Gallery {
		model.gridCursor = 0
		model.clampGrid()
	}
}

func (model *Model) handleBrowseKey(message tea.KeyMsg) tea.Cmd {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return model.quit()
	case key.Matches(message, keys.Search):
		model.searching = true
		if model.mode == store.Gallery {
			model.store.SetSearchTreeVisible(true)
		}
		return tea.Batch(model.search.Focus(), model.layoutLive())
	case key.Matches(message, keys.Back):
		if model.store.SearchText() != nil || model.store.SearchTreeVisible() {
			model.clearSearch()
			return model.layoutLive()
		}
		return nil
	case key.Matches(message, keys.Notes):
		return model.openNotes()
	case key.Matches(message, keys.Source):
		return model.openSource()
	case key.Matches(message, keys.Actions):
		model.openActions()
		return nil
	case key.Matches(message, keys.Share), key.Matches(message, keys.ShareContent):
		return model.openShare()
	}

	if model.mode == store.Catalog {
		return model.handleCatalogKey(message)
	}
	return model.handleGalleryKey(message)
}

func (model *Model) handleCatalogKey(message tea.KeyMsg) tea.Cmd {
	keys := model.keys
	page := max(model.bodyHeight()-1, 1)
	switch {
	case key.Matches(message, keys.Up):
		return model.moveCursor(-1)
	case key.Matches(message, keys.Down):
		return model.moveCursor(1)
	case key.Matches(message, keys.PageUp):
		return model.moveCursor(-page)
	case key.Matches(message, keys.PageDown):
		return model.moveCursor(page)
	case key.Matches(message, keys.Home):
		return model.moveCursor(-len(model.rows))
	case key.Matches(message, keys.End):
		return model.moveCursor(len(model.rows))
	case key.Matches(message, keys.Left):
		model.collapseOrGoToHeader()
	case key.Matches(message, keys.Right):
		return model.expandOrEnter()
	case key.Matches(message, keys.Select):
		if len(model.rows) == 0 {
			return nil
		}
		if current := model.rows[model.cursor]; current.header {
			model.store.ToggleKind(current.group.Kind)
			model.rebuildRows()
			return nil
		}
		model.focusContent()
	case key.Matches(message, keys.FocusToggle):
		model.focusContent()
	}
	return nil
}

// focusContent hands the keyboard to the catalog's live content when
// it is running.
func (model *Model) focusContent() {
	if model.live != nil && model.live.err == nil {
		model.focus = focusContent
	}
}

func (model *Model) handleGalleryKey(message tea.KeyMsg) tea.Cmd {
	keys := model.keys
	page := max(model.bodyHeight()/(thumbnailHeight+2), 1)
	switch {
	case key.Matches(message, keys.Left):
		return model.moveGrid(-1)
	case key.Matches(message, keys.Right):
		return model.moveGrid(1)
	case key.Matches(message, keys.Up):
		return model.moveGridVertical(-1)
	case key.Matches(message, keys.Down):
		return model.moveGridVertical(1)
	case key.Matches(message, keys.PageUp):
		for range page {
			model.stepGridVertical(-1)
		}
		return model.captureIfDeferred()
	case key.Matches(message, keys.PageDown):
		for range page {
			model.stepGridVertical(1)
		}
		return model.captureIfDeferred()
	case key.Matches(message, keys.Home):
		return model.moveGrid(-model.gridCursor)
	case key.Matches(message, keys.End):
		return model.moveGrid(model.store.Result().MatchedCount)
	case key.Matches(message, keys.Select):
		return model.present()
	}
	return nil
}
