// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/scenario"
)

// treeWidth is the catalog's tree pane width, scrollbar included.
func (model Model) treeWidth() int {
	return min(min(max(model.width/3, 24), 40), max(model.width-2, 1))
}

// catalogContentSize is the pane live content gets next to the tree.
func (model Model) catalogContentSize() scenario.Size {
	return scenario.Size{
		Width:  max(model.width-model.treeWidth()-1, 0),
		Height: model.bodyHeight(),
	}
}

// syncCatalogSelection follows the store's selection: the cursor moves
// to it and live content is rebuilt when it changed.
func (model *Model) syncCatalogSelection() tea.Cmd {
	selected := model.store.Selected()
	if selected == nil {
		model.closeLive()
		return nil
	}
	if model.live != nil && model.live.id == selected.ID {
		return nil
	}
	if index := model.rowIndex(selected.ID); index >= 0 {
		model.cursor = index
	}
	if !model.ready {
		return nil
	}
	return model.openLive(*selected, model.catalogContentSize())
}

// renderCatalog renders the tree pane, a divider, and the live content
// pane side by side.
func (model Model) renderCatalog(height int) []string {
	treeWidth := model.treeWidth()
	content := model.catalogContentSize()
	tree := model.renderTree(treeWidth, height)
	live := model.renderLive(content.Width, height)

	dividerColor := model.theme.BorderColor
	if model.focus == focusContent {
		dividerColor = model.theme.Accent
	}
	divider := model.theme.NewStyle().Foreground(dividerColor).Render("│")

	lines := make([]string, height)
	for index := range lines {
		lines[index] = tree[index] + divider + live[index]
	}
	return lines
}
