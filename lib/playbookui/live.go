// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/store"
)

// liveState is the interactive host for the scenario on screen.
type liveState struct {
	id   playbook.ID
	host *render.Host
	size scenario.Size

	// err is set when the factory, Init, Update, or View panicked. The
	// content is not touched again.
	err error
}

func (model Model) renderOptions(size scenario.Size) render.Options {
	return render.Options{
		Screen:  size,
		Scheme:  model.options.Scheme,
		Profile: model.options.Profile,
	}
}

// openLive replaces the live content with a fresh host for data sized
// to size. The returned command runs the content's startup work.
func (model *Model) openLive(data search.Data, size scenario.Size) tea.Cmd {
	model.closeLive()
	model.liveGeneration++
	model.focus = focusTree

	host, startup, err := render.NewLiveHost(data.Scenario, model.renderOptions(size))
	model.live = &liveState{id: data.ID, host: host, size: size, err: err}
	if err != nil {
		return model.setStatus(data.ID.String()+": "+err.Error(), slog.LevelError)
	}
	model.handle.Set(host)
	return model.wrapContent(startup)
}

// closeLive discards the live content. Messages still in flight for
// it are dropped by generation.
func (model *Model) closeLive() {
	if model.live == nil {
		return
	}
	if model.live.host != nil {
		model.live.host.Close()
	}
	model.handle.Clear()
	model.live = nil
	model.liveGeneration++
}

// layoutLive keeps the live content sized to its pane after a resize,
// and opens the catalog's selection once the screen size is known.
func (model *Model) layoutLive() tea.Cmd {
	if !model.ready {
		return nil
	}
	size, ok := model.liveSize()
	if !ok {
		return nil
	}
	if model.live == nil {
		if model.mode != store.Catalog {
			return nil
		}
		selected := model.store.Selected()
		if selected == nil {
			return nil
		}
		return model.openLive(*selected, size)
	}
	if model.live.err != nil || model.live.host == nil || model.live.size == size {
		return nil
	}
	model.live.size = size
	proposed := model.live.host.Scenario().Layout.Proposed(size)
	cmd, err := model.live.host.Resize(proposed)
	if err != nil {
		model.live.err = err
		return model.setStatus(model.live.id.String()+": "+err.Error(), slog.LevelError)
	}
	return model.wrapContent(cmd)
}

// liveSize returns the size live content gets in the current mode.
func (model Model) liveSize() (scenario.Size, bool) {
	if model.mode == store.Catalog {
		size := model.catalogContentSize()
		return size, !size.Empty()
	}
	if !model.presented {
		return scenario.Size{}, false
	}
	size := model.presentationSize()
	return size, !size.Empty()
}

// wrapContent tags cmd's result with the current generation so it is
// routed back to the content that produced it.
func (model Model) wrapContent(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	generation := model.liveGeneration
	return func() tea.Msg {
		return contentMsg{generation: generation, message: cmd()}
	}
}

// routeContent delivers a content message to the live host.
func (model *Model) routeContent(message contentMsg) tea.Cmd {
	if message.generation != model.liveGeneration || model.live == nil || model.live.err != nil {
		return nil
	}
	switch inner := message.message.(type) {
	case nil, tea.QuitMsg:
		// Content cannot quit the playbook.
		return nil
	case tea.BatchMsg:
		cmds := make([]tea.Cmd, 0, len(inner))
		for _, cmd := range inner {
			cmds = append(cmds, model.wrapContent(cmd))
		}
		return tea.Batch(cmds...)
	}
	return model.updateLive(message.message)
}

// updateLive delivers a message to the live content.
func (model *Model) updateLive(message tea.Msg) tea.Cmd {
	if model.live == nil || model.live.err != nil || model.live.host == nil {
		return nil
	}
	cmd, err := model.live.host.Update(message)
	if err != nil {
		model.live.err = err
		return model.setStatus(model.live.id.String()+": "+err.Error(), slog.LevelError)
	}
	return model.wrapContent(cmd)
}

// liveImage renders the live content's current frame, sized per its
// layout within the pane it was opened for.
func (model Model) liveImage() (render.Image, error) {
	live := model.live
	if live == nil {
		return render.Image{}, render.ErrEmptyFrame
	}
	if live.err != nil {
		return render.Image{}, live.err
	}
	view, err := live.host.View()
	if err != nil {
		live.err = err
		return render.Image{}, err
	}
	return render.NewImage(view, live.host.Scenario().Layout, model.renderOptions(live.size))
}

// renderLive renders the live content into a width x height block,
// centered when it is smaller.
func (model Model) renderLive(width, height int) []string {
	theme := model.theme
	faint := theme.NewStyle().Foreground(theme.FaintText)
	if model.live == nil {
		return placeBlock([]string{faint.Render("No scenario selected")}, width, height)
	}
	image, err := model.liveImage()
	var panicErr *render.RenderPanicError
	switch {
	case errors.Is(err, render.ErrEmptyFrame):
		return placeBlock([]string{faint.Render("(empty frame)")}, width, height)
	case errors.As(err, &panicErr):
		errorStyle := theme.NewStyle().Foreground(theme.Error)
		return placeBlock([]string{
			errorStyle.Render("Scenario panicked"),
			faint.Render(panicErr.Error()),
		}, width, height)
	case err != nil:
		return placeBlock([]string{theme.NewStyle().Foreground(theme.Error).Render(err.Error())}, width, height)
	}
	return placeBlock(image.Lines, width, height)
}
