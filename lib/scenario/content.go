// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import tea "github.com/charmbracelet/bubbletea"

// Content is a renderable content instance.
type Content = tea.Model

// Factory is the canonical content constructor.
type Factory func(Context) Content

// Model adapts a context-aware model constructor.
func Model(build func(Context) tea.Model) Factory {
	return func(ctx Context) Content { return build(ctx) }
}

// ModelFunc adapts a model constructor that ignores the context.
func ModelFunc(build func() tea.Model) Factory {
	return func(Context) Content { return build() }
}

// View adapts a context-aware view function. The string is hosted in a
// minimal model that re-renders it on every View call.
func View(render func(Context) string) Factory {
	return func(ctx Context) Content {
		return &viewHost{ctx: ctx, render: render}
	}
}

// ViewFunc adapts a view function that ignores the context.
func ViewFunc(render func() string) Factory {
	return View(func(Context) string { return render() })
}

// viewHost hosts a bare view. Window size messages update the context
// size so the view can lay itself out against the host.
type viewHost struct {
	ctx    Context
	render func(Context) string
}

func (host *viewHost) Init() tea.Cmd { return nil }

func (host *viewHost) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := message.(tea.WindowSizeMsg); ok {
		host.ctx.Size = Size{Width: size.Width, Height: size.Height}
	}
	return host, nil
}

func (host *viewHost) View() string { return host.render(host.ctx) }
