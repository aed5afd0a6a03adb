// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/clock"
	"github.com/bureau-foundation/playbook/lib/scenario"
)

// maxSettleMessages caps how many messages an offscreen host processes
// while settling. Content driven by a fast ticker would otherwise keep
// the settle loop busy for the whole delay.
const maxSettleMessages = 512

// Host owns one content instance built from a scenario.
type Host struct {
	scenario scenario.Scenario
	options  Options
	executor Executor
	ctx      scenario.Context
	content  tea.Model
	size     scenario.Size

	// Offscreen hosts run commands themselves and receive the results
	// here. Interactive hosts leave both nil.
	messages chan tea.Msg
	done     chan struct{}
	once     sync.Once
}

// NewOffscreenHost builds content for still capture: the context has
// IsSnapshot set and the host runs the content's commands itself. Call
// Close when finished so pending commands are abandoned.
func NewOffscreenHost(ctx context.Context, s scenario.Scenario, options Options) (*Host, error) {
	host, initCmd, err := build(ctx, s, options, true)
	if err != nil {
		return nil, err
	}
	host.messages = make(chan tea.Msg, 64)
	host.done = make(chan struct{})
	host.run(initCmd)
	return host, nil
}

// NewLiveHost builds content for interactive display. The returned
// command is the content's startup work; the caller's program runs it
// and routes the resulting messages back through Update.
func NewLiveHost(s scenario.Scenario, options Options) (*Host, tea.Cmd, error) {
	return build(context.Background(), s, options, false)
}

func build(ctx context.Context, s scenario.Scenario, options Options, isSnapshot bool) (*Host, tea.Cmd, error) {
	options = options.withDefaults()
	executor := options.Executor
	if executor == nil {
		executor = inlineExecutor{}
	}

	proposed := s.Layout.Proposed(options.Screen)
	host := &Host{
		scenario: s,
		options:  options,
		executor: executor,
		size:     proposed,
		ctx: scenario.Context{
			IsSnapshot:  isSnapshot,
			ColorScheme: options.Scheme,
			Renderer:    NewRenderer(options.Profile, options.Scheme),
			Size:        proposed,
		},
	}

	var startup tea.Cmd
	var buildErr error
	err := executor.Do(ctx, func() {
		location := s.Location()
		if buildErr = guard("factory", location, func() { host.content = s.Make(host.ctx) }); buildErr != nil {
			return
		}
		if host.content == nil {
			buildErr = fmt.Errorf("%w: factory at %s returned nil content", ErrEmptyFrame, location)
			return
		}
		var initCmd, sizeCmd tea.Cmd
		if buildErr = guard("init", location, func() { initCmd = host.content.Init() }); buildErr != nil {
			return
		}
		buildErr = guard("update", location, func() {
			next, cmd := host.content.Update(tea.WindowSizeMsg{Width: proposed.Width, Height: proposed.Height})
			if next != nil {
				host.content = next
			}
			sizeCmd = cmd
		})
		startup = tea.Batch(initCmd, sizeCmd)
	})
	if err != nil {
		return nil, nil, err
	}
	if buildErr != nil {
		return nil, nil, buildErr
	}
	return host, startup, nil
}

// Scenario returns the scenario the host was built from.
func (host *Host) Scenario() scenario.Scenario { return host.scenario }

// Context returns the context the content was built with.
func (host *Host) Context() scenario.Context { return host.ctx }

// Size returns the size most recently offered to the content.
func (host *Host) Size() scenario.Size { return host.size }

// Update delivers a message to the content and returns its command.
// A panic inside the content is returned as an error and leaves the
// previous content in place.
func (host *Host) Update(message tea.Msg) (tea.Cmd, error) {
	var cmd tea.Cmd
	var updateErr error
	err := host.executor.Do(context.Background(), func() {
		updateErr = guard("update", host.scenario.Location(), func() {
			next, nextCmd := host.content.Update(message)
			if next != nil {
				host.content = next
			}
			cmd = nextCmd
		})
	})
	if err != nil {
		return nil, err
	}
	return cmd, updateErr
}

// Resize offers a new size to the content.
func (host *Host) Resize(size scenario.Size) (tea.Cmd, error) {
	host.size = size
	return host.Update(tea.WindowSizeMsg{Width: size.Width, Height: size.Height})
}

// View renders the content's current view.
func (host *Host) View() (string, error) {
	return host.view(context.Background())
}

func (host *Host) view(ctx context.Context) (string, error) {
	var view string
	var viewErr error
	err := host.executor.Do(ctx, func() {
		viewErr = guard("view", host.scenario.Location(), func() { view = host.content.View() })
	})
	if err != nil {
		return "", err
	}
	return view, viewErr
}

// Settle pumps the content's messages until delay has elapsed on
// clock, letting layout and animations reach a steady state. Only
// offscreen hosts settle; interactive hosts return immediately.
func (host *Host) Settle(ctx context.Context, clock clock.Clock, delay time.Duration) error {
	if host.messages == nil {
		return nil
	}
	deadline := clock.After(delay)
	processed := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return nil
		case message := <-host.messages:
			if processed >= maxSettleMessages {
				continue
			}
			processed++
			if err := host.dispatch(ctx, message); err != nil {
				return err
			}
		}
	}
}

// Capture renders the current view into an image sized per the
// scenario's layout.
func (host *Host) Capture(ctx context.Context) (Image, error) {
	view, err := host.view(ctx)
	if err != nil {
		return Image{}, err
	}
	return NewImage(view, host.scenario.Layout, host.options)
}

// Close abandons pending commands and drops the content so the host's
// view tree can be collected. Close is idempotent.
func (host *Host) Close() {
	host.once.Do(func() {
		if host.done != nil {
			close(host.done)
		}
		host.content = nil
	})
}

func (host *Host) dispatch(ctx context.Context, message tea.Msg) error {
	switch message := message.(type) {
	case nil, tea.QuitMsg:
		return nil
	case tea.BatchMsg:
		for _, cmd := range message {
			host.run(cmd)
		}
		return nil
	}

	var cmd tea.Cmd
	var updateErr error
	err := host.executor.Do(ctx, func() {
		updateErr = guard("update", host.scenario.Location(), func() {
			next, nextCmd := host.content.Update(message)
			if next != nil {
				host.content = next
			}
			cmd = nextCmd
		})
	})
	if err != nil {
		return err
	}
	if updateErr != nil {
		return updateErr
	}
	host.run(cmd)
	return nil
}

// run executes cmd on its own goroutine and queues the result. Results
// arriving after Close are dropped, and a panicking command is dropped
// rather than crashing the process.
func (host *Host) run(cmd tea.Cmd) {
	if cmd == nil || host.messages == nil {
		return
	}
	go func() {
		var message tea.Msg
		func() {
			defer func() { _ = recover() }()
			message = cmd()
		}()
		if message == nil {
			return
		}
		select {
		case host.messages <- message:
		case <-host.done:
		}
	}()
}
