// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/playbook/lib/clock"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/snapshot"
	"github.com/bureau-foundation/playbook/lib/store"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// DefaultExportDir is where the share sheet's export writes frames
// when Options.ExportDir is empty.
const DefaultExportDir = "snapshots"

// Options configure a Model.
type Options struct {
	// Theme styles the chrome. The zero value uses tui.DefaultTheme.
	Theme tui.Theme

	// Keys overrides DefaultKeyMap.
	Keys *KeyMap

	// Clock drives the status fade and heat animation. Nil uses the
	// real clock.
	Clock clock.Clock

	// Scheme and Profile configure the renderer live content is built
	// with. They should describe the terminal the program runs in.
	Scheme  scenario.ColorScheme
	Profile termenv.Profile

	// ExportDir receives frames exported from the share sheet.
	ExportDir string

	// Clipboard copies text for the share sheet. Nil writes an OSC 52
	// sequence to the controlling terminal.
	Clipboard func(string) error

	// Handle, when set, tracks the live host currently on screen.
	Handle *render.Handle
}

type focusRegion int

const (
	focusTree focusRegion = iota
	focusContent
)

// changedMsg reports that the store changed.
type changedMsg struct{}

// preparedMsg reports that the snapshot batch is ready.
type preparedMsg struct{}

// contentMsg carries a message produced by live content back to it.
// Messages from a replaced host carry a stale generation and are
// dropped.
type contentMsg struct {
	generation uint64
	message    tea.Msg
}

// captureMsg delivers an on-demand capture of a deferred preview.
type captureMsg struct {
	id    playbook.ID
	image render.Image
	err   error
}

// heatTickMsg drives the preview glow animation.
type heatTickMsg struct{}

// statusFadeMsg clears the status message it was scheduled for.
type statusFadeMsg struct {
	sequence int
}

// Model is the bubbletea model for a catalog or gallery session. The
// mode comes from the store.
type Model struct {
	store   *store.Store
	mode    store.Mode
	options Options
	theme   tui.Theme
	keys    KeyMap
	clock   clock.Clock
	ctx     context.Context
	cancel  context.CancelFunc

	width  int
	height int
	ready  bool

	search    textinput.Model
	searching bool
	spinner   spinner.Model

	// Catalog tree.
	rows   []row
	cursor int
	focus  focusRegion

	// Gallery grid.
	gridCursor int
	presented  bool
	style      scenario.PresentationStyle
	captured   map[playbook.ID]render.Image
	capturing  map[playbook.ID]bool

	// Live content for the catalog's selection or the gallery's
	// presentation.
	live           *liveState
	liveGeneration uint64
	handle         *render.Handle

	heat        *tui.HeatTracker
	states      map[playbook.ID]snapshot.EntryState
	heatTicking bool

	panel   *tui.Modal
	actions *tui.DropdownOverlay
	sheet   *shareSheet

	status         string
	statusLevel    slog.Level
	statusSequence int
}

// New creates a model over store. The caller closes the store after
// the program exits.
func New(session *store.Store, options Options) Model {
	if options.Theme.NormalText == (lipgloss.AdaptiveColor{}) {
		options.Theme = tui.DefaultTheme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.ExportDir == "" {
		options.ExportDir = DefaultExportDir
	}
	if options.Clipboard == nil {
		options.Clipboard = tui.CopyToClipboard
	}
	handle := options.Handle
	if handle == nil {
		handle = &render.Handle{}
	}

	theme := options.Theme
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search scenarios"
	input.CharLimit = 128
	input.PromptStyle = theme.NewStyle().Foreground(theme.Accent)
	input.PlaceholderStyle = theme.NewStyle().Foreground(theme.FaintText)

	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.NewStyle().Foreground(theme.Accent)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	model := Model{
		store:     session,
		mode:      session.Mode(),
		options:   options,
		theme:     theme,
		keys:      keys,
		clock:     options.Clock,
		ctx:       ctx,
		cancel:    cancel,
		search:    input,
		spinner:   spin,
		captured:  make(map[playbook.ID]render.Image),
		capturing: make(map[playbook.ID]bool),
		handle:    handle,
		heat:      tui.NewHeatTracker(),
		states:    make(map[playbook.ID]snapshot.EntryState),
	}
	model.rebuildRows()
	return model
}

// Init implements tea.Model. It marks the session as appeared, which
// selects the first scenario, and in gallery mode starts the snapshot
// batch.
func (model Model) Init() tea.Cmd {
	model.store.Appear()
	if selected := model.store.Selected(); selected != nil && model.mode == store.Catalog {
		model.store.SetOpened(selected.Kind(), true)
	}
	cmds := []tea.Cmd{waitForChange(model.ctx, model.store.Changes())}
	if model.mode == store.Gallery {
		prepared := model.store.Prepare(model.ctx)
		cmds = append(cmds, waitForPrepared(model.ctx, prepared), model.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks until the store reports a change.
func waitForChange(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return changedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForPrepared(ctx context.Context, prepared <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-prepared:
			return preparedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.search.Width = max(model.width-lipgloss.Width(model.search.Prompt)-1, 1)
		return model, model.layoutLive()

	case tea.KeyMsg:
		return model.handleKey(message)

	case changedMsg:
		cmd := model.sync()
		return model, tea.Batch(waitForChange(model.ctx, model.store.Changes()), cmd)

	case preparedMsg:
		return model, model.captureIfDeferred()

	case contentMsg:
		return model, model.routeContent(message)

	case captureMsg:
		delete(model.capturing, message.id)
		if message.err != nil {
			model.heat.Ignite(heatKey(message.id), tui.HeatFailed, model.clock.Now())
			return model, tea.Batch(
				model.setStatus("capture failed: "+message.err.Error(), slog.LevelWarn),
				model.startHeat(),
			)
		}
		model.captured[message.id] = message.image
		model.heat.Ignite(heatKey(message.id), tui.HeatCaptured, model.clock.Now())
		return model, model.startHeat()

	case spinner.TickMsg:
		if model.store.Status() != snapshot.Standby {
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case heatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			return model, model.tickHeat()
		}
		model.heatTicking = false

	case logRecordMsg:
		return model, model.setStatus(message.Summary, message.Level)

	case statusFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}

	default:
		if model.searching {
			var cmd tea.Cmd
			model.search, cmd = model.search.Update(message)
			return model, cmd
		}
	}
	return model, nil
}

// sync brings the model up to date with the store after a change.
func (model *Model) sync() tea.Cmd {
	model.rebuildRows()
	var cmds []tea.Cmd
	if model.mode == store.Catalog {
		cmds = append(cmds, model.syncCatalogSelection())
	} else {
		model.clampGrid()
		model.trackSnapshots()
		cmds = append(cmds, model.startHeat())
	}
	return tea.Batch(cmds...)
}

// trackSnapshots ignites the glow of previews whose capture just
// finished or failed.
func (model *Model) trackSnapshots() {
	now := model.clock.Now()
	for _, data := range model.store.Result().Flatten() {
		entry, ok := model.store.Snapshot(data.ID)
		if !ok {
			continue
		}
		previous := model.states[data.ID]
		if entry.State == previous {
			continue
		}
		model.states[data.ID] = entry.State
		switch entry.State {
		case snapshot.Captured:
			model.heat.Ignite(heatKey(data.ID), tui.HeatCaptured, now)
		case snapshot.Unavailable:
			model.heat.Ignite(heatKey(data.ID), tui.HeatFailed, now)
		}
	}
}

func heatKey(id playbook.ID) string { return id.String() }

// startHeat schedules the animation tick if something is glowing and
// no tick is pending.
func (model *Model) startHeat() tea.Cmd {
	if model.heatTicking || !model.heat.HasHot(model.clock.Now()) {
		return nil
	}
	model.heatTicking = true
	return model.tickHeat()
}

func (model Model) tickHeat() tea.Cmd {
	after := model.clock.After(tui.HeatTickInterval)
	return func() tea.Msg {
		<-after
		return heatTickMsg{}
	}
}

// setStatus shows text in the status bar until it fades.
func (model *Model) setStatus(text string, level slog.Level) tea.Cmd {
	model.statusSequence++
	model.status = text
	model.statusLevel = level
	return model.fadeAfter(logRecordFadeDelay, model.statusSequence)
}

func (model Model) fadeAfter(delay time.Duration, sequence int) tea.Cmd {
	after := model.clock.After(delay)
	ctx := model.ctx
	return func() tea.Msg {
		select {
		case <-after:
			return statusFadeMsg{sequence: sequence}
		case <-ctx.Done():
			return nil
		}
	}
}

// quit tears down live content and stops background waits.
func (model *Model) quit() tea.Cmd {
	model.closeLive()
	model.cancel()
	return tea.Quit
}

// selectedData returns the scenario the keyboard is on: the tree row in
// the catalog or the grid cell in the gallery.
func (model Model) selectedData() (search.Data, bool) {
	if model.mode == store.Gallery {
		return model.currentCell()
	}
	if model.cursor >= 0 && model.cursor < len(model.rows) && !model.rows[model.cursor].header {
		return model.rows[model.cursor].data, true
	}
	if selected := model.store.Selected(); selected != nil {
		return *selected, true
	}
	return search.Data{}, false
}
