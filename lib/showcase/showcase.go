// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package showcase

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// Kinds registered by Register, in order.
const (
	KindTheme     scenario.Kind = "Theme"
	KindScrollbar scenario.Kind = "Scrollbar"
	KindDropdown  scenario.Kind = "Dropdown"
	KindModal     scenario.Kind = "Modal"
	KindHeat      scenario.Kind = "Heat"
	KindMarkdown  scenario.Kind = "Markdown"
	KindSource    scenario.Kind = "Source"
	KindInput     scenario.Kind = "Input"
)

// Register adds the showcase scenarios to registry.
func Register(registry *playbook.Playbook) {
	registry.Add(KindTheme,
		scenario.New("palette", scenario.SizeThatFits(), scenario.View(palette),
			scenario.WithNotes(paletteNotes)),
	)

	registry.Add(KindScrollbar,
		scrollbarScenario("top", 0, true),
		scrollbarScenario("middle", 45, true),
		scrollbarScenario("bottom", 90, true),
		scrollbarScenario("unfocused", 45, false),
	)

	registry.Add(KindDropdown,
		scenario.New("actions", scenario.Fixed(40, 10), scenario.Model(newDropdownDemo),
			scenario.WithNotes("Use **j/k** to move and **Enter** to choose. Shortcut keys select directly.")),
	)

	registry.Add(KindModal,
		scenario.New("over list", scenario.Fill(), scenario.View(modalOverList),
			scenario.WithStyle(scenario.Full)),
		scenario.New("scrolled", scenario.Fixed(60, 14), scenario.View(modalScrolled)),
	)

	registry.Add(KindHeat,
		scenario.New("glow", scenario.Fixed(36, 6), scenario.Model(newHeatDemo),
			scenario.WithNotes("Rows glow when they change and fade over three seconds.")),
	)

	registry.Add(KindMarkdown,
		scenario.New("notes", scenario.FixedWidth(64), scenario.View(markdownNotes)),
	)

	_, file, line, _ := runtime.Caller(0)
	registry.Add(KindSource,
		scenario.New("excerpt", scenario.SizeThatFits(), scenario.View(func(ctx scenario.Context) string {
			return sourceExcerpt(ctx, file, line)
		})),
	)

	registry.Add(KindInput,
		scenario.New("search bar", scenario.Fixed(40, 3), scenario.Model(newSearchDemo)),
		scenario.New("spinner", scenario.SizeThatFits(), scenario.Model(newSpinnerDemo)),
	)
}

// theme returns the default theme drawn with the context's renderer.
func theme(ctx scenario.Context) tui.Theme {
	return tui.DefaultTheme.WithRenderer(ctx.Renderer)
}

const paletteNotes = `The **default theme**. Every color is adaptive: the light value
applies on light backgrounds and the dark value on dark ones.

Capture this scenario in both schemes to compare.`

func palette(ctx scenario.Context) string {
	current := theme(ctx)
	var lines []string
	for _, swatch := range current.Swatches() {
		chip := current.NewStyle().Background(swatch.Color).Render("    ")
		lines = append(lines, fmt.Sprintf("%s %s", chip, swatch.Name))
	}
	return strings.Join(lines, "\n")
}

func scrollbarScenario(name scenario.Name, offset int, focused bool) scenario.Scenario {
	_, file, line, _ := runtime.Caller(1)
	return scenario.New(name, scenario.Fixed(24, 10), scenario.View(func(ctx scenario.Context) string {
		current := theme(ctx)
		const total, visible = 100, 10
		bar := strings.Split(tui.RenderScrollbar(current, visible, total, visible, offset, focused), "\n")
		lines := make([]string, visible)
		for index := range lines {
			lines[index] = fmt.Sprintf("%-20s %s", fmt.Sprintf("item %d", offset+index+1), bar[index])
		}
		return strings.Join(lines, "\n")
	}), scenario.WithSource(file, line))
}

// dropdownDemo is an interactive actions menu.
type dropdownDemo struct {
	theme  tui.Theme
	menu   tui.DropdownOverlay
	chosen string
}

func newDropdownDemo(ctx scenario.Context) tea.Model {
	return &dropdownDemo{
		theme: theme(ctx),
		menu: tui.DropdownOverlay{
			AnchorX: 2,
			AnchorY: 1,
			Options: []tui.DropdownOption{
				{Label: "Open", Value: "open", Key: "o"},
				{Label: "Rename", Value: "rename", Key: "r"},
				{Label: "Duplicate", Value: "duplicate", Key: "d"},
				{Label: "Delete", Value: "delete", Key: "x"},
			},
		},
	}
}

func (demo *dropdownDemo) Init() tea.Cmd { return nil }

func (demo *dropdownDemo) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return demo, nil
	}
	switch keyMessage.String() {
	case "j", "down":
		demo.menu.MoveDown()
	case "k", "up":
		demo.menu.MoveUp()
	case "enter":
		if option, ok := demo.menu.Selected(); ok {
			demo.chosen = option.Value
		}
	default:
		if demo.menu.SelectKey(keyMessage.String()) {
			option, _ := demo.menu.Selected()
			demo.chosen = option.Value
		}
	}
	return demo, nil
}

func (demo *dropdownDemo) View() string {
	status := "nothing chosen"
	if demo.chosen != "" {
		status = "chose " + demo.chosen
	}
	background := strings.Join([]string{
		demo.theme.NewStyle().Bold(true).Render("Files"),
		"", "", "", "", "", "", "",
		demo.theme.NewStyle().Foreground(demo.theme.FaintText).Render(status),
	}, "\n")
	return tui.SpliceOverlay(background, demo.menu.Render(demo.theme), demo.menu.AnchorX, demo.menu.AnchorY)
}

func modalOverList(ctx scenario.Context) string {
	current := theme(ctx)
	width, height := ctx.Size.Width, ctx.Size.Height
	faint := current.NewStyle().Foreground(current.FaintText)
	lines := make([]string, height)
	for index := range lines {
		lines[index] = faint.Render(fmt.Sprintf("%3d  background row", index+1))
	}
	modal := tui.Modal{
		Title:  "Confirm",
		Footer: "Enter accept  Esc cancel",
		Body: []string{
			"Delete 3 scenarios?",
			"",
			current.NewStyle().Foreground(current.Warning).Render("This cannot be undone."),
		},
	}
	overlay, x, y := modal.Render(current, width, height)
	return tui.SpliceOverlay(strings.Join(lines, "\n"), overlay, x, y)
}

func modalScrolled(ctx scenario.Context) string {
	current := theme(ctx)
	body := make([]string, 30)
	for index := range body {
		body[index] = fmt.Sprintf("line %d of the panel body", index+1)
	}
	modal := tui.Modal{Title: "Long panel", Footer: "scrolled to line 11", Body: body, Scroll: 10}
	overlay, x, y := modal.Render(current, ctx.Size.Width, ctx.Size.Height)
	return tui.SpliceOverlay(strings.Repeat("\n", max(ctx.Size.Height-1, 0)), overlay, x, y)
}

// heatDemo ignites one row per tick so several glows are visible at
// different strengths. Snapshots freeze the first frame.
type heatDemo struct {
	theme    tui.Theme
	snapshot bool
	heat     *tui.HeatTracker
	rows     []string
	next     int
	now      time.Time
}

type heatTick time.Time

func newHeatDemo(ctx scenario.Context) tea.Model {
	demo := &heatDemo{
		theme:    theme(ctx),
		snapshot: ctx.IsSnapshot,
		heat:     tui.NewHeatTracker(),
		rows:     []string{"checkout", "payment", "receipt", "refund"},
		now:      time.Unix(0, 0),
	}
	// A fixed spread of strengths for still captures.
	demo.heat.Ignite("checkout", tui.HeatCaptured, demo.now)
	demo.heat.Ignite("payment", tui.HeatCaptured, demo.now.Add(-tui.HeatDecayDuration/3))
	demo.heat.Ignite("receipt", tui.HeatFailed, demo.now)
	return demo
}

func (demo *heatDemo) tick() tea.Cmd {
	return tea.Tick(tui.HeatDecayDuration/4, func(now time.Time) tea.Msg { return heatTick(now) })
}

func (demo *heatDemo) Init() tea.Cmd {
	if demo.snapshot {
		return nil
	}
	return demo.tick()
}

func (demo *heatDemo) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if now, ok := message.(heatTick); ok {
		demo.now = time.Time(now)
		kind := tui.HeatCaptured
		if demo.next%3 == 2 {
			kind = tui.HeatFailed
		}
		demo.heat.Ignite(demo.rows[demo.next%len(demo.rows)], kind, demo.now)
		demo.next++
		return demo, demo.tick()
	}
	return demo, nil
}

func (demo *heatDemo) View() string {
	lines := []string{demo.theme.NewStyle().Bold(true).Render("Recent captures")}
	for _, name := range demo.rows {
		style := demo.theme.NewStyle().Foreground(demo.theme.NormalText)
		if tint, hot := demo.heat.Accent(demo.theme, name, demo.now); hot {
			style = style.Background(tint)
		}
		lines = append(lines, style.Render(fmt.Sprintf(" %-10s %3.0f%% ", name, demo.heat.Heat(name, demo.now)*100)))
	}
	return strings.Join(lines, "\n")
}

const sampleMarkdown = "## Button\n\n" +
	"A **primary** action. Use at most one per view.\n\n" +
	"- Label with a verb\n" +
	"- Keep it short\n" +
	"  - two words is ideal\n\n" +
	"> Disabled buttons still take focus.\n\n" +
	"```go\nbutton := NewButton(\"Save\")\n```\n\n" +
	"See [guidelines](https://example.com/buttons).\n"

func markdownNotes(ctx scenario.Context) string {
	return tui.RenderMarkdown(theme(ctx), sampleMarkdown, max(ctx.Size.Width, 20))
}

func sourceExcerpt(ctx scenario.Context, file string, line int) string {
	current := theme(ctx)
	lines, err := tui.SourceExcerpt(current, file, line, 4)
	if err != nil {
		// Binaries run away from their source tree have nothing to show.
		return current.NewStyle().Foreground(current.FaintText).Render("source unavailable: " + err.Error())
	}
	return strings.Join(lines, "\n")
}

// searchDemo is a focused search bar.
type searchDemo struct {
	input textinput.Model
}

func newSearchDemo(ctx scenario.Context) tea.Model {
	current := theme(ctx)
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search scenarios"
	input.PromptStyle = current.NewStyle().Foreground(current.Accent)
	input.PlaceholderStyle = current.NewStyle().Foreground(current.FaintText)
	input.Width = 30
	input.Focus()
	return &searchDemo{input: input}
}

func (demo *searchDemo) Init() tea.Cmd { return nil }

func (demo *searchDemo) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	demo.input, cmd = demo.input.Update(message)
	return demo, cmd
}

func (demo *searchDemo) View() string {
	return demo.input.View()
}

// spinnerDemo shows the spinner the gallery uses while preparing.
type spinnerDemo struct {
	theme    tui.Theme
	spinner  spinner.Model
	snapshot bool
}

func newSpinnerDemo(ctx scenario.Context) tea.Model {
	current := theme(ctx)
	return &spinnerDemo{
		theme: current,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(current.NewStyle().Foreground(current.Accent)),
		),
		snapshot: ctx.IsSnapshot,
	}
}

func (demo *spinnerDemo) Init() tea.Cmd {
	if demo.snapshot {
		return nil
	}
	return demo.spinner.Tick
}

func (demo *spinnerDemo) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	demo.spinner, cmd = demo.spinner.Update(message)
	return demo, cmd
}

func (demo *spinnerDemo) View() string {
	return demo.spinner.View() + " " + demo.theme.NewStyle().Foreground(demo.theme.FaintText).Render("Preparing snapshots ...")
}
