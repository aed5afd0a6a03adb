// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/clock"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/snapshot"
	"github.com/bureau-foundation/playbook/lib/store"
	"github.com/bureau-foundation/playbook/lib/testutil"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testRegistry registers three scenarios in two kinds:
// Button/primary, Button/secondary, and Badge/new.
func testRegistry(extra ...scenario.Option) *playbook.Playbook {
	label := func(text string) scenario.Factory {
		return scenario.ViewFunc(func() string { return text })
	}
	options := append([]scenario.Option{scenario.WithDelay(0)}, extra...)
	registry := playbook.New()
	registry.Add("Button",
		scenario.New("primary", scenario.Fixed(20, 1), label("primary button"), options...),
		scenario.New("secondary", scenario.Fixed(20, 1), label("secondary button"), options...),
	)
	registry.Add("Badge",
		scenario.New("new", scenario.Fixed(10, 1), label("new badge"), options...),
	)
	return registry
}

type testSession struct {
	model     Model
	store     *store.Store
	clock     *clock.FakeClock
	clipboard []string
}

// newTestSession builds a sized model over registry. The store's
// change notification from Appear is applied directly instead of
// through the command that waits for it.
func newTestSession(t *testing.T, registry *playbook.Playbook, mode store.Mode, limit int) *testSession {
	t.Helper()
	fake := clock.Fake(testEpoch)
	session := &testSession{clock: fake}
	session.store = store.New(registry, store.Config{
		Mode:     mode,
		Snapshot: snapshot.Config{Limit: limit, Clock: fake},
	})
	t.Cleanup(session.store.Close)

	session.model = New(session.store, Options{
		Clock:     fake,
		ExportDir: t.TempDir(),
		Clipboard: func(text string) error {
			session.clipboard = append(session.clipboard, text)
			return nil
		},
	})
	t.Cleanup(func() { session.model.cancel() })

	session.model.store.Appear()
	if selected := session.store.Selected(); selected != nil && mode == store.Catalog {
		session.store.SetOpened(selected.Kind(), true)
	}
	session.update(changedMsg{})
	session.update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return session
}

func (session *testSession) update(message tea.Msg) tea.Cmd {
	updated, cmd := session.model.Update(message)
	session.model = updated.(Model)
	return cmd
}

func (session *testSession) press(keys ...string) {
	for _, name := range keys {
		var message tea.KeyMsg
		switch name {
		case "enter":
			message = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			message = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			message = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+s":
			message = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			message = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
		}
		session.update(message)
	}
}

func TestModelLoadingBeforeSize(t *testing.T) {
	session := store.New(testRegistry(), store.Config{})
	defer session.Close()
	model := New(session, Options{Clock: clock.Fake(testEpoch)})
	if view := model.View(); view != "Loading..." {
		t.Errorf("View before WindowSizeMsg = %q, want Loading...", view)
	}
}

func TestCatalogInitialSelection(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)
	model := session.model

	// Rows: [0]=Button header, [1]=primary, [2]=secondary, [3]=Badge header.
	if len(model.rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(model.rows))
	}
	if model.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (Button/primary)", model.cursor)
	}
	if model.live == nil || model.live.id.Name != "primary" {
		t.Fatalf("live content should be Button/primary, got %+v", model.live)
	}

	view := model.View()
	for _, want := range []string{"PLAYBOOK", "3 of 3", "primary button", "Button"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if lines := strings.Split(view, "\n"); len(lines) != 30 {
		t.Errorf("view has %d lines, want 30", len(lines))
	}
}

func TestCatalogNavigation(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	session.press("j")
	if session.model.cursor != 2 {
		t.Errorf("cursor after j = %d, want 2", session.model.cursor)
	}
	selected := session.store.Selected()
	if selected == nil || selected.ID.Name != "secondary" {
		t.Fatalf("selected after j = %+v, want Button/secondary", selected)
	}
	if !strings.Contains(session.model.View(), "secondary button") {
		t.Error("view should show the secondary scenario's content")
	}

	// Onto the Badge header: the selection stays.
	session.press("j")
	if session.model.cursor != 3 || !session.model.rows[3].header {
		t.Fatalf("cursor should be on the Badge header, got %d", session.model.cursor)
	}
	if session.store.Selected().ID.Name != "secondary" {
		t.Error("moving onto a header should not change the selection")
	}

	// Expand Badge and enter it.
	session.press("l")
	if len(session.model.rows) != 5 {
		t.Fatalf("rows after expanding Badge = %d, want 5", len(session.model.rows))
	}
	session.press("l")
	if session.store.Selected().ID.Kind != "Badge" {
		t.Errorf("selected kind = %q, want Badge", session.store.Selected().ID.Kind)
	}

	// Back to the header, then collapse.
	session.press("h", "h")
	if session.store.IsOpened("Badge") {
		t.Error("Badge should be collapsed")
	}
	if len(session.model.rows) != 4 {
		t.Errorf("rows after collapsing Badge = %d, want 4", len(session.model.rows))
	}

	session.press("g")
	if session.model.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", session.model.cursor)
	}
}

func TestCatalogSearch(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	session.press("/")
	if !session.model.searching {
		t.Fatal("/ should focus the search bar")
	}
	session.press("bad")

	if text := session.store.SearchText(); text == nil || *text != "bad" {
		t.Fatalf("search text = %v, want bad", text)
	}
	result := session.store.Result()
	if result.MatchedCount != 1 || result.ScenariosCount != 3 {
		t.Errorf("result counts = %d of %d, want 1 of 3", result.MatchedCount, result.ScenariosCount)
	}
	// The kind label matched, so the search opened it.
	if len(session.model.rows) != 2 || !session.model.rows[0].header || session.model.rows[1].data.ID.Name != "new" {
		t.Errorf("rows = %+v, want Badge header and new", session.model.rows)
	}
	if !strings.Contains(session.model.View(), "1 of 3") {
		t.Error("view should show the 1 of 3 counter")
	}

	session.press("zzz")
	view := session.model.View()
	if !strings.Contains(view, "This filter resulted in 0") {
		t.Error("view should show the no-results message")
	}
	if !strings.Contains(view, "0 of 3") {
		t.Error("view should show the 0 of 3 counter")
	}

	session.press("esc")
	if session.model.searching {
		t.Error("esc should end searching")
	}
	if session.store.SearchText() != nil {
		t.Error("esc should clear the search text")
	}
	if session.store.Result().MatchedCount != 3 {
		t.Error("clearing the search should restore every scenario")
	}
}

func TestCatalogEmptyRegistry(t *testing.T) {
	session := newTestSession(t, playbook.New(), store.Catalog, 0)
	view := session.model.View()
	if !strings.Contains(view, "There are no scenarios") {
		t.Error("empty registry should show the no-scenarios message")
	}
	if !strings.Contains(view, "No scenario selected") {
		t.Error("empty registry should show no live content")
	}
}

func TestCatalogFocusToggle(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	session.press("tab")
	if session.model.focus != focusContent {
		t.Fatal("tab should focus the live content")
	}
	// Keys go to the content now, not the tree.
	session.press("j")
	if session.model.cursor != 1 {
		t.Errorf("j with content focus moved the cursor to %d", session.model.cursor)
	}
	session.press("tab")
	if session.model.focus != focusTree {
		t.Error("second tab should return focus to the tree")
	}
}

func TestModelQuit(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	cmd := session.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, isQuit := cmd().(tea.QuitMsg); !isQuit {
		t.Error("q should quit")
	}
	if session.model.live != nil {
		t.Error("quitting should close live content")
	}
	if session.model.ctx.Err() == nil {
		t.Error("quitting should cancel background waits")
	}
}

func TestContentMessagesRouting(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)
	generation := session.model.liveGeneration

	if cmd := session.update(contentMsg{generation: generation, message: tea.Quit()}); cmd != nil {
		t.Error("content should not be able to quit the playbook")
	}

	// Switching scenarios invalidates messages for the old content.
	session.press("j")
	if session.model.liveGeneration == generation {
		t.Fatal("opening new content should bump the generation")
	}
	if cmd := session.update(contentMsg{generation: generation, message: tea.WindowSizeMsg{Width: 1, Height: 1}}); cmd != nil {
		t.Error("stale content message should be dropped")
	}
}

func TestNotesPanel(t *testing.T) {
	registry := testRegistry(scenario.WithNotes("# Usage\n\nPrimary action."))
	session := newTestSession(t, registry, store.Catalog, 0)

	session.press("n")
	if session.model.panel == nil {
		t.Fatal("n should open the notes panel")
	}
	if !strings.Contains(session.model.View(), "Primary action.") {
		t.Error("view should show the rendered notes")
	}
	session.press("esc")
	if session.model.panel != nil {
		t.Error("esc should close the panel")
	}
}

func TestNotesPanelWithoutNotes(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)
	session.press("n")
	if session.model.panel != nil {
		t.Error("a scenario without notes should not open a panel")
	}
	if !strings.Contains(session.model.status, "No notes") {
		t.Errorf("status = %q, want a no-notes message", session.model.status)
	}
}

func TestActionsMenu(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Gallery, 0)

	session.press(".")
	if session.model.actions == nil {
		t.Fatal(". should open the actions menu")
	}
	// "/" in the menu toggles the gallery's search drawer.
	session.press("/")
	if session.model.actions != nil {
		t.Error("choosing an action should close the menu")
	}
	if !session.store.SearchTreeVisible() {
		t.Error("toggle search should show the drawer")
	}
}

func TestShareCopy(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	session.press("y")
	if session.model.sheet == nil {
		t.Fatal("y should open the share sheet")
	}
	if _, pending := session.store.ShareItem(); !pending {
		t.Fatal("share should be recorded in the store")
	}

	session.press("c")
	if session.model.sheet != nil {
		t.Error("choosing an option should close the sheet")
	}
	if _, pending := session.store.ShareItem(); pending {
		t.Error("the share request should be dismissed")
	}
	if len(session.clipboard) != 1 || !strings.Contains(session.clipboard[0], "primary button") {
		t.Errorf("clipboard = %q, want the primary frame", session.clipboard)
	}
	if strings.Contains(session.clipboard[0], "\x1b[") {
		t.Error("copy text should be plain")
	}
}

func TestShareExport(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	session.press("y", "e")
	path := filepath.Join(session.model.options.ExportDir, "Button", "primary.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export should write %s: %v", path, err)
	}
	if !strings.Contains(string(data), "primary button") {
		t.Errorf("exported text = %q", data)
	}
	if !strings.Contains(session.model.status, "Exported") {
		t.Errorf("status = %q, want an export message", session.model.status)
	}
}

func TestStatusFades(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	cmd := session.update(logRecordMsg{Summary: "capture failed", Level: -4})
	if session.model.status != "capture failed" {
		t.Fatalf("status = %q", session.model.status)
	}
	session.clock.Advance(logRecordFadeDelay)
	session.update(cmd())
	if session.model.status != "" {
		t.Errorf("status should fade, got %q", session.model.status)
	}
}

func TestStatusFadeKeepsNewerMessage(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Catalog, 0)

	first := session.update(logRecordMsg{Summary: "first"})
	session.update(logRecordMsg{Summary: "second"})
	session.clock.Advance(logRecordFadeDelay)
	session.update(first())
	if session.model.status != "second" {
		t.Errorf("an older fade should not clear a newer message, got %q", session.model.status)
	}
}

func TestGalleryGridNavigation(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Gallery, 0)
	if columns := session.model.gridColumns(); columns != 3 {
		t.Fatalf("columns at width 100 = %d, want 3", columns)
	}

	tests := []struct {
		key  string
		want int
	}{
		{"l", 1},
		{"j", 2}, // Down from Button's second cell lands on Badge/new.
		{"k", 0}, // Up returns to Button's last row, same column.
		{"G", 2},
		{"g", 0},
		{"h", 0},
	}
	for _, test := range tests {
		session.press(test.key)
		if session.model.gridCursor != test.want {
			t.Errorf("after %q cursor = %d, want %d", test.key, session.model.gridCursor, test.want)
		}
	}
}

func TestGalleryPresentModal(t *testing.T) {
	session := newTestSession(t, testRegistry(), store.Gallery, 0)

	session.press("enter")
	if !session.model.presented {
		t.Fatal("enter should present the preview")
	}
	if session.model.style != scenario.Modal {
		t.Errorf("style = %v, want modal", session.model.style)
	}
	view := session.model.View()
	if !strings.Contains(view, "primary button") || !strings.Contains(view, "Button/primary") {
		t.Error("modal should frame the live content under its identity")
	}

	session.press("esc")
	if session.model.presented || session.model.live != nil {
		t.Error("esc should dismiss the presentation")
	}
	if session.store.Selected() != nil {
		t.Error("dismissing should clear the selection")
	}
}

func TestGalleryPresentFull(t *testing.T) {
	session := newTestSession(t, testRegistry(scenario.WithStyle(scenario.Full)), store.Gallery, 0)

	session.press("enter")
	if session.model.style != scenario.Full {
		t.Fatalf("style = %v, want full", session.model.style)
	}
	if size := session.model.presentationSize(); size.Width != 100 || size.Height != session.model.bodyHeight() {
		t.Errorf("full presentation size = %v, want the whole body", size)
	}
	if !strings.Contains(session.model.View(), "primary button") {
		t.Error("view should show the presented content")
	}
}

func TestGalleryDeferredCapture(t *testing.T) {
	// A negative limit defers every preview.
	session := newTestSession(t, testRegistry(), store.Gallery, -1)
	prepared := session.store.Prepare(context.Background())
	testutil.RequireClosed(t, prepared, 5*time.Second, "batch should become ready")
	session.update(changedMsg{})

	entry, _ := session.store.Snapshot(session.model.store.Result().Flatten()[0].ID)
	if entry.State != snapshot.Deferred {
		t.Fatalf("state = %v, want deferred", entry.State)
	}
	if !strings.Contains(session.model.View(), "Select to render") {
		t.Error("deferred preview should invite selection")
	}

	cmd := session.model.captureIfDeferred()
	if cmd == nil {
		t.Fatal("cursor on a deferred preview should start a capture")
	}
	if again := session.model.captureIfDeferred(); again != nil {
		t.Error("a capture already in flight should not start twice")
	}
	session.update(cmd())

	if _, ok := session.model.captured[entry.ID]; !ok {
		t.Fatal("capture result should be kept for the session")
	}
	if !session.model.heat.HasHot(session.clock.Now()) {
		t.Error("a fresh capture should glow")
	}
	if !strings.Contains(session.model.View(), "primary button") {
		t.Error("grid should show the captured thumbnail")
	}
}
