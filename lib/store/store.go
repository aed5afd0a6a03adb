// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/snapshot"
)

// DefaultName is the title shown when Config.Name is empty.
const DefaultName = "PLAYBOOK"

// Mode selects how a selection is presented.
type Mode int

const (
	// Catalog shows the selection inline next to the search tree.
	Catalog Mode = iota

	// Gallery presents the selection over the preview grid, modally
	// or full screen per the scenario's presentation style.
	Gallery
)

func (mode Mode) String() string {
	if mode == Gallery {
		return "gallery"
	}
	return "catalog"
}

// Config configures a Store.
type Config struct {
	// Name is the title shown in the header. Default "PLAYBOOK".
	Name string

	Mode Mode

	// Snapshot configures the preview pipeline.
	Snapshot snapshot.Config
}

// Store is the presentation state of one catalog or gallery session.
type Store struct {
	name     string
	mode     Mode
	registry *playbook.Playbook
	pipeline *snapshot.Pipeline

	mu                sync.Mutex
	searchText        *string
	result            search.Result
	openedKinds       map[scenario.Kind]struct{}
	searchOpenedKinds map[scenario.Kind]struct{}
	selected          *search.Data
	started           bool
	status            snapshot.Status
	share             *render.Image
	searchTreeVisible bool

	changes   chan struct{}
	forwarded chan struct{}
}

// New creates a store over registry. A nil registry uses
// playbook.Default. Call Close to stop the snapshot pipeline.
func New(registry *playbook.Playbook, config Config) *Store {
	if registry == nil {
		registry = playbook.Default
	}
	if config.Name == "" {
		config.Name = DefaultName
	}
	store := &Store{
		name:        config.Name,
		mode:        config.Mode,
		registry:    registry,
		pipeline:    snapshot.New(config.Snapshot),
		openedKinds: make(map[scenario.Kind]struct{}),
		changes:     make(chan struct{}, 1),
		forwarded:   make(chan struct{}),
	}
	store.result = search.Filter(registry.Stores(), nil)
	go store.forward()
	return store
}

// forward relays pipeline progress into the store until the pipeline
// closes its update channel.
func (store *Store) forward() {
	defer close(store.forwarded)
	for range store.pipeline.Updates() {
		status := store.pipeline.Status()
		store.mu.Lock()
		store.status = status
		store.mu.Unlock()
		store.notify()
	}
}

func (store *Store) notify() {
	select {
	case store.changes <- struct{}{}:
	default:
	}
}

// Name returns the session title.
func (store *Store) Name() string { return store.name }

// Mode returns the presentation mode.
func (store *Store) Mode() Mode { return store.mode }

// Registry returns the playbook the store reads from.
func (store *Store) Registry() *playbook.Playbook { return store.registry }

// Changes delivers a value after state changes. Notifications
// coalesce: one pending value stands for any number of changes.
func (store *Store) Changes() <-chan struct{} { return store.changes }

// SearchText returns the current query, nil when none was entered.
func (store *Store) SearchText() *string {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.searchText == nil {
		return nil
	}
	text := *store.searchText
	return &text
}

// SetSearchText replaces the query and recomputes the result. A
// non-empty query opens every group in the new result without touching
// the user's own expansion; clearing the query restores it.
func (store *Store) SetSearchText(text *string) {
	var query *string
	if text != nil {
		copied := *text
		query = &copied
	}
	result := search.Filter(store.registry.Stores(), query)

	store.mu.Lock()
	store.searchText = query
	store.result = result
	if query == nil || *query == "" {
		store.searchOpenedKinds = nil
	} else {
		store.searchOpenedKinds = make(map[scenario.Kind]struct{}, len(result.Data))
		for _, group := range result.Data {
			store.searchOpenedKinds[group.Kind] = struct{}{}
		}
	}
	store.mu.Unlock()
	store.notify()
}

// Refresh recomputes the result against the registry's current
// contents, keeping the query.
func (store *Store) Refresh() {
	store.SetSearchText(store.SearchText())
}

// Result returns the current filtered result.
func (store *Store) Result() search.Result {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.result
}

// ScenariosCount returns the unfiltered scenario total.
func (store *Store) ScenariosCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.result.ScenariosCount
}

// Searching reports whether a non-empty query is active.
func (store *Store) Searching() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.searchOpenedKinds != nil
}

// opened returns the active expansion set. Caller holds mu.
func (store *Store) opened() map[scenario.Kind]struct{} {
	if store.searchOpenedKinds != nil {
		return store.searchOpenedKinds
	}
	return store.openedKinds
}

// IsOpened reports whether kind is expanded in the active set.
func (store *Store) IsOpened(kind scenario.Kind) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, opened := store.opened()[kind]
	return opened
}

// OpenedKinds returns a copy of the active expansion set.
func (store *Store) OpenedKinds() map[scenario.Kind]struct{} {
	store.mu.Lock()
	defer store.mu.Unlock()
	opened := store.opened()
	copied := make(map[scenario.Kind]struct{}, len(opened))
	for kind := range opened {
		copied[kind] = struct{}{}
	}
	return copied
}

// ToggleKind expands or collapses kind in the active set.
func (store *Store) ToggleKind(kind scenario.Kind) {
	store.mu.Lock()
	opened := store.opened()
	if _, exists := opened[kind]; exists {
		delete(opened, kind)
	} else {
		opened[kind] = struct{}{}
	}
	store.mu.Unlock()
	store.notify()
}

// SetOpened expands or collapses kind in the active set.
func (store *Store) SetOpened(kind scenario.Kind, opened bool) {
	if store.IsOpened(kind) != opened {
		store.ToggleKind(kind)
	}
}

// Appear handles the first display of the session: it selects the
// first scenario of the first group if nothing is selected yet and
// marks the store started. Later calls only restore the default
// selection.
func (store *Store) Appear() {
	first, ok := store.registry.First()

	store.mu.Lock()
	store.started = true
	if store.selected == nil && ok {
		store.selected = &search.Data{ID: first.ID, Scenario: first.Scenario}
	}
	store.mu.Unlock()
	store.notify()
}

// Started reports whether Appear has run.
func (store *Store) Started() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.started
}

// Selected returns the selected scenario, or nil.
func (store *Store) Selected() *search.Data {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.selected == nil {
		return nil
	}
	selected := *store.selected
	return &selected
}

// Select records data as the selection; nil deselects. A scenario no
// longer in the registry clears the selection instead. In gallery mode
// the returned present flag is true and style says how to show it.
func (store *Store) Select(data *search.Data) (style scenario.PresentationStyle, present bool) {
	var selected *search.Data
	if data != nil {
		if current, exists := store.registry.Lookup(data.ID); exists {
			copied := *data
			copied.Scenario = current
			selected = &copied
		}
	}

	store.mu.Lock()
	store.selected = selected
	store.mu.Unlock()
	store.notify()

	if selected == nil {
		return scenario.Modal, false
	}
	return selected.Scenario.PresentationStyle, store.mode == Gallery
}

// Prepare runs the snapshot pipeline over every registered scenario.
// The returned channel closes once the batch is ready.
func (store *Store) Prepare(ctx context.Context) <-chan struct{} {
	all := search.Filter(store.registry.Stores(), nil).Flatten()
	done := store.pipeline.Prepare(ctx, all)

	store.mu.Lock()
	store.status = store.pipeline.Status()
	store.mu.Unlock()
	store.notify()
	return done
}

// Status returns the snapshot pipeline's readiness.
func (store *Store) Status() snapshot.Status {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.status
}

// Snapshot returns the pipeline entry for id.
func (store *Store) Snapshot(id playbook.ID) (snapshot.Entry, bool) {
	return store.pipeline.Entry(id)
}

// Capture renders id on demand. Deferred scenarios are captured here
// when the user navigates to them.
func (store *Store) Capture(ctx context.Context, id playbook.ID) (render.Image, error) {
	return store.pipeline.Capture(ctx, id)
}

// Pipeline returns the store's snapshot pipeline.
func (store *Store) Pipeline() *snapshot.Pipeline { return store.pipeline }

// Share requests that image be offered to the user.
func (store *Store) Share(image render.Image) {
	store.mu.Lock()
	store.share = &image
	store.mu.Unlock()
	store.notify()
}

// ShareItem returns the pending share request.
func (store *Store) ShareItem() (render.Image, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.share == nil {
		return render.Image{}, false
	}
	return *store.share, true
}

// DismissShare clears the pending share request.
func (store *Store) DismissShare() {
	store.mu.Lock()
	store.share = nil
	store.mu.Unlock()
	store.notify()
}

// SearchTreeVisible reports whether the gallery's search drawer is
// shown.
func (store *Store) SearchTreeVisible() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.searchTreeVisible
}

// SetSearchTreeVisible shows or hides the gallery's search drawer.
func (store *Store) SetSearchTreeVisible(visible bool) {
	store.mu.Lock()
	store.searchTreeVisible = visible
	store.mu.Unlock()
	store.notify()
}

// Close stops the snapshot pipeline. Results still in flight are
// discarded.
func (store *Store) Close() {
	store.pipeline.Close()
	<-store.forwarded
}
