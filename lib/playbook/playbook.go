// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbook

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/playbook/lib/scenario"
)

// ID identifies one registered scenario. Ordinal is zero for the first
// scenario registered under a name within a kind and counts up for
// later duplicates.
type ID struct {
	Kind    scenario.Kind
	Name    scenario.Name
	Ordinal int
}

func (id ID) String() string {
	if id.Ordinal == 0 {
		return fmt.Sprintf("%s/%s", id.Kind, id.Name)
	}
	return fmt.Sprintf("%s/%s#%d", id.Kind, id.Name, id.Ordinal+1)
}

// Entry is a registered scenario with its identity.
type Entry struct {
	ID       ID
	Scenario scenario.Scenario
}

// Store is one kind's group of scenarios.
type Store struct {
	Kind      scenario.Kind
	Scenarios []Entry
}

// Playbook is an ordered collection of scenario groups.
type Playbook struct {
	mu     sync.RWMutex
	kinds  []scenario.Kind
	stores map[scenario.Kind]*Store
	logger *slog.Logger
}

// Default is the shared process-wide playbook.
var Default = New()

// New returns an empty playbook.
func New() *Playbook {
	return &Playbook{
		stores: make(map[scenario.Kind]*Store),
		logger: slog.Default(),
	}
}

// SetLogger sets the logger used for registration diagnostics.
func (playbook *Playbook) SetLogger(logger *slog.Logger) {
	playbook.mu.Lock()
	defer playbook.mu.Unlock()
	playbook.logger = logger
}

// Add appends scenarios to the kind's group, creating the group on
// first use. Duplicate names are kept and given increasing ordinals.
func (playbook *Playbook) Add(kind scenario.Kind, scenarios ...scenario.Scenario) *Playbook {
	playbook.mu.Lock()
	defer playbook.mu.Unlock()

	store, exists := playbook.stores[kind]
	if !exists {
		store = &Store{Kind: kind}
		playbook.stores[kind] = store
		playbook.kinds = append(playbook.kinds, kind)
	}

	for _, s := range scenarios {
		ordinal := 0
		for _, existing := range store.Scenarios {
			if existing.ID.Name == s.Name {
				ordinal++
			}
		}
		if ordinal > 0 {
			playbook.logger.Warn("duplicate scenario name",
				"kind", string(kind),
				"name", string(s.Name),
				"location", s.Location(),
				"ordinal", ordinal+1,
			)
		}
		store.Scenarios = append(store.Scenarios, Entry{
			ID:       ID{Kind: kind, Name: s.Name, Ordinal: ordinal},
			Scenario: s,
		})
	}
	return playbook
}

// Stores returns a copy of every group in registration order. Callers
// may iterate the copy while registration continues elsewhere.
func (playbook *Playbook) Stores() []Store {
	playbook.mu.RLock()
	defer playbook.mu.RUnlock()

	stores := make([]Store, 0, len(playbook.kinds))
	for _, kind := range playbook.kinds {
		source := playbook.stores[kind]
		entries := make([]Entry, len(source.Scenarios))
		copy(entries, source.Scenarios)
		stores = append(stores, Store{Kind: kind, Scenarios: entries})
	}
	return stores
}

// All yields each kind with its scenarios in registration order. The
// sequence snapshots the registry when iteration starts and can be
// ranged over any number of times.
func (playbook *Playbook) All() iter.Seq2[scenario.Kind, []Entry] {
	return func(yield func(scenario.Kind, []Entry) bool) {
		for _, store := range playbook.Stores() {
			if !yield(store.Kind, store.Scenarios) {
				return
			}
		}
	}
}

// Count returns the total number of registered scenarios.
func (playbook *Playbook) Count() int {
	playbook.mu.RLock()
	defer playbook.mu.RUnlock()

	count := 0
	for _, store := range playbook.stores {
		count += len(store.Scenarios)
	}
	return count
}

// Lookup returns the scenario registered under id.
func (playbook *Playbook) Lookup(id ID) (scenario.Scenario, bool) {
	playbook.mu.RLock()
	defer playbook.mu.RUnlock()

	store, exists := playbook.stores[id.Kind]
	if !exists {
		return scenario.Scenario{}, false
	}
	for _, entry := range store.Scenarios {
		if entry.ID == id {
			return entry.Scenario, true
		}
	}
	return scenario.Scenario{}, false
}

// First returns the first scenario of the first group.
func (playbook *Playbook) First() (Entry, bool) {
	playbook.mu.RLock()
	defer playbook.mu.RUnlock()

	if len(playbook.kinds) == 0 {
		return Entry{}, false
	}
	store := playbook.stores[playbook.kinds[0]]
	if len(store.Scenarios) == 0 {
		return Entry{}, false
	}
	return store.Scenarios[0], true
}
