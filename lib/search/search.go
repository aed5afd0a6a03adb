// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
)

// Data is one scenario row in a search result.
type Data struct {
	ID              playbook.ID
	Scenario        scenario.Scenario
	ShouldHighlight bool
	NameMatch       Span
}

// Kind returns the kind the scenario belongs to.
func (data Data) Kind() scenario.Kind { return data.ID.Kind }

// ListData is one kind group in a search result.
type ListData struct {
	Kind            scenario.Kind
	ShouldHighlight bool
	KindMatch       Span
	Scenarios       []Data
}

// Result is the filtered view of a playbook.
type Result struct {
	Data []ListData

	// MatchedCount counts the scenarios included in Data.
	MatchedCount int

	// ScenariosCount counts every scenario in the unfiltered input.
	ScenariosCount int
}

// Flatten returns every included scenario in display order.
func (result Result) Flatten() []Data {
	flat := make([]Data, 0, result.MatchedCount)
	for _, group := range result.Data {
		flat = append(flat, group.Scenarios...)
	}
	return flat
}

// Find returns the row with the given identity.
func (result Result) Find(id playbook.ID) (Data, bool) {
	for _, group := range result.Data {
		if group.Kind != id.Kind {
			continue
		}
		for _, data := range group.Scenarios {
			if data.ID == id {
				return data, true
			}
		}
	}
	return Data{}, false
}

// Filter applies query to stores. A nil or empty query keeps every
// scenario unhighlighted.
func Filter(stores []playbook.Store, query *string) Result {
	var result Result
	for _, store := range stores {
		result.ScenariosCount += len(store.Scenarios)
	}

	if query == nil || *query == "" {
		for _, store := range stores {
			group := ListData{Kind: store.Kind, Scenarios: make([]Data, 0, len(store.Scenarios))}
			for _, entry := range store.Scenarios {
				group.Scenarios = append(group.Scenarios, Data{ID: entry.ID, Scenario: entry.Scenario})
			}
			result.Data = append(result.Data, group)
			result.MatchedCount += len(group.Scenarios)
		}
		return result
	}

	matcher := newMatcher(*query)
	for _, store := range stores {
		kindSpan, kindMatched := matcher.match(string(store.Kind))
		group := ListData{
			Kind:            store.Kind,
			ShouldHighlight: kindMatched,
			KindMatch:       kindSpan,
		}
		for _, entry := range store.Scenarios {
			nameSpan, nameMatched := matcher.match(string(entry.ID.Name))
			if !nameMatched && !kindMatched {
				continue
			}
			group.Scenarios = append(group.Scenarios, Data{
				ID:              entry.ID,
				Scenario:        entry.Scenario,
				ShouldHighlight: nameMatched,
				NameMatch:       nameSpan,
			})
		}
		if !kindMatched && len(group.Scenarios) == 0 {
			continue
		}
		result.Data = append(result.Data, group)
		result.MatchedCount += len(group.Scenarios)
	}
	return result
}
