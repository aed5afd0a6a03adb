// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
)

func newPlaybook(groups map[scenario.Kind][]scenario.Name, order ...scenario.Kind) *playbook.Playbook {
	registry := playbook.New()
	for _, kind := range order {
		for _, name := range groups[kind] {
			registry.Add(kind, scenario.New(name, scenario.Fill(), scenario.ViewFunc(func() string { return "" })))
		}
	}
	return registry
}

func query(text string) *string { return &text }

func names(group ListData) []string {
	var result []string
	for _, data := range group.Scenarios {
		result = append(result, string(data.ID.Name))
	}
	return result
}

func TestFilterWithoutQuery(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{
		"Buttons": {"Primary", "Secondary"},
		"Labels":  {"Title"},
	}, "Buttons", "Labels")

	for _, q := range []*string{nil, query("")} {
		result := Filter(registry.Stores(), q)
		if len(result.Data) != 2 {
			t.Fatalf("got %d groups, want 2", len(result.Data))
		}
		if result.MatchedCount != 3 || result.ScenariosCount != 3 {
			t.Errorf("counts = %d of %d, want 3 of 3", result.MatchedCount, result.ScenariosCount)
		}
		for _, group := range result.Data {
			if group.ShouldHighlight {
				t.Errorf("group %s highlighted without a query", group.Kind)
			}
			for _, data := range group.Scenarios {
				if data.ShouldHighlight {
					t.Errorf("scenario %s highlighted without a query", data.ID)
				}
			}
		}
	}
}

func TestFilterKindMatchKeepsGroup(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{
		"Buttons": {"Primary", "Submit button"},
		"Labels":  {"Title"},
	}, "Buttons", "Labels")

	result := Filter(registry.Stores(), query("BUT"))

	if len(result.Data) != 1 || result.Data[0].Kind != "Buttons" {
		t.Fatalf("groups = %+v, want only Buttons", result.Data)
	}
	group := result.Data[0]
	if !group.ShouldHighlight {
		t.Error("kind row should be highlighted when its label matches")
	}
	if got := strings.Join(names(group), ","); got != "Primary,Submit button" {
		t.Errorf("scenarios = %s, want Primary,Submit button", got)
	}
	if group.Scenarios[0].ShouldHighlight {
		t.Error("Primary does not match on its own and must not be highlighted")
	}
	if !group.Scenarios[1].ShouldHighlight {
		t.Error("Submit button matches on its own and must be highlighted")
	}
	if group.KindMatch != (Span{Start: 0, End: 3}) {
		t.Errorf("KindMatch = %+v, want [0,3)", group.KindMatch)
	}
	if result.MatchedCount != 2 || result.ScenariosCount != 3 {
		t.Errorf("counts = %d of %d, want 2 of 3", result.MatchedCount, result.ScenariosCount)
	}
}

func TestFilterNameMatchRetainsGroupOnly(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{
		"Buttons": {"s1name", "s2name"},
		"Labels":  {"s3name"},
	}, "Buttons", "Labels")

	result := Filter(registry.Stores(), query("s1name"))

	if len(result.Data) != 1 {
		t.Fatalf("got %d groups, want 1", len(result.Data))
	}
	group := result.Data[0]
	if group.ShouldHighlight {
		t.Error("Buttons label does not match and must not be highlighted")
	}
	if got := strings.Join(names(group), ","); got != "s1name" {
		t.Errorf("scenarios = %s, want s1name", got)
	}
	if !group.Scenarios[0].ShouldHighlight {
		t.Error("s1name should be highlighted")
	}
	if span := group.Scenarios[0].NameMatch; span != (Span{Start: 0, End: 6}) {
		t.Errorf("NameMatch = %+v, want [0,6)", span)
	}
}

func TestFilterWhitespaceQueryIsLiteral(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{
		"Buttons": {"Primary", "Large primary"},
	}, "Buttons")

	result := Filter(registry.Stores(), query(" "))
	if result.MatchedCount != 1 {
		t.Fatalf("MatchedCount = %d, want 1 (only the name containing a space)", result.MatchedCount)
	}
	if got := result.Data[0].Scenarios[0].ID.Name; got != "Large primary" {
		t.Errorf("matched %q, want Large primary", got)
	}

	if result := Filter(registry.Stores(), query("   ")); len(result.Data) != 0 {
		t.Errorf("three spaces matched %d groups, want 0", len(result.Data))
	}
}

func TestFilterEmptyRegistry(t *testing.T) {
	result := Filter(nil, query("anything"))
	if len(result.Data) != 0 || result.MatchedCount != 0 || result.ScenariosCount != 0 {
		t.Errorf("empty registry result = %+v", result)
	}
}

func TestFilterSoundAndComplete(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{
		"Buttons":     {"Primary", "Secondary", "Danger", "Icon only"},
		"Labels":      {"Title", "Caption", "Button label"},
		"Navigation":  {"Tab bar", "Breadcrumb", "Pager"},
		"Ünicode Kit": {"Straße", "ÉCLAIR"},
	}, "Buttons", "Labels", "Navigation", "Ünicode Kit")
	stores := registry.Stores()

	queries := []string{"a", "but", "TAB", "on", "r", "zzz", "ü", "éc", "e b", "straße", "Kit"}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			result := Filter(stores, query(q))
			lowered := strings.ToLower(q)
			matches := func(kind scenario.Kind, name scenario.Name) bool {
				return strings.Contains(strings.ToLower(string(kind)), lowered) ||
					strings.Contains(strings.ToLower(string(name)), lowered)
			}

			included := make(map[playbook.ID]bool)
			for _, group := range result.Data {
				for _, data := range group.Scenarios {
					if !matches(group.Kind, data.ID.Name) {
						t.Errorf("%s included but does not match %q", data.ID, q)
					}
					if data.ShouldHighlight != strings.Contains(strings.ToLower(string(data.ID.Name)), lowered) {
						t.Errorf("%s highlight = %v", data.ID, data.ShouldHighlight)
					}
					included[data.ID] = true
				}
			}
			for _, store := range stores {
				for _, entry := range store.Scenarios {
					if matches(store.Kind, entry.ID.Name) && !included[entry.ID] {
						t.Errorf("%s matches %q but was dropped", entry.ID, q)
					}
				}
			}
			if result.MatchedCount != len(included) {
				t.Errorf("MatchedCount = %d, want %d", result.MatchedCount, len(included))
			}
			if result.MatchedCount > result.ScenariosCount {
				t.Errorf("MatchedCount %d exceeds ScenariosCount %d", result.MatchedCount, result.ScenariosCount)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{
		"Zeta":  {"zz", "za"},
		"Alpha": {"az", "aa"},
	}, "Zeta", "Alpha")

	result := Filter(registry.Stores(), query("z"))
	var order []string
	for _, data := range result.Flatten() {
		order = append(order, data.ID.String())
	}
	if got := strings.Join(order, " "); got != "Zeta/zz Zeta/za Alpha/az" {
		t.Errorf("order = %s", got)
	}
}

func TestResultFind(t *testing.T) {
	registry := newPlaybook(map[scenario.Kind][]scenario.Name{"Buttons": {"Primary"}}, "Buttons")
	result := Filter(registry.Stores(), nil)

	if _, ok := result.Find(playbook.ID{Kind: "Buttons", Name: "Primary"}); !ok {
		t.Error("Find missed an included scenario")
	}
	if _, ok := result.Find(playbook.ID{Kind: "Buttons", Name: "Gone"}); ok {
		t.Error("Find returned a scenario that is not in the result")
	}
}
