// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"reflect"
	"testing"

	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/search"
)

func TestPlaceBlock(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		width  int
		height int
		want   []string
	}{
		{
			name:   "centered",
			lines:  []string{"ab"},
			width:  6,
			height: 3,
			want:   []string{"      ", "  ab  ", "      "},
		},
		{
			name:   "cropped",
			lines:  []string{"abcdef", "ghijkl", "mnopqr"},
			width:  4,
			height: 2,
			want:   []string{"abcd", "ghij"},
		},
		{
			name:   "empty",
			lines:  nil,
			width:  2,
			height: 1,
			want:   []string{"  "},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := placeBlock(test.lines, test.width, test.height)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("placeBlock = %q, want %q", got, test.want)
			}
		})
	}
}

func TestTrimBlock(t *testing.T) {
	got := trimBlock([]string{"   ", " a ", "", " b", "  "})
	want := []string{" a ", "", " b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trimBlock = %q, want %q", got, want)
	}
	if trimBlock([]string{" ", ""}) != nil {
		t.Error("an all-blank block should trim to nil")
	}
}

func TestBuildRows(t *testing.T) {
	result := search.Result{Data: []search.ListData{
		{Kind: "Button", Scenarios: []search.Data{
			{ID: playbook.ID{Kind: "Button", Name: "primary"}},
			{ID: playbook.ID{Kind: "Button", Name: "secondary"}},
		}},
		{Kind: "Badge", Scenarios: []search.Data{
			{ID: playbook.ID{Kind: "Badge", Name: "new"}},
		}},
	}}

	tests := []struct {
		name   string
		opened map[string]bool
		want   []string
	}{
		{"collapsed", nil, []string{"Button", "Badge"}},
		{"one open", map[string]bool{"Badge": true}, []string{"Button", "Badge", "Badge/new"}},
		{"all open", map[string]bool{"Button": true, "Badge": true},
			[]string{"Button", "Button/primary", "Button/secondary", "Badge", "Badge/new"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rows := buildRows(result, func(group search.ListData) bool {
				return test.opened[string(group.Kind)]
			})
			var got []string
			for _, current := range rows {
				if current.header {
					got = append(got, string(current.group.Kind))
				} else {
					got = append(got, current.data.ID.String())
				}
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("rows = %v, want %v", got, test.want)
			}
		})
	}
}

func TestLocateCell(t *testing.T) {
	groups := []search.ListData{
		{Scenarios: make([]search.Data, 2)},
		{Scenarios: nil},
		{Scenarios: make([]search.Data, 3)},
	}
	tests := []struct {
		flat         int
		group, index int
		ok           bool
	}{
		{0, 0, 0, true},
		{1, 0, 1, true},
		{2, 2, 0, true},
		{4, 2, 2, true},
		{5, 0, 0, false},
	}
	for _, test := range tests {
		group, index, ok := locateCell(groups, test.flat)
		if group != test.group || index != test.index || ok != test.ok {
			t.Errorf("locateCell(%d) = (%d, %d, %v), want (%d, %d, %v)",
				test.flat, group, index, ok, test.group, test.index, test.ok)
		}
	}
}
