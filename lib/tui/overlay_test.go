// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestSpliceOverlay(t *testing.T) {
	tests := []struct {
		name    string
		view    string
		overlay []string
		x, y    int
		want    string
	}{
		{
			name:    "middle",
			view:    "aaaaaa\nbbbbbb\ncccccc",
			overlay: []string{"XY"},
			x:       2, y: 1,
			want: "aaaaaa\nbbXYbb\ncccccc",
		},
		{
			name:    "short line is padded to the anchor",
			view:    "ab",
			overlay: []string{"Z"},
			x:       4, y: 0,
			want: "ab  Z",
		},
		{
			name:    "rows past the view are dropped",
			view:    "aaa\nbbb",
			overlay: []string{"1", "2", "3"},
			x:       0, y: 1,
			want: "aaa\n1bb",
		},
		{
			name:    "empty overlay",
			view:    "abc",
			overlay: nil,
			want:    "abc",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ansi.Strip(SpliceOverlay(test.view, test.overlay, test.x, test.y))
			if got != test.want {
				t.Errorf("SpliceOverlay = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSplicePreservesStyledSuffix(t *testing.T) {
	theme := testTheme(termenv.ANSI256)
	styled := theme.NewStyle().Foreground(lipgloss.Color("1")).Render("redredred")
	result := SpliceOverlay(styled, []string{"--"}, 3, 0)
	if got := ansi.Strip(result); got != "red--dred" {
		t.Errorf("stripped = %q", got)
	}
	if ansi.StringWidth(result) != 9 {
		t.Errorf("width = %d, want 9", ansi.StringWidth(result))
	}
}

func TestHighlight(t *testing.T) {
	theme := testTheme(termenv.ANSI256)
	base := theme.NewStyle()
	highlight := theme.NewStyle().Background(theme.SearchHighlightBackground)

	result := Highlight("primary", 0, 3, base, highlight)
	if ansi.Strip(result) != "primary" {
		t.Errorf("stripped = %q", ansi.Strip(result))
	}
	if !strings.Contains(result, "\x1b[") {
		t.Error("highlighted text carries no escapes")
	}
	if got := Highlight("ab", 5, 9, base, highlight); got != base.Render("ab") {
		t.Errorf("out of range span = %q", got)
	}
	if got := Highlight("ab", 1, 1, base, highlight); got != base.Render("ab") {
		t.Errorf("empty span = %q", got)
	}
}
