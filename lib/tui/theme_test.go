// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testTheme returns the default theme bound to a renderer with a fixed
// profile and a light background, so output does not depend on the
// test environment's terminal.
func testTheme(profile termenv.Profile) Theme {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(profile)
	renderer.SetHasDarkBackground(false)
	return DefaultTheme.WithRenderer(renderer)
}

func TestSwatchesCoverTheme(t *testing.T) {
	swatches := DefaultTheme.Swatches()
	if len(swatches) != 16 {
		t.Fatalf("swatch count = %d, want 16", len(swatches))
	}
	seen := make(map[string]bool)
	for _, swatch := range swatches {
		if seen[swatch.Name] {
			t.Errorf("duplicate swatch %q", swatch.Name)
		}
		seen[swatch.Name] = true
		if swatch.Color.Light == "" || swatch.Color.Dark == "" {
			t.Errorf("swatch %q has an empty variant", swatch.Name)
		}
	}
}

func TestWithRendererDoesNotMutate(t *testing.T) {
	theme := testTheme(termenv.Ascii)
	if theme.Renderer() == nil {
		t.Fatal("bound theme has no renderer")
	}
	if DefaultTheme.Renderer() != nil {
		t.Fatal("WithRenderer modified DefaultTheme")
	}
}
