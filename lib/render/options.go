// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/playbook/lib/scenario"
)

// DefaultScreen is used when the terminal size cannot be detected.
var DefaultScreen = scenario.Size{Width: 100, Height: 30}

// Executor runs calls into scenario content. The snapshot pipeline
// routes every call through a single serial dispatcher; a nil Executor
// runs calls inline.
type Executor interface {
	Do(ctx context.Context, call func()) error
}

// Options configure how a host renders.
type Options struct {
	// Screen is the size Fill layouts expand to and SizeThatFits
	// layouts are bounded by.
	Screen scenario.Size

	// Scheme selects the background adaptive colors resolve against.
	Scheme scenario.ColorScheme

	// Profile is the color fidelity of captured frames.
	Profile termenv.Profile

	// Executor serializes calls into content. Nil runs inline.
	Executor Executor
}

func (options Options) withDefaults() Options {
	if options.Screen.Empty() {
		options.Screen = DefaultScreen
	}
	return options
}

// NewRenderer returns a lipgloss renderer pinned to profile and scheme.
// It writes nowhere and never queries the terminal.
func NewRenderer(profile termenv.Profile, scheme scenario.ColorScheme) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	renderer.SetHasDarkBackground(scheme == scenario.Dark)
	return renderer
}

// ParseProfile parses a color profile name: truecolor, ansi256, ansi,
// or ascii.
func ParseProfile(name string) (termenv.Profile, error) {
	switch name {
	case "truecolor":
		return termenv.TrueColor, nil
	case "ansi256":
		return termenv.ANSI256, nil
	case "ansi":
		return termenv.ANSI, nil
	case "ascii":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("unknown color profile %q (want truecolor, ansi256, ansi, or ascii)", name)
}

// ProfileName is the inverse of ParseProfile.
func ProfileName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

// Screen returns the size of the controlling terminal, or
// DefaultScreen when stdout is not a terminal.
func Screen() scenario.Size {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultScreen
	}
	return scenario.Size{Width: width, Height: height}
}

type inlineExecutor struct{}

func (inlineExecutor) Do(ctx context.Context, call func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	call()
	return nil
}
