// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/playbook/lib/scenario"
)

// Image is a captured frame: a fixed grid of terminal cells.
type Image struct {
	Width  int
	Height int

	// Lines holds exactly Height rows, each exactly Width cells wide,
	// with ANSI styling.
	Lines []string

	Scheme  scenario.ColorScheme
	Profile termenv.Profile

	// Digest is the blake3 hash of the styled frame.
	Digest [32]byte
}

// NewImage crops and pads view to the size the layout resolves to.
// Views with no visible cells yield ErrEmptyFrame.
func NewImage(view string, layout scenario.Layout, options Options) (Image, error) {
	options = options.withDefaults()

	natural := scenario.Size{Width: lipgloss.Width(view), Height: lipgloss.Height(view)}
	if natural.Width == 0 {
		return Image{}, ErrEmptyFrame
	}
	size := layout.Resolve(options.Screen, natural)
	if size.Empty() {
		return Image{}, ErrEmptyFrame
	}

	source := strings.Split(view, "\n")
	lines := make([]string, size.Height)
	for row := range lines {
		line := ""
		if row < len(source) {
			line = ansi.Truncate(source[row], size.Width, "")
		}
		if strings.Contains(line, "\x1b[") {
			line += "\x1b[0m"
		}
		if pad := size.Width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[row] = line
	}

	return Image{
		Width:   size.Width,
		Height:  size.Height,
		Lines:   lines,
		Scheme:  options.Scheme,
		Profile: options.Profile,
		Digest:  blake3.Sum256([]byte(strings.Join(lines, "\n"))),
	}, nil
}

// String returns the styled frame.
func (image Image) String() string {
	return strings.Join(image.Lines, "\n")
}

// Plain returns the frame with styling removed.
func (image Image) Plain() string {
	plain := make([]string, len(image.Lines))
	for index, line := range image.Lines {
		plain[index] = ansi.Strip(line)
	}
	return strings.Join(plain, "\n")
}

// Empty reports whether the image holds no frame.
func (image Image) Empty() bool {
	return image.Width == 0 || image.Height == 0
}

// Thumbnail returns the top-left width x height cells of the frame,
// padded when the frame is smaller.
func (image Image) Thumbnail(width, height int) []string {
	rows := make([]string, height)
	for row := range rows {
		line := ""
		if row < len(image.Lines) {
			line = ansi.Truncate(image.Lines[row], width, "")
			if strings.Contains(line, "\x1b[") {
				line += "\x1b[0m"
			}
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[row] = line
	}
	return rows
}
