// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
)

// RenderScrollbar produces a single-column scrollbar of the given height.
// The thumb indicates the visible region within the total content.
//
// The scrollbar is always fully rendered: track + thumb. When content fits
// within the visible area the thumb spans the entire height. The thumb
// uses the accent color when focused, and a dim color when unfocused.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	trackStyle := theme.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := theme.NewStyle().Foreground(thumbColor)

	thumbOffset, thumbSize := ScrollbarThumb(height, totalItems, visibleItems, scrollOffset)
	lines := make([]string, height)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// ScrollbarThumb returns the thumb's first row and its length for a
// track of the given height.
func ScrollbarThumb(height, totalItems, visibleItems, scrollOffset int) (offset, size int) {
	if totalItems <= visibleItems || totalItems <= 0 {
		return 0, height
	}

	// Proportional to visible/total, minimum 1 row.
	size = max(height*visibleItems/totalItems, 1)

	scrollableRange := totalItems - visibleItems
	trackRange := height - size
	if scrollableRange > 0 && trackRange > 0 {
		offset = scrollOffset * trackRange / scrollableRange
	}
	if offset+size > height {
		offset = height - size
	}
	return offset, size
}
