// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import "fmt"

// Size is a width and height in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is zero or negative.
func (size Size) Empty() bool {
	return size.Width <= 0 || size.Height <= 0
}

func (size Size) String() string {
	return fmt.Sprintf("%dx%d", size.Width, size.Height)
}

// LayoutKind enumerates the sizing strategies a host can apply.
type LayoutKind int

const (
	// LayoutFill makes the content fill the host screen.
	LayoutFill LayoutKind = iota
	// LayoutSizeThatFits shrinks the host to the content's natural
	// size, bounded by the screen.
	LayoutSizeThatFits
	// LayoutFixed pins both dimensions.
	LayoutFixed
	// LayoutFixedWidth pins the width; height follows the content.
	LayoutFixedWidth
	// LayoutFixedHeight pins the height; width fills the screen.
	LayoutFixedHeight
)

// Layout is a sizing hint for the host that renders a scenario. The
// zero value is Fill.
type Layout struct {
	Kind   LayoutKind
	Width  int
	Height int
}

// Fill returns a layout that fills the host screen.
func Fill() Layout { return Layout{Kind: LayoutFill} }

// SizeThatFits returns a layout sized to the content.
func SizeThatFits() Layout { return Layout{Kind: LayoutSizeThatFits} }

// Fixed returns a layout with both dimensions pinned.
func Fixed(width, height int) Layout {
	return Layout{Kind: LayoutFixed, Width: width, Height: height}
}

// FixedWidth returns a layout with the width pinned.
func FixedWidth(width int) Layout { return Layout{Kind: LayoutFixedWidth, Width: width} }

// FixedHeight returns a layout with the height pinned.
func FixedHeight(height int) Layout { return Layout{Kind: LayoutFixedHeight, Height: height} }

// Proposed is the size offered to content before it has rendered:
// pinned dimensions where the layout has them, the screen elsewhere.
func (layout Layout) Proposed(screen Size) Size {
	switch layout.Kind {
	case LayoutFixed:
		return Size{Width: layout.Width, Height: layout.Height}
	case LayoutFixedWidth:
		return Size{Width: layout.Width, Height: screen.Height}
	case LayoutFixedHeight:
		return Size{Width: screen.Width, Height: layout.Height}
	default:
		return screen
	}
}

// Resolve returns the final host size given the screen and the size
// the content actually rendered at.
func (layout Layout) Resolve(screen, natural Size) Size {
	switch layout.Kind {
	case LayoutFixed:
		return Size{Width: layout.Width, Height: layout.Height}
	case LayoutFixedWidth:
		return Size{Width: layout.Width, Height: min(natural.Height, screen.Height)}
	case LayoutFixedHeight:
		return Size{Width: screen.Width, Height: layout.Height}
	case LayoutSizeThatFits:
		return Size{Width: min(natural.Width, screen.Width), Height: min(natural.Height, screen.Height)}
	default:
		return screen
	}
}

func (layout Layout) String() string {
	switch layout.Kind {
	case LayoutFixed:
		return fmt.Sprintf("fixed(%dx%d)", layout.Width, layout.Height)
	case LayoutFixedWidth:
		return fmt.Sprintf("fixed-width(%d)", layout.Width)
	case LayoutFixedHeight:
		return fmt.Sprintf("fixed-height(%d)", layout.Height)
	case LayoutSizeThatFits:
		return "size-that-fits"
	default:
		return "fill"
	}
}
