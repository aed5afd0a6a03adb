// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeatDecayDuration is how long a preview glows after it changes.
// Heat starts at 1.0 and decays linearly to 0.0 over this duration.
const HeatDecayDuration = 3 * time.Second

// HeatTickInterval is the re-render interval while any items are hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatKind distinguishes different types of changes for color selection.
type HeatKind int

const (
	// HeatCaptured marks a preview that was just captured (amber glow).
	HeatCaptured HeatKind = iota
	// HeatFailed marks a preview whose capture just failed (red glow).
	HeatFailed
)

type heatEntry struct {
	ignition time.Time
	kind     HeatKind
}

// HeatTracker maps item keys to ignition timestamps for animated
// change highlighting. Each change "ignites" an item, which then
// decays from full intensity to zero over [HeatDecayDuration].
type HeatTracker struct {
	entries map[string]heatEntry
}

// NewHeatTracker creates an empty heat tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{
		entries: make(map[string]heatEntry),
	}
}

// Ignite records a change. Resets the decay timer if the item was
// already hot.
func (tracker *HeatTracker) Ignite(key string, kind HeatKind, now time.Time) {
	tracker.entries[key] = heatEntry{ignition: now, kind: kind}
}

// Heat returns the current intensity for an item: 1.0 at ignition,
// linearly decaying to 0.0 over [HeatDecayDuration].
func (tracker *HeatTracker) Heat(key string, now time.Time) float64 {
	entry, exists := tracker.entries[key]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= HeatDecayDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(HeatDecayDuration)
}

// Kind returns the heat kind for an item. Only meaningful when Heat
// returns > 0.
func (tracker *HeatTracker) Kind(key string) HeatKind {
	entry, exists := tracker.entries[key]
	if !exists {
		return HeatCaptured
	}
	return entry.kind
}

// HasHot reports whether any item still has heat, meaning the tick
// timer should keep running. Fully decayed entries are dropped.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for key, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, key)
	}
	return hot
}

// Accent returns the background tint for an item, and false when the
// item is cold. The glow holds full color for the first half of the
// decay and is dropped after.
func (tracker *HeatTracker) Accent(theme Theme, key string, now time.Time) (lipgloss.TerminalColor, bool) {
	heat := tracker.Heat(key, now)
	if heat < 0.5 {
		return nil, false
	}
	if tracker.Kind(key) == HeatFailed {
		return theme.FailedAccent, true
	}
	return theme.HotAccent, true
}
