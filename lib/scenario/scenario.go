// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"
)

// Name identifies a scenario within its kind.
type Name string

// Kind groups related scenarios, typically one component or feature.
type Kind string

// PresentationStyle controls how a selected scenario is presented.
type PresentationStyle int

const (
	// Modal presents the scenario in a sheet over the gallery.
	Modal PresentationStyle = iota
	// Full presents the scenario over the whole screen.
	Full
)

func (style PresentationStyle) String() string {
	if style == Full {
		return "full"
	}
	return "modal"
}

// DefaultDelay is the settle time before a snapshot is captured.
const DefaultDelay = 200 * time.Millisecond

// Scenario is one registered component state. Scenarios are values
// and are not modified after construction.
type Scenario struct {
	Name              Name
	Layout            Layout
	PresentationStyle PresentationStyle

	// Delay is how long the snapshot host lets the content settle
	// before capturing it.
	Delay time.Duration

	// File and Line locate the registration for diagnostics.
	File string
	Line int

	// Notes is optional markdown shown next to the live content.
	Notes string

	Factory Factory
}

// Option customizes a Scenario built by New.
type Option func(*Scenario)

// WithStyle sets the presentation style.
func WithStyle(style PresentationStyle) Option {
	return func(s *Scenario) { s.PresentationStyle = style }
}

// WithDelay sets the snapshot settle delay.
func WithDelay(delay time.Duration) Option {
	return func(s *Scenario) { s.Delay = delay }
}

// WithNotes attaches markdown notes.
func WithNotes(markdown string) Option {
	return func(s *Scenario) { s.Notes = markdown }
}

// WithSource overrides the recorded source location. Helpers that
// build scenarios on behalf of their caller use this to point at the
// real registration site.
func WithSource(file string, line int) Option {
	return func(s *Scenario) {
		s.File = file
		s.Line = line
	}
}

// New builds a scenario. The source location defaults to the caller of
// New.
func New(name Name, layout Layout, factory Factory, options ...Option) Scenario {
	s := Scenario{
		Name:              name,
		Layout:            layout,
		PresentationStyle: Modal,
		Delay:             DefaultDelay,
		Factory:           factory,
	}
	if _, file, line, ok := runtime.Caller(1); ok {
		s.File = file
		s.Line = line
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// Make builds a fresh content instance.
func (s Scenario) Make(ctx Context) Content {
	return s.Factory(ctx)
}

// Location formats the source location as "file.go:42".
func (s Scenario) Location() string {
	if s.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(s.File), s.Line)
}
