// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package playbookui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" form.
	Summary string
	Level   slog.Level
}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar before fading back to the keyboard help line.
const logRecordFadeDelay = 5 * time.Second

// LogHandler is a slog.Handler that routes records into a bubbletea
// program as messages, where the model shows them in the status bar.
// Records below the configured level are dropped.
//
// Records arriving before SetProgram is called are dropped. Handlers
// derived via WithAttrs/WithGroup share the program pointer, so one
// SetProgram call reaches all of them.
type LogHandler struct {
	level  slog.Level
	send   *atomic.Pointer[func(tea.Msg)]
	attrs  []slog.Attr
	groups []string
}

// NewLogHandler creates a handler that delivers records at or above
// level. Call SetProgram after creating the tea.Program.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level: level,
		send:  &atomic.Pointer[func(tea.Msg)]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	send := program.Send
	handler.send.Store(&send)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the program.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	send := handler.send.Load()
	if send == nil {
		return nil
	}
	message := logRecordMsg{Summary: handler.summarize(record), Level: record.Level}
	// Send blocks until the event loop receives; a record logged from
	// inside Update would otherwise deadlock.
	go (*send)(message)
	return nil
}

// summarize builds "message (key=value, ...)". Record attributes are
// qualified with the handler's groups.
func (handler *LogHandler) summarize(record slog.Record) string {
	var parts []string
	for _, attr := range handler.attrs {
		parts = appendAttr(parts, "", attr)
	}
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, prefix, attr)
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, prefix+attr.Key+".", member)
		}
		return parts
	}
	return append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
}

// WithAttrs returns a handler that adds attrs to every record. Attrs
// are qualified with the groups already opened.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := handler.clone()
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return derived
}

// WithGroup returns a handler that qualifies later attributes with
// name.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := handler.clone()
	derived.groups = append(derived.groups, name)
	return derived
}

func (handler *LogHandler) clone() *LogHandler {
	return &LogHandler{
		level:  handler.level,
		send:   handler.send,
		attrs:  append([]slog.Attr(nil), handler.attrs...),
		groups: append([]string(nil), handler.groups...),
	}
}
