// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"errors"
	"fmt"
)

// ErrEmptyFrame is returned when content renders nothing visible or the
// layout resolves to a zero-size frame.
var ErrEmptyFrame = errors.New("render: empty frame")

// RenderPanicError reports a panic raised by scenario content.
type RenderPanicError struct {
	// Stage is where the panic happened: "factory", "init", "update"
	// or "view".
	Stage string

	// Location is the scenario's registration site.
	Location string

	Value any
}

func (e *RenderPanicError) Error() string {
	return fmt.Sprintf("render: scenario at %s panicked in %s: %v", e.Location, e.Stage, e.Value)
}

// guard runs call, converting a panic into a RenderPanicError.
func guard(stage, location string, call func()) (err error) {
	defer func() {
		if value := recover(); value != nil {
			err = &RenderPanicError{Stage: stage, Location: location, Value: value}
		}
	}()
	call()
	return nil
}
