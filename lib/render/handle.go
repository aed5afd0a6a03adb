// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import "sync/atomic"

// Handle is a non-owning reference to the live host currently on
// screen. The presentation layer sets it when it mounts content and
// clears it when the content goes away; readers such as the share
// action must treat a nil Load as "nothing to capture". Handle never
// closes the host it points at.
type Handle struct {
	host atomic.Pointer[Host]
}

// Set points the handle at host.
func (handle *Handle) Set(host *Host) { handle.host.Store(host) }

// Clear drops the reference.
func (handle *Handle) Clear() { handle.host.Store(nil) }

// Load returns the referenced host, or nil.
func (handle *Handle) Load() *Host { return handle.host.Load() }
