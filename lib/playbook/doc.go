// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package playbook is the scenario registry. A [Playbook] holds scenario
// groups keyed by kind, in registration order. Registration is
// append-only.
//
// [Default] is the conventional shared instance that scenario packages
// register into from init functions. Everything downstream (search,
// snapshot pipeline, store) takes a *Playbook explicitly, so tests build
// their own with [New].
package playbook
