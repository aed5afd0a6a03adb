// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot captures still previews of scenarios.
//
// A [Pipeline] renders the first Limit scenarios of a search result
// eagerly: each unit builds the content in an offscreen host, waits for
// the scenario's settle delay on the injected clock, captures the frame
// and discards the host. Entries past the limit are marked deferred and
// captured on demand through [Pipeline.Capture]. The pipeline reports
// [Ready] once every eager unit has either captured or failed; a failed
// unit marks its entry unavailable and is logged without stopping the
// batch.
//
// Calls into scenario content (factories, Update, View) are serialized
// onto one [Dispatcher] goroutine. Settle delays run concurrently, so a
// batch of N scenarios with delay d takes roughly d, not N*d.
//
// [Pipeline.Close] cancels outstanding units. Results that arrive after
// Close, or after a newer Prepare, are discarded.
package snapshot
