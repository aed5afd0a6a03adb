// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by the
// snapshot pipeline and the render hosts.
//
// A scenario's settle delay is a timed suspension: the host waits on
// Clock.After rather than sleeping the render dispatcher. Production
// code passes Real(). Tests pass Fake(), whose time only moves when the
// test calls Advance, so a pipeline with a 200ms delay per scenario can
// be driven step by step:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	pipeline := snapshot.New(snapshot.Config{Clock: fake, ...})
//	go pipeline.Prepare(ctx, data)
//	fake.WaitForTimers(2)               // both units are settling
//	fake.Advance(200 * time.Millisecond) // both capture
//
// WaitForTimers closes the race between a goroutine registering its
// wait and the test advancing time.
package clock
