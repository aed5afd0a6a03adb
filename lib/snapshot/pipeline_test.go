// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/bureau-foundation/playbook/lib/clock"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/testutil"
)

const waitTimeout = 5 * time.Second

func label(text string) scenario.Factory {
	return scenario.ViewFunc(func() string { return text })
}

func testData(scenarios ...scenario.Scenario) []search.Data {
	registry := playbook.New()
	registry.Add("Widgets", scenarios...)
	return search.Filter(registry.Stores(), nil).Flatten()
}

func newTestPipeline(t *testing.T, config Config) (*Pipeline, *clock.FakeClock, *bytes.Buffer) {
	t.Helper()
	fake := clock.Fake(time.Unix(0, 0))
	var logs bytes.Buffer
	config.Clock = fake
	config.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	config.Profile = termenv.Ascii
	config.Screen = scenario.Size{Width: 30, Height: 6}
	pipeline := New(config)
	t.Cleanup(pipeline.Close)
	return pipeline, fake, &logs
}

func requireState(t *testing.T, pipeline *Pipeline, id playbook.ID, want EntryState) Entry {
	t.Helper()
	entry, ok := pipeline.Entry(id)
	if !ok {
		t.Fatalf("no entry for %s", id)
	}
	if entry.State != want {
		t.Fatalf("%s state = %v (err %v), want %v", id, entry.State, entry.Err, want)
	}
	return entry
}

func TestPrepareRespectsLimit(t *testing.T) {
	pipeline, fake, _ := newTestPipeline(t, Config{Limit: 2})
	data := testData(
		scenario.New("a", scenario.SizeThatFits(), label("alpha")),
		scenario.New("b", scenario.SizeThatFits(), label("beta")),
		scenario.New("c", scenario.SizeThatFits(), label("gamma")),
	)

	done := pipeline.Prepare(context.Background(), data)
	if pipeline.Status() != Standby {
		t.Fatalf("Status() = %v before the batch finished, want standby", pipeline.Status())
	}
	requireState(t, pipeline, data[2].ID, Deferred)

	fake.WaitForTimers(2)
	fake.Advance(scenario.DefaultDelay)
	testutil.RequireClosed(t, done, waitTimeout, "waiting for the batch")

	if got := requireState(t, pipeline, data[0].ID, Captured).Image.Plain(); got != "alpha" {
		t.Errorf("a frame = %q, want alpha", got)
	}
	requireState(t, pipeline, data[1].ID, Captured)
	requireState(t, pipeline, data[2].ID, Deferred)
	if pipeline.Status() != Ready {
		t.Errorf("Status() = %v, want ready", pipeline.Status())
	}
}

func TestPrepareLimitAboveCount(t *testing.T) {
	pipeline, fake, _ := newTestPipeline(t, Config{Limit: 10})
	data := testData(scenario.New("only", scenario.SizeThatFits(), label("x")))

	done := pipeline.Prepare(context.Background(), data)
	fake.WaitForTimers(1)
	fake.Advance(scenario.DefaultDelay)
	testutil.RequireClosed(t, done, waitTimeout, "waiting for the batch")

	requireState(t, pipeline, data[0].ID, Captured)
}

func TestPrepareEmpty(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, Config{})
	testutil.RequireClosed(t, pipeline.Prepare(context.Background(), nil), waitTimeout, "empty batch")
	if pipeline.Status() != Ready {
		t.Errorf("Status() = %v, want ready", pipeline.Status())
	}
}

func TestSettleDelaysOverlap(t *testing.T) {
	pipeline, fake, _ := newTestPipeline(t, Config{Concurrency: 3})
	data := testData(
		scenario.New("a", scenario.Fill(), label("a")),
		scenario.New("b", scenario.Fill(), label("b")),
		scenario.New("c", scenario.Fill(), label("c")),
	)

	done := pipeline.Prepare(context.Background(), data)
	// All three units wait at the same time; a single advance of one
	// delay releases the whole batch.
	fake.WaitForTimers(3)
	fake.Advance(scenario.DefaultDelay)
	testutil.RequireClosed(t, done, waitTimeout, "waiting for the batch")
	for _, item := range data {
		requireState(t, pipeline, item.ID, Captured)
	}
}

func TestFailuresMarkUnavailable(t *testing.T) {
	pipeline, fake, logs := newTestPipeline(t, Config{})
	data := testData(
		scenario.New("boom", scenario.Fill(), func(scenario.Context) scenario.Content {
			panic("no content today")
		}, scenario.WithSource("widgets.go", 9)),
		scenario.New("blank", scenario.SizeThatFits(), label("")),
		scenario.New("fine", scenario.SizeThatFits(), label("fine")),
	)

	done := pipeline.Prepare(context.Background(), data)
	fake.WaitForTimers(2)
	fake.Advance(scenario.DefaultDelay)
	testutil.RequireClosed(t, done, waitTimeout, "waiting for the batch")

	boom := requireState(t, pipeline, data[0].ID, Unavailable)
	var panicErr *render.RenderPanicError
	if !errors.As(boom.Err, &panicErr) {
		t.Errorf("boom error = %v, want RenderPanicError", boom.Err)
	}
	blank := requireState(t, pipeline, data[1].ID, Unavailable)
	if !errors.Is(blank.Err, render.ErrEmptyFrame) {
		t.Errorf("blank error = %v, want ErrEmptyFrame", blank.Err)
	}
	requireState(t, pipeline, data[2].ID, Captured)

	if pipeline.Status() != Ready {
		t.Errorf("Status() = %v, want ready despite failures", pipeline.Status())
	}
	if !strings.Contains(logs.String(), "location=widgets.go:9") {
		t.Errorf("failure log missing location:\n%s", logs.String())
	}
}

func TestCloseDiscardsLateResults(t *testing.T) {
	pipeline, fake, _ := newTestPipeline(t, Config{})
	data := testData(
		scenario.New("a", scenario.Fill(), label("a")),
		scenario.New("b", scenario.Fill(), label("b")),
	)

	done := pipeline.Prepare(context.Background(), data)
	fake.WaitForTimers(2)
	pipeline.Close()
	fake.Advance(scenario.DefaultDelay)
	testutil.RequireClosed(t, done, waitTimeout, "units should stop after close")

	for _, item := range data {
		requireState(t, pipeline, item.ID, Pending)
	}
	if pipeline.Status() != Standby {
		t.Errorf("Status() = %v after close, want standby", pipeline.Status())
	}
	for update := range pipeline.Updates() {
		if update.Entry != nil {
			t.Errorf("entry update published around close: %+v", update.Entry)
		}
	}
}

func TestPrepareSupersedesEarlierBatch(t *testing.T) {
	pipeline, fake, _ := newTestPipeline(t, Config{})
	first := testData(scenario.New("old", scenario.Fill(), label("old")))
	second := testData(scenario.New("new", scenario.SizeThatFits(), label("new")))

	firstDone := pipeline.Prepare(context.Background(), first)
	fake.WaitForTimers(1)
	secondDone := pipeline.Prepare(context.Background(), second)
	testutil.RequireClosed(t, firstDone, waitTimeout, "superseded batch should finish")

	// The cancelled unit's timer stays registered on the fake clock.
	fake.WaitForTimers(2)
	fake.Advance(scenario.DefaultDelay)
	testutil.RequireClosed(t, secondDone, waitTimeout, "waiting for the new batch")

	if _, ok := pipeline.Entry(first[0].ID); ok {
		t.Error("entry from the superseded batch survived")
	}
	requireState(t, pipeline, second[0].ID, Captured)
}

func TestCaptureOnDemand(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, Config{Limit: -1})
	data := testData(scenario.New("later", scenario.SizeThatFits(), label("later"), scenario.WithDelay(0)))

	testutil.RequireClosed(t, pipeline.Prepare(context.Background(), data), waitTimeout, "no eager units")
	requireState(t, pipeline, data[0].ID, Deferred)

	first, err := pipeline.Capture(context.Background(), data[0].ID)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	second, err := pipeline.Capture(context.Background(), data[0].ID)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if first.Plain() != "later" {
		t.Errorf("frame = %q, want later", first.Plain())
	}
	if first.Digest != second.Digest {
		t.Error("two captures of the same scenario produced different digests")
	}
	requireState(t, pipeline, data[0].ID, Deferred)
}

func TestCaptureErrors(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, Config{})
	unknown := playbook.ID{Kind: "Nope", Name: "nothing"}
	if _, err := pipeline.Capture(context.Background(), unknown); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("unknown id error = %v, want ErrUnknownScenario", err)
	}
	pipeline.Close()
	if _, err := pipeline.Capture(context.Background(), unknown); !errors.Is(err, ErrClosed) {
		t.Errorf("closed error = %v, want ErrClosed", err)
	}
}

func TestDispatcherSerializes(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Close()

	var (
		active  int
		maximum int
		guard   sync.Mutex
		group   sync.WaitGroup
	)
	for range 16 {
		group.Add(1)
		go func() {
			defer group.Done()
			err := dispatcher.Do(context.Background(), func() {
				guard.Lock()
				active++
				maximum = max(maximum, active)
				guard.Unlock()
				time.Sleep(time.Millisecond)
				guard.Lock()
				active--
				guard.Unlock()
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
		}()
	}
	group.Wait()
	if maximum != 1 {
		t.Errorf("%d calls ran at once, want 1", maximum)
	}
}

func TestDispatcherClosed(t *testing.T) {
	dispatcher := NewDispatcher()
	dispatcher.Close()
	dispatcher.Close()
	if err := dispatcher.Do(context.Background(), func() {}); !errors.Is(err, ErrDispatcherClosed) {
		t.Errorf("Do after Close = %v, want ErrDispatcherClosed", err)
	}
}
