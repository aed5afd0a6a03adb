// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/playbook/lib/clock"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/search"
)

// DefaultLimit is the number of scenarios captured eagerly.
const DefaultLimit = 100

// DefaultConcurrency bounds how many eager units wait at once.
const DefaultConcurrency = 4

// ErrClosed is returned by operations on a closed pipeline.
var ErrClosed = errors.New("snapshot: pipeline closed")

// ErrUnknownScenario is returned by Capture for identities the last
// Prepare did not include.
var ErrUnknownScenario = errors.New("snapshot: unknown scenario")

// Status is the pipeline's overall readiness.
type Status int

const (
	// Standby means eager units are still running (or Prepare has not
	// been called).
	Standby Status = iota

	// Ready means every eager unit has captured or failed.
	Ready
)

func (status Status) String() string {
	if status == Ready {
		return "ready"
	}
	return "standby"
}

// EntryState is the capture state of one scenario.
type EntryState int

const (
	Pending EntryState = iota
	Captured
	Deferred
	Unavailable
)

func (state EntryState) String() string {
	switch state {
	case Captured:
		return "captured"
	case Deferred:
		return "deferred"
	case Unavailable:
		return "unavailable"
	default:
		return "pending"
	}
}

// Entry is the pipeline's record for one scenario.
type Entry struct {
	ID    playbook.ID
	State EntryState

	// Image is set when State is Captured.
	Image render.Image

	// Err is set when State is Unavailable.
	Err error
}

// Update is a progress notification. Entry is nil for status changes.
type Update struct {
	Status Status
	Entry  *Entry
}

// Config configures a Pipeline. Zero fields take the defaults noted.
type Config struct {
	// Limit is the number of scenarios captured eagerly. Default 100.
	Limit int

	// Scheme is the color scheme previews render against. Default light.
	Scheme scenario.ColorScheme

	// Profile is the color fidelity of captured frames. The zero value
	// is termenv.TrueColor.
	Profile termenv.Profile

	// Screen is the size Fill layouts expand to. Default
	// render.DefaultScreen.
	Screen scenario.Size

	// Concurrency bounds how many eager units run at once. Default 4.
	Concurrency int

	// Clock times settle delays. Default clock.Real().
	Clock clock.Clock

	// Logger receives capture failures. Default slog.Default().
	Logger *slog.Logger
}

func (config Config) withDefaults() Config {
	if config.Limit == 0 {
		config.Limit = DefaultLimit
	}
	if config.Limit < 0 {
		config.Limit = 0
	}
	if config.Screen.Empty() {
		config.Screen = render.DefaultScreen
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return config
}

// Pipeline captures previews for a search result.
type Pipeline struct {
	config     Config
	dispatcher *Dispatcher

	mu         sync.Mutex
	status     Status
	entries    map[playbook.ID]*Entry
	scenarios  map[playbook.ID]scenario.Scenario
	generation uint64
	cancel     context.CancelFunc
	closed     bool
	updates    chan Update
}

// New creates an idle pipeline. Call Close when done with it.
func New(config Config) *Pipeline {
	return &Pipeline{
		config:     config.withDefaults(),
		dispatcher: NewDispatcher(),
		entries:    make(map[playbook.ID]*Entry),
		scenarios:  make(map[playbook.ID]scenario.Scenario),
		updates:    make(chan Update, 256),
	}
}

// Config returns the effective configuration.
func (pipeline *Pipeline) Config() Config { return pipeline.config }

// Prepare starts capturing previews for data, replacing any earlier
// batch. The first Limit entries are captured asynchronously; the rest
// are marked Deferred. The returned channel closes when the batch
// reaches Ready, or when it is superseded or closed.
func (pipeline *Pipeline) Prepare(ctx context.Context, data []search.Data) <-chan struct{} {
	done := make(chan struct{})

	pipeline.mu.Lock()
	if pipeline.closed {
		pipeline.mu.Unlock()
		close(done)
		return done
	}
	if pipeline.cancel != nil {
		pipeline.cancel()
	}
	pipeline.generation++
	generation := pipeline.generation
	runCtx, cancel := context.WithCancel(ctx)
	pipeline.cancel = cancel

	pipeline.status = Standby
	pipeline.entries = make(map[playbook.ID]*Entry, len(data))
	pipeline.scenarios = make(map[playbook.ID]scenario.Scenario, len(data))
	eager := data[:min(pipeline.config.Limit, len(data))]
	for index, item := range data {
		state := Pending
		if index >= len(eager) {
			state = Deferred
		}
		pipeline.entries[item.ID] = &Entry{ID: item.ID, State: state}
		pipeline.scenarios[item.ID] = item.Scenario
	}
	pipeline.send(Update{Status: Standby})
	pipeline.mu.Unlock()

	group := new(errgroup.Group)
	group.SetLimit(pipeline.config.Concurrency)
	go func() {
		defer close(done)
		for _, item := range eager {
			group.Go(func() error {
				pipeline.unit(runCtx, generation, item)
				return nil
			})
		}
		_ = group.Wait()

		pipeline.mu.Lock()
		defer pipeline.mu.Unlock()
		if pipeline.current(generation) {
			pipeline.status = Ready
			pipeline.send(Update{Status: Ready})
		}
	}()
	return done
}

// unit renders one eager entry and publishes the result if the batch
// is still current.
func (pipeline *Pipeline) unit(ctx context.Context, generation uint64, item search.Data) {
	if ctx.Err() != nil {
		return
	}
	image, err := pipeline.render(ctx, item.Scenario)
	if ctx.Err() != nil {
		return
	}

	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	if !pipeline.current(generation) {
		return
	}
	entry := &Entry{ID: item.ID, State: Captured, Image: image}
	if err != nil {
		entry = &Entry{ID: item.ID, State: Unavailable, Err: err}
		pipeline.config.Logger.Warn("snapshot unavailable",
			"kind", string(item.ID.Kind),
			"name", string(item.ID.Name),
			"location", item.Scenario.Location(),
			"error", err,
		)
	}
	pipeline.entries[item.ID] = entry
	published := *entry
	pipeline.send(Update{Status: pipeline.status, Entry: &published})
}

func (pipeline *Pipeline) render(ctx context.Context, s scenario.Scenario) (render.Image, error) {
	host, err := render.NewOffscreenHost(ctx, s, render.Options{
		Screen:   pipeline.config.Screen,
		Scheme:   pipeline.config.Scheme,
		Profile:  pipeline.config.Profile,
		Executor: pipeline.dispatcher,
	})
	if err != nil {
		return render.Image{}, err
	}
	defer host.Close()

	if err := host.Settle(ctx, pipeline.config.Clock, s.Delay); err != nil {
		return render.Image{}, err
	}
	return host.Capture(ctx)
}

// Capture renders id synchronously and returns its image. Captured
// entries return the stored image; deferred and pending entries are
// rendered for the caller without being stored.
func (pipeline *Pipeline) Capture(ctx context.Context, id playbook.ID) (render.Image, error) {
	pipeline.mu.Lock()
	if pipeline.closed {
		pipeline.mu.Unlock()
		return render.Image{}, ErrClosed
	}
	entry, ok := pipeline.entries[id]
	s := pipeline.scenarios[id]
	pipeline.mu.Unlock()

	if !ok {
		return render.Image{}, fmt.Errorf("%w: %s", ErrUnknownScenario, id)
	}
	if entry.State == Captured {
		return entry.Image, nil
	}
	image, err := pipeline.render(ctx, s)
	if errors.Is(err, ErrDispatcherClosed) {
		return render.Image{}, ErrClosed
	}
	return image, err
}

// Entry returns the current record for id.
func (pipeline *Pipeline) Entry(id playbook.ID) (Entry, bool) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	entry, ok := pipeline.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Status returns the pipeline's readiness.
func (pipeline *Pipeline) Status() Status {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	return pipeline.status
}

// Updates delivers progress notifications. Notifications are dropped
// when the buffer is full; receivers should treat an update as a hint
// and read Entry or Status for the current state. The channel closes
// on Close.
func (pipeline *Pipeline) Updates() <-chan Update { return pipeline.updates }

// Close cancels outstanding units and stops the render dispatcher. No
// entry changes after Close returns. Close is idempotent.
func (pipeline *Pipeline) Close() {
	pipeline.mu.Lock()
	if pipeline.closed {
		pipeline.mu.Unlock()
		return
	}
	pipeline.closed = true
	pipeline.generation++
	if pipeline.cancel != nil {
		pipeline.cancel()
	}
	close(pipeline.updates)
	pipeline.mu.Unlock()

	pipeline.dispatcher.Close()
}

// current reports whether generation may still publish. Caller holds mu.
func (pipeline *Pipeline) current(generation uint64) bool {
	return !pipeline.closed && generation == pipeline.generation
}

// send queues an update without blocking. Caller holds mu.
func (pipeline *Pipeline) send(update Update) {
	if pipeline.closed {
		return
	}
	select {
	case pipeline.updates <- update:
	default:
	}
}
