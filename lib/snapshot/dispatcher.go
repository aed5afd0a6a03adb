// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"errors"
	"sync"
)

// ErrDispatcherClosed is returned by Do after Close.
var ErrDispatcherClosed = errors.New("snapshot: dispatcher closed")

// Dispatcher runs calls one at a time on a dedicated goroutine. It
// implements render.Executor.
type Dispatcher struct {
	jobs chan job
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

type job struct {
	call func()
	done chan struct{}
}

// NewDispatcher starts the dispatcher goroutine.
func NewDispatcher() *Dispatcher {
	dispatcher := &Dispatcher{
		jobs: make(chan job),
		quit: make(chan struct{}),
	}
	dispatcher.wg.Add(1)
	go dispatcher.loop()
	return dispatcher
}

func (dispatcher *Dispatcher) loop() {
	defer dispatcher.wg.Done()
	for {
		select {
		case <-dispatcher.quit:
			return
		case next := <-dispatcher.jobs:
			next.call()
			close(next.done)
		}
	}
}

// Do runs call on the dispatcher goroutine and waits for it to return.
// If ctx ends before the call starts, Do returns ctx's error and the
// call never runs.
func (dispatcher *Dispatcher) Do(ctx context.Context, call func()) error {
	next := job{call: call, done: make(chan struct{})}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-dispatcher.quit:
		return ErrDispatcherClosed
	case dispatcher.jobs <- next:
	}
	// An accepted call always runs to completion.
	<-next.done
	return nil
}

// Close stops the dispatcher after any in-flight call returns.
func (dispatcher *Dispatcher) Close() {
	dispatcher.once.Do(func() { close(dispatcher.quit) })
	dispatcher.wg.Wait()
}
