// Licensed to the HiCR authors under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. The HiCR authors license this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package coroutine implements a stackful cooperative context on top of a
// dedicated goroutine, handed off through a pair of rendezvous channels so
// that exactly one side (driver or body) runs at any instant.
//
// The fixed stack size described by the HiCR tasking model is not a real
// allocation here - Go goroutine stacks grow on demand - but it is carried
// as a documented budget (StackSize) so callers reason about it the same
// way they would with a native stackful coroutine. Overflowing that budget
// is not detected; it is a contractual limit, not an enforced one.
package coroutine

import (
	"fmt"
)

// StackSize is the default per-coroutine stack budget, in bytes. It mirrors
// COROUTINE_STACK_SIZE from the tasking model and is informational only.
const StackSize = 65536

// state tracks where a Coroutine is in its lifecycle, for panic messages
// and for rejecting illegal transitions (e.g. resuming a finished body).
type state int

const (
	stateFresh state = iota
	stateSuspended
	stateRunning
	stateFinished
)

// Coroutine is a single-owner stackful context: one caller drives it via
// Start/Resume, and the function running inside it calls Yield to hand
// control back. It is not safe for concurrent use from more than one
// driver goroutine at a time.
type Coroutine struct {
	resumeCh chan struct{}
	yieldCh  chan struct{}
	state    state
}

// New allocates a Coroutine in its fresh state. The body is not started
// until Start is called.
func New() *Coroutine {
	return &Coroutine{
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan struct{}),
		state:    stateFresh,
	}
}

// Start launches fn on a new goroutine and blocks until fn calls Yield (or
// returns). fn receives the Coroutine so it can call Yield on itself.
// Start may be called at most once per Coroutine.
func (c *Coroutine) Start(fn func(*Coroutine)) {
	if c.state != stateFresh {
		panic("coroutine: Start called more than once")
	}
	c.state = stateRunning
	go func() {
		fn(c)
		c.state = stateFinished
		c.yieldCh <- struct{}{}
	}()
	<-c.yieldCh
}

// Resume hands control back into a suspended coroutine body and blocks
// until the body yields again or completes. Resuming a finished or fresh
// coroutine panics: completion must be detected by the caller through
// external state (the owning Task's state machine), never by blindly
// resuming.
func (c *Coroutine) Resume() {
	switch c.state {
	case stateSuspended:
		c.state = stateRunning
		c.resumeCh <- struct{}{}
		<-c.yieldCh
	case stateFinished:
		panic("coroutine: Resume called on a finished coroutine")
	case stateFresh:
		panic("coroutine: Resume called before Start")
	default:
		panic(fmt.Sprintf("coroutine: Resume called while in state %d", c.state))
	}
}

// Yield suspends the calling coroutine body, handing control back to
// whoever last called Start or Resume. It must only be called from inside
// the coroutine's own body.
func (c *Coroutine) Yield() {
	if c.state != stateRunning {
		panic("coroutine: Yield called outside a running coroutine")
	}
	c.state = stateSuspended
	c.yieldCh <- struct{}{}
	<-c.resumeCh
}

// Finished reports whether the coroutine's body has returned.
func (c *Coroutine) Finished() bool {
	return c.state == stateFinished
}
