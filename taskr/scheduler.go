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

package taskr

import (
	"go.uber.org/atomic"

	"github.com/hicrproject/hicr/internal/finishedset"
	"github.com/hicrproject/hicr/internal/queue"
)

// Scheduler owns the ready/waiting queues, the finished-set, and the
// admitted-but-not-finished counter. It is the only place dependency
// admission and completion bookkeeping happen; Worker only drives it.
type Scheduler struct {
	ready   *queue.Ring[*Task]
	waiting *queue.Ring[*Task]

	finished *finishedset.Set
	admitted *finishedset.Set

	pending atomic.Int64
}

// NewScheduler allocates ready/waiting queues sized per cfg.
func NewScheduler(cfg Config) *Scheduler {
	return &Scheduler{
		ready:    queue.NewRing[*Task](cfg.MaxSimultaneousTasks),
		waiting:  queue.NewRing[*Task](cfg.MaxSimultaneousTasks),
		finished: finishedset.New(),
		admitted: finishedset.New(),
	}
}

// Admit places t on the waiting queue and marks it pending completion.
// It fails with ErrDuplicateLabel if t.Label() was already admitted this
// run, or ErrCapacityExhausted if the waiting queue is full.
func (s *Scheduler) Admit(t *Task) error {
	if s.admitted.Contains(t.label) {
		return ErrDuplicateLabel
	}
	t.admit(s)
	if !s.waiting.Push(t) {
		return ErrCapacityExhausted
	}
	s.admitted.Insert(t.label)
	t.state.Store(int32(StateInitial))
	s.pending.Inc()
	return nil
}

// MarkFinished inserts label into the finished-set, unblocking any
// dependent whose next readiness scan observes it, and decrements the
// pending count.
func (s *Scheduler) MarkFinished(label uint64) {
	s.finished.Insert(label)
	s.pending.Dec()
}

// MarkFailed decrements the pending count without inserting into the
// finished-set: per the reference policy for task failure (see
// DESIGN.md), dependents of a failed task never become ready.
func (s *Scheduler) MarkFailed() {
	s.pending.Dec()
}

// IsDrained reports whether every admitted task has finished (or
// failed).
func (s *Scheduler) IsDrained() bool {
	return s.pending.Load() <= 0
}

// PopReady pops the next ready task, if any.
func (s *Scheduler) PopReady() (*Task, bool) {
	return s.ready.Pop()
}

// ScanWaiting pops one task from the waiting queue and either promotes
// it to ready (if its dependencies are satisfied) or pushes it back onto
// the tail of the waiting queue. Returns false if the waiting queue was
// empty. This is the dependency-satisfaction mechanism described in the
// tasking model: lock-free, and safe to call concurrently from every
// worker.
func (s *Scheduler) ScanWaiting() bool {
	t, ok := s.waiting.Pop()
	if !ok {
		return false
	}
	if t.IsReady() {
		if s.ready.Push(t) {
			return true
		}
		// Ready queue momentarily full: give the waiting-queue
		// rotation one retry before giving up, matching the tasking
		// model's "retried once, then fails" recovery. The slot we
		// just popped makes an immediate retry all but certain to
		// succeed; a second failure means some other worker's
		// reschedule raced us, so we spin once more before pushing
		// back unconditionally.
		if !s.waiting.Push(t) {
			_ = s.waiting.Push(t)
		}
		return true
	}
	s.waiting.Push(t)
	return true
}

// reschedule re-admits a task woken from a sync primitive's wait list.
// It is pushed directly to the ready queue, since its dependencies were
// necessarily already satisfied the first time it ran; if the ready
// queue is momentarily full it falls back to the waiting queue, where
// the next scan will promote it.
func (s *Scheduler) reschedule(t *Task) {
	if s.ready.Push(t) {
		return
	}
	s.waiting.Push(t)
}

// ReadyLen and WaitingLen are instantaneous, racy depth estimates for
// the observability surface.
func (s *Scheduler) ReadyLen() int   { return s.ready.Len() }
func (s *Scheduler) WaitingLen() int { return s.waiting.Len() }
func (s *Scheduler) FinishedLen() int { return s.finished.Len() }
func (s *Scheduler) Pending() int64   { return s.pending.Load() }
