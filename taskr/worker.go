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
	"context"
	"strconv"
	"sync"

	"go.uber.org/atomic"

	"github.com/hicrproject/hicr/hicr/l0"
	"github.com/hicrproject/hicr/internal/logger"
)

// WorkerState mirrors the tasking model's worker lifecycle.
type WorkerState int32

const (
	WorkerIdle WorkerState = iota
	WorkerExecuting
	WorkerTerminating
)

// Worker is a long-running agent bound to one ProcessingUnit. It pulls
// ready tasks, resumes their coroutines, and services the yield/suspend
// outcomes, until the scheduler drains.
type Worker struct {
	id        int
	unit      l0.ProcessingUnit
	scheduler *Scheduler

	state atomic.Int32

	currentMu sync.Mutex
	current   *Task // nil when idle or terminating

	log *logger.Logger
}

func newWorker(id int, unit l0.ProcessingUnit, s *Scheduler) *Worker {
	w := &Worker{
		id:        id,
		unit:      unit,
		scheduler: s,
		log:       logger.GetLogger("Worker", strconv.Itoa(id)),
	}
	w.state.Store(int32(WorkerIdle))
	return w
}

// State returns the worker's current lifecycle state.
func (w *Worker) State() WorkerState { return WorkerState(w.state.Load()) }

// CurrentTask returns the task this worker is presently executing, or
// nil if it is idle or terminating.
func (w *Worker) CurrentTask() *Task {
	w.currentMu.Lock()
	defer w.currentMu.Unlock()
	return w.current
}

func (w *Worker) setCurrentTask(t *Task) {
	w.currentMu.Lock()
	w.current = t
	w.currentMu.Unlock()
}

// ID returns the worker's index within its Runtime, assigned in
// ProcessingUnit addition order.
func (w *Worker) ID() int { return w.id }

// run is the worker's pull loop. It returns the first task failure it
// observes, or nil on a clean drain. ctx is cancelled the moment any
// worker in the same run reports a failure (see Runtime.Run, which
// derives it from errgroup.WithContext): a failed task's dependents
// never reach the finished-set, so IsDrained alone would never trip
// for the workers that didn't hit the failure, and they'd poll an
// empty ready queue forever. Checking ctx.Done() each iteration gives
// them a way out that doesn't depend on the graph ever draining.
func (w *Worker) run(ctx context.Context) error {
	if err := w.unit.Initialize(); err != nil {
		w.log.Warn("processing unit failed to initialize", logger.Error(err))
	}
	defer func() {
		w.state.Store(int32(WorkerTerminating))
		if err := w.unit.Terminate(); err != nil {
			w.log.Warn("processing unit failed to terminate", logger.Error(err))
		}
	}()

	for !w.scheduler.IsDrained() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		t, ok := w.scheduler.PopReady()
		if !ok {
			w.scheduler.ScanWaiting()
			continue
		}

		if err := w.execute(t); err != nil {
			return err
		}
	}
	return nil
}

// execute drives one ready task through exactly one Resume (via the
// processing unit's Start) and acts
// on the outcome, per the tasking model's worker loop (§4.4 steps 3-5).
func (w *Worker) execute(t *Task) error {
	w.state.Store(int32(WorkerExecuting))
	w.setCurrentTask(t)
	t.setCurrentWorker(w)

	w.unit.Start(t)
	result := t.lastRunResult()

	w.setCurrentTask(nil)
	w.state.Store(int32(WorkerIdle))

	switch result {
	case runCompleted:
		if t.failure != nil {
			w.scheduler.MarkFailed()
			t.fire(OnTaskFinish)
			return t.failure
		}
		w.scheduler.MarkFinished(t.label)
		t.fire(OnTaskFinish)
	case runYielded:
		t.fire(OnTaskYield)
		if !w.scheduler.waiting.Push(t) {
			return ErrCapacityExhausted
		}
	case runSyncSuspended:
		t.fire(OnTaskSuspend)
		// t is already on a sync primitive's wait list; the worker
		// must not requeue it itself.
	}
	return nil
}
