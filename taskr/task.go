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
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/hicrproject/hicr/coroutine"
	"github.com/hicrproject/hicr/hicr/l0"
)

// State is a Task's position in its lifecycle.
type State int32

const (
	StateInitial State = iota
	StateReady
	StateRunning
	StateSuspended
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// suspendReason records why the most recent Yield returned control to
// the worker, so Worker.execute can tell a cooperative yield from a
// sync-primitive park without the coroutine package knowing anything
// about tasks.
type suspendReason int32

const (
	reasonNone suspendReason = iota
	reasonYield
	reasonSync
)

// Task is a labeled node of the dependency graph. Construct with
// NewTask, register dependencies and callbacks, then hand it to
// Runtime.AddTask. After admission the dependency list is frozen.
type Task struct {
	label    uint64
	unit     *l0.ExecutionUnit
	scheduler *Scheduler

	mu        sync.Mutex
	deps      []uint64
	admitted  bool
	callbacks map[Event]Callback

	state  atomic.Int32
	reason atomic.Int32

	coro       *coroutine.Coroutine
	lastResult atomic.Int32

	workerMu sync.Mutex
	worker   *Worker

	failure error
}

// NewTask constructs a Task with the given label and execution unit. The
// label must be unique among tasks admitted to the same Runtime in the
// same run.
func NewTask(label uint64, unit *l0.ExecutionUnit) *Task {
	t := &Task{
		label:     label,
		unit:      unit,
		callbacks: make(map[Event]Callback),
	}
	t.state.Store(int32(StateInitial))
	return t
}

// Label returns the task's user-chosen identifier.
func (t *Task) Label() uint64 { return t.label }

// State returns the task's current lifecycle state.
func (t *Task) State() State { return State(t.state.Load()) }

// Failure returns the error the task's callable produced, if any. It is
// only meaningful once State() == StateFinished and the task in fact
// failed.
func (t *Task) Failure() error { return t.failure }

// AddTaskDependency appends a prerequisite label. Valid only before the
// task is admitted via Runtime.AddTask.
func (t *Task) AddTaskDependency(label uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.admitted {
		return fmt.Errorf("taskr: task %d: cannot add dependency after admission", t.label)
	}
	t.deps = append(t.deps, label)
	return nil
}

// SetCallback registers fn to run when event fires on this task,
// replacing any previously registered callback for the same event.
func (t *Task) SetCallback(event Event, fn Callback) {
	t.mu.Lock()
	t.callbacks[event] = fn
	t.mu.Unlock()
}

func (t *Task) fire(event Event) {
	t.mu.Lock()
	fn := t.callbacks[event]
	t.mu.Unlock()
	if fn != nil {
		fn(t)
	}
}

// admit freezes the dependency list and records the scheduler this task
// was admitted to, so IsReady can consult its finished-set.
func (t *Task) admit(s *Scheduler) {
	t.mu.Lock()
	t.admitted = true
	t.scheduler = s
	t.mu.Unlock()
}

// IsReady reports whether every prerequisite label is in the owning
// scheduler's finished-set. Safe to call concurrently from any worker.
func (t *Task) IsReady() bool {
	t.mu.Lock()
	deps := t.deps
	s := t.scheduler
	t.mu.Unlock()
	if s == nil {
		return len(deps) == 0
	}
	for _, dep := range deps {
		if !s.finished.Contains(dep) {
			return false
		}
	}
	return true
}

// schedulerRef returns the Scheduler this task was admitted to.
func (t *Task) schedulerRef() *Scheduler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduler
}

// currentWorker returns the Worker presently driving this task, or nil.
func (t *Task) currentWorker() *Worker {
	t.workerMu.Lock()
	defer t.workerMu.Unlock()
	return t.worker
}

func (t *Task) setCurrentWorker(w *Worker) {
	t.workerMu.Lock()
	t.worker = w
	t.workerMu.Unlock()
}

// runResult tells Worker.execute why Task.Resume returned control.
type runResult int

const (
	runCompleted runResult = iota
	runYielded
	runSyncSuspended
)

// Resume drives the task's coroutine one step, creating it on first
// invocation, and blocks until the coroutine yields, parks on a sync
// primitive, or completes. It satisfies hicr/l0.Runnable, so a
// ProcessingUnit can host a Task without hicr importing taskr. Only the
// worker currently driving this task may call Resume, and must have
// already called setCurrentWorker; the outcome is recorded for that
// worker to read back via lastRunResult after Resume returns.
func (t *Task) Resume() {
	t.state.Store(int32(StateRunning))

	if t.coro == nil {
		t.coro = coroutine.New()
		t.coro.Start(func(self *coroutine.Coroutine) {
			registerCurrentTask(t)
			defer unregisterCurrentTask()
			t.fire(OnTaskExecute)
			t.execute()
		})
	} else {
		t.coro.Resume()
	}

	if t.coro.Finished() {
		t.state.Store(int32(StateFinished))
		t.lastResult.Store(int32(runCompleted))
		return
	}

	switch suspendReason(t.reason.Swap(int32(reasonNone))) {
	case reasonSync:
		t.state.Store(int32(StateSuspended))
		t.lastResult.Store(int32(runSyncSuspended))
	default:
		t.state.Store(int32(StateSuspended))
		t.lastResult.Store(int32(runYielded))
	}
}

// Finished reports whether the task's coroutine has returned. It
// satisfies hicr/l0.Runnable.
func (t *Task) Finished() bool {
	return t.State() == StateFinished
}

// lastRunResult returns the outcome of the most recent Resume, for the
// driving worker to act on.
func (t *Task) lastRunResult() runResult {
	return runResult(t.lastResult.Load())
}

// execute invokes the user callable, recovering a panic into Failure so
// a misbehaving task cannot take its worker down with it.
func (t *Task) execute() {
	defer func() {
		if r := recover(); r != nil {
			t.failure = &TaskFailureError{Label: t.label, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	t.unit.Run()
}

// yield is called by taskr.Yield(), from inside the running task's
// coroutine body.
func (t *Task) yield() {
	t.reason.Store(int32(reasonYield))
	t.coro.Yield()
}

// parkForSync is called by Mutex/ConditionVariable from inside the
// running task's coroutine body, after the task has been appended to a
// wait list and OnTaskSync has fired. OnTaskSuspend fires afterwards, on
// the worker thread, once control has actually returned to it - see
// Worker.execute.
func (t *Task) parkForSync() {
	t.reason.Store(int32(reasonSync))
	t.coro.Yield()
}
