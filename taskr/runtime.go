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

// Package taskr schedules a dependency graph of user tasks over a pool
// of workers, each bound to a HiCR processing unit, using stackful
// coroutines so a task blocked on a sync primitive parks without
// stalling its worker.
package taskr

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hicrproject/hicr/hicr/l0"
	"github.com/hicrproject/hicr/hicr/l1"
	"github.com/hicrproject/hicr/internal/logger"
)

var runtimeLog = logger.GetLogger("TaskR", "Runtime")

// Runtime is the facade a workload drives: add processing units and
// tasks, then Run to drain the graph.
type Runtime struct {
	cfg       Config
	compute   l1.ComputeManager
	scheduler *Scheduler
	workers   []*Worker
}

// NewRuntime constructs a Runtime bound to the given ComputeManager,
// using cfg (see NewConfig for the defaults) to size its queues.
func NewRuntime(compute l1.ComputeManager, cfg Config) *Runtime {
	return &Runtime{
		cfg:       cfg,
		compute:   compute,
		scheduler: NewScheduler(cfg),
	}
}

// AddProcessingUnit binds one more compute resource into the worker
// pool. Must be called before Run; returns ErrCapacityExhausted if the
// configured worker limit is already reached.
func (r *Runtime) AddProcessingUnit(resource l0.ComputeResource) error {
	if len(r.workers) >= r.cfg.MaxSimultaneousWorkers {
		return ErrCapacityExhausted
	}
	pu, err := r.compute.CreateProcessingUnit(resource)
	if err != nil {
		return err
	}
	r.workers = append(r.workers, newWorker(len(r.workers), pu, r.scheduler))
	return nil
}

// AddTask admits t into the dependency graph. t's dependency list is
// frozen on return. Safe to call before or while Run is executing.
func (r *Runtime) AddTask(t *Task) error {
	return r.scheduler.Admit(t)
}

// Scheduler exposes the underlying Scheduler for the observability
// surface to report its queue depths and finished-set size from.
func (r *Runtime) Scheduler() *Scheduler {
	return r.scheduler
}

// Run starts every added worker and blocks until the graph drains -
// every admitted task has finished - or until a worker observes a task
// failure, in which case it returns without waiting for the remaining
// tasks. It returns that first failure, a TaskFailureError, or nil.
//
// At least one ProcessingUnit must have been added; Run returns
// ErrNoProcessingUnits otherwise without starting any worker.
//
// A failed task's dependents never reach the finished-set, so with
// more than one worker the ones that didn't hit the failure would
// otherwise poll the ready queue forever while the failing one
// returns. errgroup.WithContext's derived context is cancelled the
// instant any worker returns an error, and is threaded through every
// worker's run loop so the rest exit alongside it.
func (r *Runtime) Run() error {
	if len(r.workers) == 0 {
		return ErrNoProcessingUnits
	}

	runtimeLog.Info("starting workers", logger.Any("count", len(r.workers)))

	g, ctx := errgroup.WithContext(context.Background())
	for _, w := range r.workers {
		w := w
		g.Go(func() error {
			return w.run(ctx)
		})
	}
	err := g.Wait()

	runtimeLog.Info("drained", logger.ErrorField(err))
	return err
}

// Finalize releases the workers added to this Runtime. The Runtime must
// not be reused after Finalize.
func (r *Runtime) Finalize() {
	r.workers = nil
}

// Yield cooperatively suspends the calling task, returning it to the
// waiting queue so the scheduler re-checks its readiness (trivially
// satisfied, since it was already running) on the next scan. Must be
// called from inside a running task's coroutine body; returns
// ErrNotInTaskContext otherwise.
func Yield() error {
	t := CurrentTask()
	if t == nil {
		return ErrNotInTaskContext
	}
	t.yield()
	return nil
}
