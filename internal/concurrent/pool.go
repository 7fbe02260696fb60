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

// Package concurrent is an elastic goroutine pool for background,
// non-scheduling work - host resource sampling, periodic metric
// flushes - kept off the taskr hot path on purpose: taskr's own Worker
// pool is fixed-size and pinned to compute resources, while this pool
// grows and shrinks with demand the way a monitoring subsystem's does.
package concurrent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/hicrproject/hicr/internal/logger"
	"github.com/hicrproject/hicr/internal/metrics"
)

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

const (
	// size of the queue that workers register their availability to the dispatcher.
	readyWorkerQueueSize = 32
	// size of the jobs queue
	jobsCapacity = 8
)

// Job is a function submitted to a Pool, plus an optional panic
// handler. Named Job (not Task) so it is never confused with
// taskr.Task: a Pool runs background plumbing, not scheduled work.
type Job struct {
	handle      func()
	panicHandle func(err error)

	createTime time.Time
}

// NewJob wraps handle (and an optional panicHandle) as a Job.
func NewJob(handle func(), panicHandle func(err error)) *Job {
	return &Job{
		handle:      handle,
		panicHandle: panicHandle,
		createTime:  time.Now(),
	}
}

func (j *Job) exec() { j.handle() }

// Pool runs submitted Jobs on an elastic set of goroutines.
type Pool interface {
	// Submit queues a job for the dispatcher, which hands it to a ready
	// worker, starting a new one if the pool is under its max and none
	// is idle, and otherwise waits for a worker to free up. Submit itself
	// blocks only while the job queue (jobsCapacity) is full, until ctx
	// is done.
	Submit(ctx context.Context, job *Job)
	// Stopped reports whether Stop has been called.
	Stopped() bool
	// Stop stops every worker, after draining already-submitted jobs.
	Stop()
}

// workerPool is a Pool for goroutines. Worker creation is bounded by
// slots, a token channel pre-loaded with maxWorkers entries: spawning a
// worker consumes a token, recycling one returns it. Sizing against the
// channel itself (cap(slots)-len(slots) for the live count) means
// mustGetWorker blocks on a channel receive when the pool is saturated,
// instead of polling a counter on a timer.
type workerPool struct {
	name                string
	maxWorkers          int
	jobs                chan *Job     // jobs channel
	readyWorkers        chan *worker  // available worker
	slots               chan struct{} // worker-creation tokens, cap == maxWorkers
	idleTimeout         time.Duration // idle goroutine recycle time
	onDispatcherStopped chan struct{} // signal that dispatcher is stopped
	stopped             atomic.Bool   // mark if the pool is closed or not
	ctx                 context.Context
	cancel              context.CancelFunc

	stats *metrics.PoolStatistics

	log *logger.Logger
}

// NewPool returns a new worker pool. maxWorkers bounds how many
// goroutines may run concurrently; stats receives liveness/outcome
// counters for the observability surface (pass metrics.NewPoolStatistics
// if the caller has no shared Registry to attach to).
func NewPool(name string, maxWorkers int, idleTimeout time.Duration, stats *metrics.PoolStatistics) Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if idleTimeout <= 0 {
		idleTimeout = time.Second * 5
	}
	slots := make(chan struct{}, maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		slots <- struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &workerPool{
		name:                name,
		maxWorkers:          maxWorkers,
		jobs:                make(chan *Job, jobsCapacity),
		readyWorkers:        make(chan *worker, readyWorkerQueueSize),
		slots:               slots,
		idleTimeout:         idleTimeout,
		onDispatcherStopped: make(chan struct{}),
		ctx:                 ctx,
		cancel:              cancel,
		stats:               stats,
		log:                 logger.GetLogger("Pool", name),
	}
	go pool.dispatch()
	return pool
}

func (p *workerPool) Submit(ctx context.Context, job *Job) {
	if job.handle == nil || p.Stopped() {
		return
	}
	select {
	case <-ctx.Done():
		p.stats.TasksRejected.Inc()
		return
	case p.jobs <- job:
	}
}

// aliveCount is a best-effort read of how many workers currently hold a
// slot token; racy like any unlocked read, but only ever used to decide
// whether it's worth trying to pull one more off readyWorkers.
func (p *workerPool) aliveCount() int {
	return p.maxWorkers - len(p.slots)
}

// mustGetWorker blocks until either a worker is idle and waiting on
// readyWorkers, or a creation slot is free. Unlike polling a counter on
// a timer, this never wakes up only to find nothing has changed.
func (p *workerPool) mustGetWorker() *worker {
	select {
	case w := <-p.readyWorkers:
		return w
	case <-p.slots:
		return newWorker(p)
	}
}

func (p *workerPool) dispatch() {
	defer func() {
		p.onDispatcherStopped <- struct{}{}
	}()

	idleTimeoutTimer := time.NewTimer(p.idleTimeout)
	defer idleTimeoutTimer.Stop()

	for {
		idleTimeoutTimer.Reset(p.idleTimeout)
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			p.mustGetWorker().execute(job)
		case <-idleTimeoutTimer.C:
			p.idle()
		}
	}
}

func (p *workerPool) idle() {
	if p.aliveCount() == 0 {
		return
	}
	select {
	case w := <-p.readyWorkers:
		w.stop(func() {})
	case <-p.ctx.Done():
	default:
	}
}

func (p *workerPool) Stopped() bool {
	return p.stopped.Load()
}

func (p *workerPool) stopWorkers() {
	var wg sync.WaitGroup
	for p.aliveCount() > 0 {
		wg.Add(1)
		w := <-p.readyWorkers
		w.stop(func() {
			wg.Done()
		})
	}
	wg.Wait()
}

func (p *workerPool) drainRemainingJobs() {
	for {
		select {
		case job := <-p.jobs:
			p.execJob(job)
		default:
			return
		}
	}
}

func (p *workerPool) execJob(job *Job) {
	defer func() {
		p.stats.JobLatency.Observe(time.Since(job.createTime).Seconds())
		if r := recover(); r != nil {
			p.stats.TasksPanic.Inc()
			err := panicToError(r)
			p.log.Error("panic executing pool job", logger.Error(err))
			if job.panicHandle != nil {
				job.panicHandle(err)
			}
		}
	}()
	job.exec()
	p.stats.TasksConsumed.Inc()
}

// Stop tells the dispatcher to exit with pending jobs done.
func (p *workerPool) Stop() {
	if p.stopped.Swap(true) {
		return
	}
	p.cancel()
	<-p.onDispatcherStopped
	p.stopWorkers()
	p.drainRemainingJobs()
}

// worker executes jobs handed to it by the dispatcher.
type worker struct {
	pool   *workerPool
	jobs   chan *Job
	stopCh chan struct{}
}

func newWorker(pool *workerPool) *worker {
	w := &worker{
		pool:   pool,
		jobs:   make(chan *Job),
		stopCh: make(chan struct{}),
	}
	w.pool.stats.WorkersAlive.Inc()
	w.pool.stats.WorkersCreated.Inc()
	go w.process()
	return w
}

func (w *worker) execute(job *Job) {
	w.jobs <- job
}

// stop halts the worker and returns its creation slot to the pool.
func (w *worker) stop(callback func()) {
	defer callback()
	w.stopCh <- struct{}{}
	w.pool.slots <- struct{}{}
	w.pool.stats.WorkersAlive.Dec()
	w.pool.stats.WorkersKilled.Inc()
}

func (w *worker) process() {
	for {
		select {
		case <-w.stopCh:
			return
		case job := <-w.jobs:
			w.pool.execJob(job)
			w.pool.readyWorkers <- w
		}
	}
}
