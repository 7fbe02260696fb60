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

import "sync"

// ConditionVariable is a task-aware condition variable: Wait parks the
// calling task (not its worker) on a FIFO wait list until notified.
//
// Unlike a Mesa-style monitor condition variable, it is not paired with
// a Mutex and admits lost wakeups: a notify that happens before the
// matching wait has no effect on that wait. Callers who need the usual
// "check a predicate under a lock, then wait" semantics must build it
// themselves out of a Mutex and a loop around Wait.
type ConditionVariable struct {
	mu      sync.Mutex
	waiters []*Task
}

// NewConditionVariable returns an empty ConditionVariable.
func NewConditionVariable() *ConditionVariable {
	return &ConditionVariable{}
}

// Wait parks the calling task until a matching NotifyOne/NotifyAll.
func (c *ConditionVariable) Wait() error {
	t := CurrentTask()
	if t == nil {
		return ErrNotInTaskContext
	}

	c.mu.Lock()
	c.waiters = append(c.waiters, t)
	c.mu.Unlock()

	t.fire(OnTaskSync)
	t.parkForSync()
	return nil
}

// NotifyOne wakes the longest-waiting parked task, if any. A no-op if
// nobody is waiting.
func (c *ConditionVariable) NotifyOne() {
	c.mu.Lock()
	if len(c.waiters) == 0 {
		c.mu.Unlock()
		return
	}
	next := c.waiters[0]
	c.waiters = c.waiters[1:]
	c.mu.Unlock()

	next.schedulerRef().reschedule(next)
}

// NotifyAll wakes every parked task, in FIFO order. A no-op on an empty
// wait list.
func (c *ConditionVariable) NotifyAll() {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, t := range waiters {
		t.schedulerRef().reschedule(t)
	}
}
