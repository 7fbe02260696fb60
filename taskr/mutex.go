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

// Mutex is a task-aware mutual-exclusion lock: a contended Lock parks
// the calling *task*, not its worker, so the worker is free to go on
// servicing other ready tasks. It must only be used from inside a
// running task's coroutine body (CurrentTask() must be non-nil).
type Mutex struct {
	mu      sync.Mutex
	owner   *Task
	waiters []*Task
}

// NewMutex returns an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Lock acquires the mutex. If it is already held, the calling task is
// appended to the FIFO wait list, OnTaskSync fires, and the task's
// coroutine yields; on resumption the calling task is the owner.
func (m *Mutex) Lock() error {
	t := CurrentTask()
	if t == nil {
		return ErrNotInTaskContext
	}

	m.mu.Lock()
	if m.owner == nil {
		m.owner = t
		m.mu.Unlock()
		return nil
	}
	m.waiters = append(m.waiters, t)
	m.mu.Unlock()

	t.fire(OnTaskSync)
	t.parkForSync()
	// On resumption, unlock's wakeup protocol has already made t the
	// owner; nothing left to do.
	return nil
}

// Unlock releases the mutex. The caller must hold it, identified by
// CurrentTask(); otherwise ErrInvalidUnlock is returned. If a waiter is
// present, ownership transfers to the head of the FIFO and that waiter
// is handed to reschedule so a worker re-pulls it; it does not become the
// owner's problem to run it directly.
func (m *Mutex) Unlock() error {
	t := CurrentTask()
	if t == nil {
		return ErrNotInTaskContext
	}

	m.mu.Lock()
	if m.owner != t {
		m.mu.Unlock()
		return ErrInvalidUnlock
	}
	if len(m.waiters) == 0 {
		m.owner = nil
		m.mu.Unlock()
		return nil
	}
	next := m.waiters[0]
	m.waiters = m.waiters[1:]
	m.owner = next
	m.mu.Unlock()

	s := next.schedulerRef()

	s.reschedule(next)
	return nil
}
