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
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the core. Test with errors.Is.
var (
	// ErrCapacityExhausted is returned when the ready or waiting queue
	// is full at admission time.
	ErrCapacityExhausted = errors.New("taskr: capacity exhausted")
	// ErrDuplicateLabel is returned when a task is admitted with a
	// label already held by another admitted task this run.
	ErrDuplicateLabel = errors.New("taskr: duplicate label")
	// ErrInvalidUnlock is returned when Mutex.Unlock is called by a
	// task that does not hold the mutex, or while it is unlocked.
	ErrInvalidUnlock = errors.New("taskr: invalid unlock")
	// ErrNotInTaskContext is returned when a sync-primitive operation or
	// Yield is attempted outside a running task's body.
	ErrNotInTaskContext = errors.New("taskr: not in task context")
	// ErrNoProcessingUnits is returned by Run when no ProcessingUnit
	// was added before it was called.
	ErrNoProcessingUnits = errors.New("taskr: configuration: no processing units added")
)

// TaskFailureError wraps the panic or error a task's callable produced.
// Run returns (at most) the first one observed across every worker.
type TaskFailureError struct {
	Label uint64
	Err   error
}

func (e *TaskFailureError) Error() string {
	return fmt.Sprintf("taskr: task %d failed: %v", e.Label, e.Err)
}

func (e *TaskFailureError) Unwrap() error {
	return e.Err
}
