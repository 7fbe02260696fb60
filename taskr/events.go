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

// Event names one point in a Task's lifecycle a callback can hook.
type Event int

const (
	// OnTaskExecute fires on the worker thread, inside the task's
	// coroutine stack, right before the user callable first runs.
	OnTaskExecute Event = iota
	// OnTaskYield fires after a task calls Yield and is about to be
	// requeued onto the waiting queue.
	OnTaskYield
	// OnTaskSuspend fires after a task parks on a Mutex or
	// ConditionVariable wait list.
	OnTaskSuspend
	// OnTaskSync fires whenever a task is about to suspend on any sync
	// primitive, just before OnTaskSuspend; registered separately so a
	// caller can distinguish "about to suspend" from "is now parked".
	OnTaskSync
	// OnTaskFinish fires after the task's coroutine returns, whether
	// normally or via a recovered panic.
	OnTaskFinish
)

// Callback is a user hook for one Event. It receives the task that
// triggered it.
type Callback func(*Task)

func (e Event) String() string {
	switch e {
	case OnTaskExecute:
		return "OnTaskExecute"
	case OnTaskYield:
		return "OnTaskYield"
	case OnTaskSuspend:
		return "OnTaskSuspend"
	case OnTaskSync:
		return "OnTaskSync"
	case OnTaskFinish:
		return "OnTaskFinish"
	default:
		return "Unknown"
	}
}
