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
	"sync"

	"github.com/hicrproject/hicr/internal/goid"
)

// currentTasks maps a coroutine body's goroutine ID to the *Task it is
// executing - the process-wide "current task" handle the tasking model
// specifies as a thread-local, emulated here because Go has no implicit
// per-goroutine storage. A task's coroutine body runs on exactly one
// goroutine for its entire lifetime, so one registration at Start time
// covers every subsequent Resume.
var currentTasks sync.Map // map[uint64]*Task

func registerCurrentTask(t *Task) {
	currentTasks.Store(goid.Current(), t)
}

func unregisterCurrentTask() {
	currentTasks.Delete(goid.Current())
}

// CurrentTask returns the Task whose coroutine body is executing on the
// calling goroutine, or nil if called from outside any task.
func CurrentTask() *Task {
	v, ok := currentTasks.Load(goid.Current())
	if !ok {
		return nil
	}
	return v.(*Task)
}

// CurrentWorker returns the Worker presently driving the calling
// goroutine's task, or nil outside a task context. Unlike CurrentTask,
// this can change across suspensions - a task parked on a sync
// primitive may be resumed by a different worker later - so it is
// derived live from the task rather than cached at registration time.
func CurrentWorker() *Worker {
	t := CurrentTask()
	if t == nil {
		return nil
	}
	return t.currentWorker()
}
