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

package l0

// Runnable is the minimal thing a ProcessingUnit can drive: something
// that can be resumed to make progress and asked whether it already
// finished. *taskr.Task satisfies this without hicr depending on taskr.
type Runnable interface {
	Resume()
	Finished() bool
}

// ProcessingUnit binds a single compute resource and is able to host one
// running coroutine at a time. Implementations decide what "pinning"
// means for their backend (host: OS thread affinity; accelerator:
// whatever the vendor runtime requires).
type ProcessingUnit interface {
	// ComputeResource returns the resource this unit is bound to.
	ComputeResource() ComputeResource
	// Initialize prepares the unit for use (e.g. pins the calling OS
	// thread to the bound logical processor). Called once, by the
	// worker that owns this unit, before the first Start.
	Initialize() error
	// Start resumes r from the calling thread and blocks until r yields,
	// suspends, or finishes. The affinity Initialize established applies
	// to the calling thread only: a Runnable whose body runs on a
	// goroutine of its own, as a *taskr.Task's coroutine does, is not
	// pinned by it.
	Start(r Runnable)
	// Suspend and Resume pause/continue the worker thread itself, not
	// any particular task. Optional: a no-op implementation is valid.
	Suspend()
	Resume()
	// Terminate releases anything Initialize acquired.
	Terminate() error
}
