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

package host

import (
	"runtime"

	"github.com/hicrproject/hicr/hicr/l0"
	"github.com/hicrproject/hicr/internal/logger"
)

var log = logger.GetLogger("HiCR", "Host")

// processingUnit binds one logical CPU. Initialize locks the calling
// goroutine to its OS thread and pins that thread's affinity mask to the
// single bound logical processor.
type processingUnit struct {
	resource computeResource
}

// newProcessingUnit builds a processingUnit bound to resource.
func newProcessingUnit(resource computeResource) *processingUnit {
	return &processingUnit{resource: resource}
}

func (p *processingUnit) ComputeResource() l0.ComputeResource { return p.resource }

// Initialize locks the current goroutine to its OS thread - required
// before affinity can be pinned - and applies the pin on platforms that
// support it (see affinity_linux.go / affinity_other.go).
func (p *processingUnit) Initialize() error {
	runtime.LockOSThread()
	if err := pinThreadToCPU(int(p.resource.id)); err != nil {
		log.Warn("could not pin worker thread to logical cpu",
			logger.Any("cpu", p.resource.id), logger.Error(err))
	}
	return nil
}

// Start resumes r and blocks until it yields, suspends or finishes.
func (p *processingUnit) Start(r l0.Runnable) {
	r.Resume()
}

// Suspend and Resume are no-ops for the host backend: the worker thread
// itself is never preempted, only the task coroutines it drives.
func (p *processingUnit) Suspend() {}
func (p *processingUnit) Resume()  {}

func (p *processingUnit) Terminate() error {
	runtime.UnlockOSThread()
	return nil
}
