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

// ComputeResource is an addressable logical processor offered by a
// backend's topology layer. Core/NUMA distance is not modeled; a
// ComputeResource is only ever compared by ID.
type ComputeResource interface {
	// ID is a backend-unique identifier, e.g. a logical CPU index.
	ID() uint64
	// Type names the backend ("host", "ascend", ...).
	Type() string
}

// MemorySpace is an addressable region of memory offered by a backend.
// The core only ever stores a reference to it; memcpy/fence semantics
// are entirely out of scope here.
type MemorySpace interface {
	ID() uint64
	Type() string
	SizeBytes() uint64
}

// Device groups the compute resources and memory spaces that belong to
// one physical unit (a host, an accelerator card, ...).
type Device interface {
	ComputeResources() []ComputeResource
	MemorySpaces() []MemorySpace
}
