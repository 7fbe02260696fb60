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

// Package host is a concrete HiCR backend over the machine's own logical
// CPUs. It is the only backend this repository ships: enough to run and
// test the task-scheduling core without an accelerator or network
// present. NUMA distance is not modeled - the whole host is one Device.
package host

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/hicrproject/hicr/hicr/l0"
	"github.com/hicrproject/hicr/hicr/l1"
)

// computeResource is a logical CPU, addressed by index.
type computeResource struct {
	id uint64
}

func (c computeResource) ID() uint64   { return c.id }
func (c computeResource) Type() string { return "host" }

// memorySpace is the whole host's RAM, exposed as a single opaque space;
// the core never allocates from it directly.
type memorySpace struct {
	id        uint64
	sizeBytes uint64
}

func (m memorySpace) ID() uint64        { return m.id }
func (m memorySpace) Type() string      { return "host" }
func (m memorySpace) SizeBytes() uint64 { return m.sizeBytes }

// device groups every logical CPU and the host's single memory space.
type device struct {
	resources []l0.ComputeResource
	spaces    []l0.MemorySpace
}

func (d *device) ComputeResources() []l0.ComputeResource { return d.resources }
func (d *device) MemorySpaces() []l0.MemorySpace          { return d.spaces }

// topology is the discovered Topology: exactly one host Device.
type topology struct {
	devices []l0.Device
}

func (t *topology) Devices() []l0.Device { return t.devices }

// TopologyManager discovers logical CPUs via gopsutil. CPUCountGetter is
// exposed for tests that want to stub the host's CPU count without
// depending on the machine running the suite.
type TopologyManager struct {
	CPUCountGetter func(logical bool) (int, error)
}

// NewTopologyManager returns a host TopologyManager backed by gopsutil.
func NewTopologyManager() *TopologyManager {
	return &TopologyManager{CPUCountGetter: cpu.Counts}
}

// QueryTopology returns a single host Device with one ComputeResource per
// logical processor gopsutil reports.
func (m *TopologyManager) QueryTopology() (l1.Topology, error) {
	n, err := m.CPUCountGetter(true)
	if err != nil {
		return nil, fmt.Errorf("host: query cpu count: %w", err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("host: reported %d logical cpus", n)
	}

	resources := make([]l0.ComputeResource, n)
	for i := 0; i < n; i++ {
		resources[i] = computeResource{id: uint64(i)}
	}

	return &topology{
		devices: []l0.Device{
			&device{
				resources: resources,
				spaces:    []l0.MemorySpace{memorySpace{id: 0}},
			},
		},
	}, nil
}
