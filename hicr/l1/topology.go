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

// Package l1 holds the manager interfaces the task-scheduling core
// consumes from external collaborators: topology discovery and
// execution/processing unit creation. The core never does either of
// these things itself; it only calls through these two interfaces.
package l1

import "github.com/hicrproject/hicr/hicr/l0"

// Topology is the set of devices a backend discovered.
type Topology interface {
	Devices() []l0.Device
}

//go:generate mockgen -source=./topology.go -destination=./mock/mock_topology.go -package=mock

// TopologyManager discovers the devices (and their compute resources and
// memory spaces) a backend exposes. NUMA distance and exact topology
// shape are not modeled; a host backend exposing one Device per node with
// one ComputeResource per logical processor satisfies this interface.
type TopologyManager interface {
	QueryTopology() (Topology, error)
}
