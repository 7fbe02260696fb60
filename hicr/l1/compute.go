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

package l1

import "github.com/hicrproject/hicr/hicr/l0"

//go:generate mockgen -source=./compute.go -destination=./mock/mock_compute.go -package=mock

// ComputeManager creates the two things the core needs to run tasks: an
// opaque ExecutionUnit wrapping a user callable, and a ProcessingUnit
// binding one compute resource for a worker to drive.
type ComputeManager interface {
	CreateExecutionUnit(fn func()) *l0.ExecutionUnit
	CreateProcessingUnit(resource l0.ComputeResource) (l0.ProcessingUnit, error)
}
