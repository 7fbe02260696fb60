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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hicrproject/hicr/hicr/backend/host"
	"github.com/hicrproject/hicr/hicr/l0"
)

// fixedCPUTopology returns a host TopologyManager stubbed to report n
// logical CPUs, so tests don't depend on the machine running the suite.
func fixedCPUTopology(n int) *host.TopologyManager {
	return &host.TopologyManager{CPUCountGetter: func(logical bool) (int, error) { return n, nil }}
}

func newHostRuntime(t *testing.T, workers int) *Runtime {
	t.Helper()
	topo, err := fixedCPUTopology(workers).QueryTopology()
	require.NoError(t, err)
	compute := host.NewComputeManager()

	r := NewRuntime(compute, NewConfig())
	resources := topo.Devices()[0].ComputeResources()
	for i := 0; i < workers; i++ {
		require.NoError(t, r.AddProcessingUnit(resources[i]))
	}
	return r
}

// TestRuntime_ABCChain is seed scenario S1: C depends on B depends on A;
// a single worker must run them in dependency order.
func TestRuntime_ABCChain(t *testing.T) {
	r := newHostRuntime(t, 1)

	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	a := NewTask(1, l0.NewExecutionUnit(record("A")))
	b := NewTask(2, l0.NewExecutionUnit(record("B")))
	c := NewTask(3, l0.NewExecutionUnit(record("C")))
	require.NoError(t, b.AddTaskDependency(1))
	require.NoError(t, c.AddTaskDependency(2))

	require.NoError(t, r.AddTask(a))
	require.NoError(t, r.AddTask(b))
	require.NoError(t, r.AddTask(c))

	require.NoError(t, r.Run())
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

// TestRuntime_WorkerSubsetStillDrains is seed scenario S4 in its
// correctness form: a graph wide enough to need more than one worker to
// run concurrently still drains completely with a worker pool smaller
// than the task count.
func TestRuntime_WorkerSubsetStillDrains(t *testing.T) {
	r := newHostRuntime(t, 2)

	var count int32
	var mu sync.Mutex
	for i := uint64(1); i <= 8; i++ {
		i := i
		task := NewTask(i, l0.NewExecutionUnit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
		require.NoError(t, r.AddTask(task))
	}

	require.NoError(t, r.Run())
	assert.Equal(t, int32(8), count)
}

// TestRuntime_RunFailsWithoutProcessingUnits is the §4.8 precondition
// check: Run refuses to start with an empty worker pool.
func TestRuntime_RunFailsWithoutProcessingUnits(t *testing.T) {
	r := NewRuntime(host.NewComputeManager(), NewConfig())
	err := r.Run()
	assert.ErrorIs(t, err, ErrNoProcessingUnits)
}

// TestRuntime_AdmitOverCapacityFails is seed scenario S5: a waiting
// queue sized smaller than the task count rejects admission once full.
func TestRuntime_AdmitOverCapacityFails(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxSimultaneousTasks = 1
	r := NewRuntime(host.NewComputeManager(), cfg)

	require.NoError(t, r.AddTask(NewTask(1, l0.NewExecutionUnit(func() {}))))
	err := r.AddTask(NewTask(2, l0.NewExecutionUnit(func() {})))
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

// TestRuntime_RunReturnsFirstTaskFailure covers §5's errgroup-based join:
// a panicking task's failure is surfaced from Run, wrapped as a
// TaskFailureError.
func TestRuntime_RunReturnsFirstTaskFailure(t *testing.T) {
	r := newHostRuntime(t, 1)

	require.NoError(t, r.AddTask(NewTask(1, l0.NewExecutionUnit(func() { panic("boom") }))))

	err := r.Run()
	require.Error(t, err)
	var fe *TaskFailureError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, uint64(1), fe.Label)
}

// TestRuntime_DependentOfFailedTaskNeverRuns resolves Open Question 1:
// a failed task's label never enters the finished-set, so its
// dependents never become ready and the run still drains (by failing
// fast) rather than hanging.
func TestRuntime_DependentOfFailedTaskNeverRuns(t *testing.T) {
	r := newHostRuntime(t, 1)

	ran := false
	failing := NewTask(1, l0.NewExecutionUnit(func() { panic("boom") }))
	dependent := NewTask(2, l0.NewExecutionUnit(func() { ran = true }))
	require.NoError(t, dependent.AddTaskDependency(1))

	require.NoError(t, r.AddTask(failing))
	require.NoError(t, r.AddTask(dependent))

	err := r.Run()
	require.Error(t, err)
	assert.False(t, ran)
}

// TestRuntime_FailureUnblocksOtherWorkers guards against the deadlock a
// failed task with an admitted dependent can cause when more than one
// worker is running: the dependent never becomes ready (its label never
// enters the finished-set), so IsDrained never trips for the worker that
// didn't hit the failure. Run must still return promptly, via the
// errgroup-derived context cancelling every worker's loop.
func TestRuntime_FailureUnblocksOtherWorkers(t *testing.T) {
	r := newHostRuntime(t, 2)

	failing := NewTask(1, l0.NewExecutionUnit(func() { panic("boom") }))
	dependent := NewTask(2, l0.NewExecutionUnit(func() {}))
	require.NoError(t, dependent.AddTaskDependency(1))

	require.NoError(t, r.AddTask(failing))
	require.NoError(t, r.AddTask(dependent))

	done := make(chan error, 1)
	go func() { done <- r.Run() }()

	select {
	case err := <-done:
		require.Error(t, err)
		var fe *TaskFailureError
		assert.True(t, errors.As(err, &fe))
		assert.Equal(t, uint64(1), fe.Label)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return: a failed task's stranded dependent deadlocked the other worker")
	}
}
