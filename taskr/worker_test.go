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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hicrproject/hicr/hicr/l0"
)

func TestWorker_ExecuteMarksFinishedOnCleanReturn(t *testing.T) {
	s := NewScheduler(NewConfig())
	task := NewTask(1, l0.NewExecutionUnit(func() {}))
	require.NoError(t, s.Admit(task))

	w := newWorker(0, fakeProcessingUnit{}, s)
	require.NoError(t, w.execute(task))

	assert.True(t, s.finished.Contains(1))
	assert.Equal(t, int64(0), s.Pending())
	assert.Equal(t, WorkerIdle, w.State())
	assert.Nil(t, w.CurrentTask())
}

func TestWorker_ExecutePropagatesFailureWithoutMarkingFinished(t *testing.T) {
	s := NewScheduler(NewConfig())
	task := NewTask(1, l0.NewExecutionUnit(func() { panic("boom") }))
	require.NoError(t, s.Admit(task))

	w := newWorker(0, fakeProcessingUnit{}, s)
	err := w.execute(task)

	require.Error(t, err)
	var fe *TaskFailureError
	assert.True(t, errors.As(err, &fe))
	assert.False(t, s.finished.Contains(1))
	assert.Equal(t, int64(0), s.Pending())
}

func TestWorker_ExecuteYieldedRequeuesToWaiting(t *testing.T) {
	s := NewScheduler(NewConfig())
	task := NewTask(1, l0.NewExecutionUnit(func() {
		require.NoError(t, Yield())
	}))
	require.NoError(t, s.Admit(task))

	// Move the task off the waiting queue the way the worker loop does,
	// so the only waiting-queue entry afterwards is the yield's requeue.
	require.True(t, s.ScanWaiting())
	ready, ok := s.PopReady()
	require.True(t, ok)

	w := newWorker(0, fakeProcessingUnit{}, s)
	require.NoError(t, w.execute(ready))

	assert.Equal(t, 1, s.WaitingLen())
	assert.False(t, task.Finished())
}

func TestWorker_RunDrainsReadyAndWaitingUntilPending(t *testing.T) {
	s := NewScheduler(NewConfig())
	var order []uint64

	a := NewTask(1, l0.NewExecutionUnit(func() { order = append(order, 1) }))
	b := NewTask(2, l0.NewExecutionUnit(func() { order = append(order, 2) }))
	require.NoError(t, b.AddTaskDependency(1))

	require.NoError(t, s.Admit(a))
	require.NoError(t, s.Admit(b))

	w := newWorker(0, fakeProcessingUnit{}, s)
	require.NoError(t, w.run(context.Background()))

	assert.Equal(t, []uint64{1, 2}, order)
	assert.True(t, s.IsDrained())
	assert.Equal(t, WorkerTerminating, w.State())
}
