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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hicrproject/hicr/hicr/l0"
)

func TestTask_LabelAndInitialState(t *testing.T) {
	task := NewTask(7, l0.NewExecutionUnit(func() {}))
	assert.Equal(t, uint64(7), task.Label())
	assert.Equal(t, StateInitial, task.State())
	assert.Nil(t, task.Failure())
}

func TestTask_AddDependencyFrozenAfterAdmission(t *testing.T) {
	task := NewTask(1, l0.NewExecutionUnit(func() {}))
	require.NoError(t, task.AddTaskDependency(0))

	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))

	err := task.AddTaskDependency(2)
	assert.Error(t, err)
}

func TestTask_IsReadyNoDeps(t *testing.T) {
	task := NewTask(1, l0.NewExecutionUnit(func() {}))
	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))
	assert.True(t, task.IsReady())
}

func TestTask_IsReadyWaitsOnDependency(t *testing.T) {
	task := NewTask(2, l0.NewExecutionUnit(func() {}))
	require.NoError(t, task.AddTaskDependency(1))

	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))
	assert.False(t, task.IsReady())

	s.MarkFinished(1)
	assert.True(t, task.IsReady())
}

func TestTask_ResumeRunsToCompletion(t *testing.T) {
	ran := false
	task := NewTask(1, l0.NewExecutionUnit(func() { ran = true }))
	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))

	task.Resume()

	assert.True(t, ran)
	assert.True(t, task.Finished())
	assert.Equal(t, runCompleted, task.lastRunResult())
	assert.Nil(t, task.Failure())
}

func TestTask_YieldSuspendsAndResumes(t *testing.T) {
	var trace []string
	task := NewTask(1, l0.NewExecutionUnit(func() {
		trace = append(trace, "a")
		require.NoError(t, Yield())
		trace = append(trace, "b")
	}))
	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))
	task.setCurrentWorker(&Worker{})

	task.Resume()
	assert.Equal(t, []string{"a"}, trace)
	assert.False(t, task.Finished())
	assert.Equal(t, runYielded, task.lastRunResult())

	task.Resume()
	assert.Equal(t, []string{"a", "b"}, trace)
	assert.True(t, task.Finished())
}

func TestTask_PanicRecoveredAsFailure(t *testing.T) {
	task := NewTask(9, l0.NewExecutionUnit(func() { panic("boom") }))
	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))

	task.Resume()

	assert.True(t, task.Finished())
	require.Error(t, task.Failure())
	var fe *TaskFailureError
	assert.True(t, errors.As(task.Failure(), &fe))
	assert.Equal(t, uint64(9), fe.Label)
}

func TestTask_CallbackFiresOnExecute(t *testing.T) {
	var fired Event = -1
	task := NewTask(1, l0.NewExecutionUnit(func() {}))
	task.SetCallback(OnTaskExecute, func(tt *Task) { fired = OnTaskExecute })

	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))
	task.Resume()

	assert.Equal(t, OnTaskExecute, fired)
}

func TestTask_CurrentTaskVisibleInsideBody(t *testing.T) {
	var seen *Task
	var task *Task
	task = NewTask(42, l0.NewExecutionUnit(func() { seen = CurrentTask() }))

	s := NewScheduler(NewConfig())
	require.NoError(t, s.Admit(task))
	task.Resume()

	assert.Same(t, task, seen)
	assert.Nil(t, CurrentTask())
}
