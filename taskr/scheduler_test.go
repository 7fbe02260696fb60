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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hicrproject/hicr/hicr/l0"
)

func TestScheduler_AdmitRejectsDuplicateLabel(t *testing.T) {
	s := NewScheduler(NewConfig())
	a := NewTask(1, l0.NewExecutionUnit(func() {}))
	b := NewTask(1, l0.NewExecutionUnit(func() {}))

	require.NoError(t, s.Admit(a))
	assert.ErrorIs(t, s.Admit(b), ErrDuplicateLabel)
}

func TestScheduler_AdmitRejectsOverCapacity(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxSimultaneousTasks = 1
	s := NewScheduler(cfg)

	require.NoError(t, s.Admit(NewTask(1, l0.NewExecutionUnit(func() {}))))
	err := s.Admit(NewTask(2, l0.NewExecutionUnit(func() {})))
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestScheduler_FinishedBeforeAdmittedDependencyIsSatisfiedImmediately(t *testing.T) {
	s := NewScheduler(NewConfig())
	s.MarkFinished(99)

	dependent := NewTask(1, l0.NewExecutionUnit(func() {}))
	require.NoError(t, dependent.AddTaskDependency(99))
	require.NoError(t, s.Admit(dependent))

	assert.True(t, dependent.IsReady())
}

func TestScheduler_MarkFailedDoesNotPopulateFinishedSet(t *testing.T) {
	s := NewScheduler(NewConfig())
	task := NewTask(5, l0.NewExecutionUnit(func() {}))
	require.NoError(t, s.Admit(task))

	s.MarkFailed()

	assert.False(t, s.finished.Contains(5))
	assert.True(t, s.IsDrained())
}

func TestScheduler_ScanWaitingPromotesReadyTask(t *testing.T) {
	s := NewScheduler(NewConfig())
	task := NewTask(1, l0.NewExecutionUnit(func() {}))
	require.NoError(t, s.Admit(task))

	assert.True(t, s.ScanWaiting())
	assert.Equal(t, 1, s.ReadyLen())
	assert.Equal(t, 0, s.WaitingLen())
}

func TestScheduler_ScanWaitingRequeuesUnreadyTask(t *testing.T) {
	s := NewScheduler(NewConfig())
	task := NewTask(2, l0.NewExecutionUnit(func() {}))
	require.NoError(t, task.AddTaskDependency(1))
	require.NoError(t, s.Admit(task))

	assert.True(t, s.ScanWaiting())
	assert.Equal(t, 0, s.ReadyLen())
	assert.Equal(t, 1, s.WaitingLen())
}

func TestScheduler_ScanWaitingOnEmptyQueueReturnsFalse(t *testing.T) {
	s := NewScheduler(NewConfig())
	assert.False(t, s.ScanWaiting())
}
