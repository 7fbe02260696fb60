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

func TestConditionVariable_WaitOutsideTaskFails(t *testing.T) {
	c := NewConditionVariable()
	assert.ErrorIs(t, c.Wait(), ErrNotInTaskContext)
}

func TestConditionVariable_NotifyOneWithNoWaitersIsNoop(t *testing.T) {
	c := NewConditionVariable()
	assert.NotPanics(t, c.NotifyOne)
	assert.NotPanics(t, c.NotifyAll)
}

// TestConditionVariable_WaitNotifyHandshake is seed scenario S3: a
// waiter task parks on the CV (runSyncSuspended) and only resumes past
// Wait once a notifier task calls NotifyOne and the worker re-pulls it
// off the ready queue.
func TestConditionVariable_WaitNotifyHandshake(t *testing.T) {
	c := NewConditionVariable()
	var order []string

	s := NewScheduler(NewConfig())

	waiter := NewTask(1, l0.NewExecutionUnit(func() {
		order = append(order, "before-wait")
		require.NoError(t, c.Wait())
		order = append(order, "after-wait")
	}))
	notifier := NewTask(2, l0.NewExecutionUnit(func() {
		order = append(order, "notify")
		c.NotifyOne()
	}))
	require.NoError(t, s.Admit(waiter))
	require.NoError(t, s.Admit(notifier))

	w := newWorker(0, fakeProcessingUnit{}, s)

	require.NoError(t, w.execute(waiter))
	assert.False(t, waiter.Finished())
	assert.Equal(t, []string{"before-wait"}, order)

	require.NoError(t, w.execute(notifier))
	assert.True(t, notifier.Finished())
	assert.Equal(t, []string{"before-wait", "notify"}, order)

	ready, ok := s.PopReady()
	require.True(t, ok)
	assert.Same(t, waiter, ready)

	require.NoError(t, w.execute(waiter))
	assert.True(t, waiter.Finished())
	assert.Equal(t, []string{"before-wait", "notify", "after-wait"}, order)
}

func TestConditionVariable_NotifyAllWakesEveryWaiterInOrder(t *testing.T) {
	c := NewConditionVariable()

	s := NewScheduler(NewConfig())
	w := newWorker(0, fakeProcessingUnit{}, s)

	waiter1 := NewTask(1, l0.NewExecutionUnit(func() { require.NoError(t, c.Wait()) }))
	waiter2 := NewTask(2, l0.NewExecutionUnit(func() { require.NoError(t, c.Wait()) }))
	require.NoError(t, s.Admit(waiter1))
	require.NoError(t, s.Admit(waiter2))

	require.NoError(t, w.execute(waiter1))
	require.NoError(t, w.execute(waiter2))

	c.NotifyAll()

	first, ok := s.PopReady()
	require.True(t, ok)
	assert.Same(t, waiter1, first)

	second, ok := s.PopReady()
	require.True(t, ok)
	assert.Same(t, waiter2, second)
}
