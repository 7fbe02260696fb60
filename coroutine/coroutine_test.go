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

package coroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoroutine_YieldResume(t *testing.T) {
	var trace []string

	c := New()
	c.Start(func(self *Coroutine) {
		trace = append(trace, "a")
		self.Yield()
		trace = append(trace, "b")
		self.Yield()
		trace = append(trace, "c")
	})
	assert.Equal(t, []string{"a"}, trace)
	assert.False(t, c.Finished())

	c.Resume()
	assert.Equal(t, []string{"a", "b"}, trace)
	assert.False(t, c.Finished())

	c.Resume()
	assert.Equal(t, []string{"a", "b", "c"}, trace)
	assert.True(t, c.Finished())
}

func TestCoroutine_CompletesWithoutYield(t *testing.T) {
	c := New()
	ran := false
	c.Start(func(*Coroutine) {
		ran = true
	})
	assert.True(t, ran)
	assert.True(t, c.Finished())
}

func TestCoroutine_ResumeAfterFinish_Panics(t *testing.T) {
	c := New()
	c.Start(func(*Coroutine) {})
	assert.Panics(t, func() { c.Resume() })
}

func TestCoroutine_ResumeBeforeStart_Panics(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Resume() })
}

func TestCoroutine_YieldOutsideBody_Panics(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Yield() })
}

func TestCoroutine_StartTwice_Panics(t *testing.T) {
	c := New()
	c.Start(func(*Coroutine) {})
	assert.Panics(t, func() {
		c.Start(func(*Coroutine) {})
	})
}
