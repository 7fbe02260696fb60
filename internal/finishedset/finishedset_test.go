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

package finishedset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_InsertContains(t *testing.T) {
	s := New()
	assert.False(t, s.Contains(42))
	s.Insert(42)
	assert.True(t, s.Contains(42))
	assert.Equal(t, 1, s.Len())
}

func TestSet_InsertIdempotent(t *testing.T) {
	s := New()
	s.Insert(7)
	s.Insert(7)
	assert.Equal(t, 1, s.Len())
}

func TestSet_ZeroLabelIsLegal(t *testing.T) {
	s := New()
	s.Insert(0)
	assert.True(t, s.Contains(0))
}

func TestSet_ConcurrentInsert(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 2000; i++ {
		wg.Add(1)
		go func(label uint64) {
			defer wg.Done()
			s.Insert(label)
		}(uint64(i))
	}
	wg.Wait()
	assert.Equal(t, 2000, s.Len())
}
