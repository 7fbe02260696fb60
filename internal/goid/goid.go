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

// Package goid extracts the runtime's own goroutine ID, the closest Go
// gets to a thread-local key. It exists only so taskr can emulate the
// tasking model's process-wide "current task"/"current worker" handles,
// which the model exposes as thread-local lookups; goroutine ID is the
// natural analogue since one task body runs on exactly one goroutine for
// its entire lifetime.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Current returns the calling goroutine's ID, parsed out of its own
// stack trace header ("goroutine 123 [running]:"). It is not cheap -
// callers should cache the result for the lifetime of the goroutine
// rather than call this on every lookup.
func Current() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	const prefix = "goroutine "
	buf = bytes.TrimPrefix(buf, []byte(prefix))
	if idx := bytes.IndexByte(buf, ' '); idx >= 0 {
		buf = buf[:idx]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		// Should never happen: the runtime's own trace format is
		// stable across supported Go versions. Fall back to 0 rather
		// than panic from an internal lookup.
		return 0
	}
	return id
}
