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

package host

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/atomic"

	"github.com/hicrproject/hicr/internal/concurrent"
	"github.com/hicrproject/hicr/internal/logger"
	"github.com/hicrproject/hicr/internal/metrics"
)

// DefaultSampleInterval is how often HostSampler refreshes its CPU
// utilization reading.
const DefaultSampleInterval = 5 * time.Second

// HostSampler periodically samples host CPU utilization and keeps the
// latest reading for LastUtilization; the reading is not published to a
// metrics collector. It never influences scheduling
// decisions - the ready/waiting queues and worker pool are untouched by
// anything it observes - it exists purely so an operator can see host
// load alongside queue depth and worker occupancy.
type HostSampler struct {
	interval time.Duration
	percent  func(interval time.Duration, percpu bool) ([]float64, error)

	pool     concurrent.Pool
	lastLoad atomic.Float64

	cancel context.CancelFunc
	log    *logger.Logger
}

// NewHostSampler builds a HostSampler that samples every interval
// (DefaultSampleInterval if zero); its sampling job pool reports into
// reg.Pool.
func NewHostSampler(interval time.Duration, reg *metrics.Registry) *HostSampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &HostSampler{
		interval: interval,
		percent:  cpu.Percent,
		pool:     concurrent.NewPool("host-sampler", 1, interval*2, reg.Pool),
		log:      logger.GetLogger("HiCR", "HostSampler"),
	}
}

// LastUtilization returns the most recently sampled average CPU
// utilization across all logical processors, as a percentage in [0,100].
// Zero until the first sample completes.
func (h *HostSampler) LastUtilization() float64 {
	return h.lastLoad.Load()
}

// Start begins sampling on a background goroutine. Stop must be called
// to release it.
func (h *HostSampler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.loop(ctx)
}

// Stop ends the sampling loop and drains the background pool.
func (h *HostSampler) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.pool.Stop()
}

func (h *HostSampler) loop(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.pool.Submit(ctx, concurrent.NewJob(h.sampleOnce, func(err error) {
				h.log.Warn("host sampler job panicked", logger.Error(err))
			}))
		}
	}
}

func (h *HostSampler) sampleOnce() {
	percents, err := h.percent(0, false)
	if err != nil || len(percents) == 0 {
		h.log.Warn("failed to sample host cpu utilization", logger.Error(err))
		return
	}
	h.lastLoad.Store(percents[0])
}
