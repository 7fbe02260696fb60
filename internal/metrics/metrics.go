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

// Package metrics defines the Prometheus collectors for the runtime:
// queue depths, the finished-set size, worker occupancy, task outcomes,
// and the concurrent job pool's own bookkeeping. This package serves no
// HTTP endpoint of its own.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is the set of collectors one Runtime publishes. Construct
// with NewRegistry and register it with a prometheus.Registerer of the
// caller's choosing (the CLI wires it to prometheus.DefaultRegisterer).
//
// Only the Pool collectors are updated by code in this repository (by
// internal/concurrent); the scheduler, worker and task collectors are
// registered but nothing in taskr sets them, so they stay at zero.
type Registry struct {
	ReadyQueueDepth   prometheus.Gauge
	WaitingQueueDepth prometheus.Gauge
	FinishedSetSize   prometheus.Gauge
	WorkersExecuting  prometheus.Gauge

	TasksAdmitted prometheus.Counter
	TasksFinished prometheus.Counter
	TasksFailed   prometheus.Counter

	Pool *PoolStatistics
}

// NewRegistry builds a Registry with every collector labeled under the
// "hicr" namespace, unregistered.
func NewRegistry() *Registry {
	return &Registry{
		ReadyQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hicr", Subsystem: "scheduler", Name: "ready_queue_depth",
			Help: "Number of tasks currently in the ready queue.",
		}),
		WaitingQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hicr", Subsystem: "scheduler", Name: "waiting_queue_depth",
			Help: "Number of tasks currently in the waiting queue.",
		}),
		FinishedSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hicr", Subsystem: "scheduler", Name: "finished_set_size",
			Help: "Number of distinct labels in the finished-set.",
		}),
		WorkersExecuting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hicr", Subsystem: "worker", Name: "executing",
			Help: "Number of workers currently executing a task.",
		}),
		TasksAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "task", Name: "admitted_total",
			Help: "Total tasks admitted to a Runtime.",
		}),
		TasksFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "task", Name: "finished_total",
			Help: "Total tasks that finished without error.",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "task", Name: "failed_total",
			Help: "Total tasks whose execution unit returned or panicked with an error.",
		}),
		Pool: NewPoolStatistics("host-sampler"),
	}
}

// Collectors returns every collector in r, for bulk registration:
// reg.MustRegister(r.Collectors()...).
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.ReadyQueueDepth,
		r.WaitingQueueDepth,
		r.FinishedSetSize,
		r.WorkersExecuting,
		r.TasksAdmitted,
		r.TasksFinished,
		r.TasksFailed,
		r.Pool.WorkersAlive,
		r.Pool.WorkersCreated,
		r.Pool.WorkersKilled,
		r.Pool.TasksConsumed,
		r.Pool.TasksRejected,
		r.Pool.TasksPanic,
		r.Pool.JobLatency,
	}
}

// PoolStatistics is the per-pool counter set a internal/concurrent.Pool
// reports into: worker lifecycle (alive/created/killed) and job outcome
// (consumed/rejected/panicked) counts, labeled by pool name so multiple
// pools can share a registry. These are exposition-only: the pool itself
// reads worker liveness from its slot-token channel, since
// prometheus.Gauge exposes no way to read its current value back.
type PoolStatistics struct {
	WorkersAlive   prometheus.Gauge
	WorkersCreated prometheus.Counter
	WorkersKilled  prometheus.Counter
	TasksConsumed  prometheus.Counter
	TasksRejected  prometheus.Counter
	TasksPanic     prometheus.Counter
	JobLatency     prometheus.Histogram
}

// NewPoolStatistics builds a PoolStatistics for a pool named name.
func NewPoolStatistics(name string) *PoolStatistics {
	labels := prometheus.Labels{"pool": name}
	return &PoolStatistics{
		WorkersAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "workers_alive",
			Help: "Number of goroutines currently alive in the pool.", ConstLabels: labels,
		}),
		WorkersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "workers_created_total",
			Help: "Total goroutines ever started by the pool.", ConstLabels: labels,
		}),
		WorkersKilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "workers_killed_total",
			Help: "Total goroutines recycled for being idle.", ConstLabels: labels,
		}),
		TasksConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "jobs_consumed_total",
			Help: "Total jobs that ran to completion.", ConstLabels: labels,
		}),
		TasksRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "jobs_rejected_total",
			Help: "Total jobs dropped because their submit context was done.", ConstLabels: labels,
		}),
		TasksPanic: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "jobs_panicked_total",
			Help: "Total jobs whose handle panicked.", ConstLabels: labels,
		}),
		JobLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hicr", Subsystem: "pool", Name: "job_latency_seconds",
			Help:        "Time from job submission to completion, including any queueing.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
	}
}
