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

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hicrproject/hicr/config"
	"github.com/hicrproject/hicr/hicr/backend/host"
	"github.com/hicrproject/hicr/hicr/l0"
	"github.com/hicrproject/hicr/internal/metrics"
	"github.com/hicrproject/hicr/internal/observability"
	"github.com/hicrproject/hicr/taskr"
)

func newRunCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "drive the example ABC dependency chain on the host backend",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWorkload(cfgPath)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a hicr.toml config; defaults compiled in if unset")
	return cmd
}

func loadRunConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewDefaultConfig(), nil
	}
	return config.Load(path)
}

func runWorkload(cfgPath string) error {
	cfg, err := loadRunConfig(cfgPath)
	if err != nil {
		return err
	}

	topo, err := host.NewTopologyManager().QueryTopology()
	if err != nil {
		return fmt.Errorf("query topology: %w", err)
	}

	compute := host.NewComputeManager()
	rt := taskr.NewRuntime(compute, cfg.TaskrConfig())
	for _, cr := range topo.Devices()[0].ComputeResources() {
		if err := rt.AddProcessingUnit(cr); err != nil {
			break // MaxSimultaneousWorkers reached; run with what we have
		}
	}

	reg := metrics.NewRegistry()
	prometheus.MustRegister(reg.Collectors()...)

	sampler := host.NewHostSampler(0, reg)
	sampler.Start()
	defer sampler.Stop()

	obsServer := observability.NewServer(cfg.Observability.BindAddress, rt.Scheduler())
	obsServer.Start()
	defer func() { _ = obsServer.Stop() }()

	var mu sync.Mutex
	type row struct {
		label    uint64
		name     string
		duration time.Duration
	}
	var rows []row
	timed := func(label uint64, name string, fn func()) *taskr.Task {
		return taskr.NewTask(label, l0.NewExecutionUnit(func() {
			start := time.Now()
			fn()
			mu.Lock()
			rows = append(rows, row{label: label, name: name, duration: time.Since(start)})
			mu.Unlock()
		}))
	}

	a := timed(1, "A", func() {})
	b := timed(2, "B", func() {})
	c := timed(3, "C", func() {})
	if err := b.AddTaskDependency(1); err != nil {
		return err
	}
	if err := c.AddTaskDependency(2); err != nil {
		return err
	}

	for _, tk := range []*taskr.Task{a, b, c} {
		if err := rt.AddTask(tk); err != nil {
			return err
		}
	}

	if err := rt.Run(); err != nil {
		return err
	}
	rt.Finalize()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Label", "Name", "Duration"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.label, r.name, r.duration})
	}
	t.Render()
	return nil
}
