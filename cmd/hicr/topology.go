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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hicrproject/hicr/hicr/backend/host"
)

func newTopologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "print the discovered host compute resources",
		RunE:  runTopology,
	}
}

func runTopology(_ *cobra.Command, _ []string) error {
	topo, err := host.NewTopologyManager().QueryTopology()
	if err != nil {
		return fmt.Errorf("query topology: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Device", "Compute Resource", "Type", "Memory Spaces"})
	for di, d := range topo.Devices() {
		for _, cr := range d.ComputeResources() {
			t.AppendRow(table.Row{di, cr.ID(), cr.Type(), len(d.MemorySpaces())})
		}
	}
	t.Render()
	return nil
}
