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

// Package config is the TOML-backed override layer for taskr's
// compile-time defaults. A Config is read once at process start and
// turned into a taskr.Config; it never mutates anything global, so
// tests can load distinct configs into distinct Runtimes in the same
// process.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hicrproject/hicr/taskr"
)

// Config is the on-disk representation of a Runtime's tunables.
type Config struct {
	Scheduler Scheduler `toml:"scheduler"`
	Observability Observability `toml:"observability"`
}

// Scheduler overrides taskr's compile-time queue/worker defaults.
type Scheduler struct {
	MaxSimultaneousTasks   int `toml:"max-simultaneous-tasks"`
	CoroutineStackSize     int `toml:"coroutine-stack-size"`
	MaxSimultaneousWorkers int `toml:"max-simultaneous-workers"`
}

// Observability configures the optional introspection HTTP endpoint.
type Observability struct {
	// BindAddress is the address the /status endpoint listens on, e.g.
	// "127.0.0.1:9100". Empty disables the endpoint entirely.
	BindAddress string `toml:"bind-address"`
}

// NewDefaultConfig returns a Config matching taskr.NewConfig's defaults,
// with the introspection endpoint disabled.
func NewDefaultConfig() *Config {
	d := taskr.NewConfig()
	return &Config{
		Scheduler: Scheduler{
			MaxSimultaneousTasks:   d.MaxSimultaneousTasks,
			CoroutineStackSize:     d.CoroutineStackSize,
			MaxSimultaneousWorkers: d.MaxSimultaneousWorkers,
		},
	}
}

// TaskrConfig translates c into the taskr.Config its Runtime consumes.
func (c *Config) TaskrConfig() taskr.Config {
	return taskr.Config{
		MaxSimultaneousTasks:   c.Scheduler.MaxSimultaneousTasks,
		CoroutineStackSize:     c.Scheduler.CoroutineStackSize,
		MaxSimultaneousWorkers: c.Scheduler.MaxSimultaneousWorkers,
	}
}

// TOML renders c as a commented TOML document, the same shape
// init-config writes to disk.
func (c *Config) TOML() string {
	return fmt.Sprintf(`
## Config for the HiCR task scheduling core
[scheduler]
## bounds the ready and waiting queues
## Default: %d
max-simultaneous-tasks = %d
## documentary only - coroutine stacks grow on demand (see package coroutine)
## Default: %d
coroutine-stack-size = %d
## bounds how many ProcessingUnits a Runtime will accept
## Default: %d
max-simultaneous-workers = %d

[observability]
## address for the optional /status introspection endpoint; empty disables it
bind-address = %q
`,
		c.Scheduler.MaxSimultaneousTasks, c.Scheduler.MaxSimultaneousTasks,
		c.Scheduler.CoroutineStackSize, c.Scheduler.CoroutineStackSize,
		c.Scheduler.MaxSimultaneousWorkers, c.Scheduler.MaxSimultaneousWorkers,
		c.Observability.BindAddress,
	)
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (*Config, error) {
	c := NewDefaultConfig()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c, nil
}

// WriteDefault writes a default config document to path, failing if the
// file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(NewDefaultConfig().TOML()), 0o644)
}
