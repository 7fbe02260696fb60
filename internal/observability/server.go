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

// Package observability is the optional introspection HTTP endpoint: a
// single /status route reporting the scheduler's ready/waiting queue
// depths, finished-set size and pending count, for an operator who just
// wants to curl a running instance. It is never required for
// correctness - a Runtime with no bind address configured never starts
// one.
package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hicrproject/hicr/internal/logger"
)

// StatusSource is the subset of a Runtime's scheduler a /status handler
// needs; satisfied by *taskr.Scheduler without this package importing
// taskr (taskr already sits below the CLI, and this package is wired in
// from the CLI alongside it - keeping the dependency one-directional
// avoids an import cycle if taskr ever wants to report server state).
type StatusSource interface {
	ReadyLen() int
	WaitingLen() int
	FinishedLen() int
	Pending() int64
}

// Server serves GET /status as JSON on a configured bind address.
type Server struct {
	addr   string
	source StatusSource
	log    *logger.Logger

	httpServer *http.Server
}

// NewServer builds a Server that will report source's counters. addr
// may be empty, in which case Start is a no-op (see §4.10: the
// introspection endpoint is opt-in).
func NewServer(addr string, source StatusSource) *Server {
	return &Server{addr: addr, source: source, log: logger.GetLogger("HiCR", "ObservabilityServer")}
}

// Start launches the HTTP server in the background if an address was
// configured. Safe to call with an empty address: it simply does
// nothing.
func (s *Server) Start() {
	if s.addr == "" {
		return
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/status", s.handleStatus)

	s.httpServer = &http.Server{Addr: s.addr, Handler: router}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("observability server stopped unexpectedly", logger.Error(err))
		}
	}()
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"readyQueueDepth":   s.source.ReadyLen(),
		"waitingQueueDepth": s.source.WaitingLen(),
		"finishedSetSize":   s.source.FinishedLen(),
		"pending":           s.source.Pending(),
	})
}

// Stop gracefully shuts the server down, if one was started.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
