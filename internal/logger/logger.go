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

// Package logger is a thin structured-logging wrapper around zap,
// grouping log lines by module/component the same way the rest of the
// codebase's call sites expect (logger.GetLogger("Worker", "0")).
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field, re-exported so call sites never need
// to import zap directly.
type Field = zapcore.Field

var base = newBase()

func newBase() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		// zap's production config is not expected to fail to build;
		// fall back to a no-op logger rather than panic from init.
		return zap.NewNop()
	}
	return l
}

// SetLevel raises the base logger's minimum level (zap.IncreaseLevel
// cannot lower it). Only Loggers obtained from GetLogger after the call
// see the new level; existing Loggers keep theirs.
func SetLevel(level zapcore.Level) {
	base = base.WithOptions(zap.IncreaseLevel(level))
}

// Logger is a component-scoped logger.
type Logger struct {
	z *zap.SugaredLogger
}

// GetLogger returns a Logger scoped to "module/name", e.g.
// GetLogger("Worker", "3") or GetLogger("Scheduler", "ready-queue").
func GetLogger(module, name string) *Logger {
	return &Logger{z: base.Sugar().With("module", module, "component", name)}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(zap.DebugLevel, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(zap.InfoLevel, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(zap.WarnLevel, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(zap.ErrorLevel, msg, fields) }

func (l *Logger) log(level zapcore.Level, msg string, fields []Field) {
	l.z.Desugar().WithOptions(zap.AddCallerSkip(1)).Check(level, msg).Write(fields...)
}

// ErrorField builds a structured field carrying an error.
func ErrorField(err error) Field { return zap.Error(err) }

// Any builds a structured field of any value - mirrors zap.Any so call
// sites never need the zap import just to log a plain value.
func Any(key string, value interface{}) Field { return zap.Any(key, value) }

// Error is a short alias for ErrorField, for call sites that read better
// as logger.Error(err).
func Error(err error) Field { return ErrorField(err) }
