// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"log"
	"os"
)

// Level selects which messages a logWrapper prints.
type Level int

// Log levels, from most to least verbose.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger describes a logger to be used in intelspi.
type Logger interface {
	// Debugf logs a message only useful when chasing hardware problems.
	Debugf(format string, args ...interface{})

	// Infof logs an informational message.
	Infof(format string, args ...interface{})

	// Warnf logs an warning message.
	Warnf(format string, args ...interface{})

	// Errorf logs an error message.
	Errorf(format string, args ...interface{})

	// Fatalf logs a fatal message and immediately exits the application
	// with os.Exit.
	Fatalf(format string, args ...interface{})
}

// DefaultLogger is the logger used by default everywhere within intelspi.
var DefaultLogger Logger

func init() {
	DefaultLogger = New(LevelInfo)
}

// New returns a Logger writing to stderr which drops messages below level.
func New(level Level) Logger {
	return logWrapper{Logger: log.New(os.Stderr, "", log.LstdFlags), Level: level}
}

type logWrapper struct {
	Logger *log.Logger
	Level  Level
}

// Debugf implements Logger.
func (logger logWrapper) Debugf(format string, args ...interface{}) {
	if logger.Level > LevelDebug {
		return
	}
	logger.Logger.Printf("[intelspi][DEBUG] "+format, args...)
}

// Infof implements Logger.
func (logger logWrapper) Infof(format string, args ...interface{}) {
	if logger.Level > LevelInfo {
		return
	}
	logger.Logger.Printf("[intelspi][INFO] "+format, args...)
}

// Warnf implements Logger.
func (logger logWrapper) Warnf(format string, args ...interface{}) {
	if logger.Level > LevelWarn {
		return
	}
	logger.Logger.Printf("[intelspi][WARN] "+format, args...)
}

// Errorf implements Logger.
func (logger logWrapper) Errorf(format string, args ...interface{}) {
	logger.Logger.Printf("[intelspi][ERROR] "+format, args...)
}

// Fatalf implements Logger.
func (logger logWrapper) Fatalf(format string, args ...interface{}) {
	logger.Logger.Fatalf("[intelspi][FATAL] "+format, args...)
}

// Debugf logs a debug message.
func Debugf(format string, args ...interface{}) {
	DefaultLogger.Debugf(format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...interface{}) {
	DefaultLogger.Infof(format, args...)
}

// Warnf logs an warning message.
func Warnf(format string, args ...interface{}) {
	DefaultLogger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	DefaultLogger.Errorf(format, args...)
}

// Fatalf logs a fatal message and immediately exits the application
// with os.Exit (which is expected to be called by the DefaultLogger.Fatalf).
func Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}

// Discard is a Logger that drops every message except Fatalf.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debugf(string, ...interface{}) {}
func (discard) Infof(string, ...interface{})  {}
func (discard) Warnf(string, ...interface{})  {}
func (discard) Errorf(string, ...interface{}) {}

func (discard) Fatalf(format string, args ...interface{}) {
	log.Fatalf("[intelspi][FATAL] "+format, args...)
}
