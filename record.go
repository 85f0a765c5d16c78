// Copyright 2009 The Go Authors. All rights reserved.
//
// Changes Copyright 2012, Sudhi Herle <sudhi -at- herle.net>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastlog is a high-throughput asynchronous logging pipeline.
// Producers hand records to an in-memory, two-stage pipeline; I/O
// (console, plain files, size-rotated split files with a background
// packer) happens entirely off the caller's goroutine.
package fastlog

import "time"

// Level is an ordinal log priority. Lower numbers are more severe; a
// Logger configured at level L prints every record whose level is <= L.
type Level int

const (
	Error Level = 1 + iota
	Warn
	Info
	Debug
	Trace

	levelMax
)

var levelName = map[Level]string{
	Error: "ERROR",
	Warn:  "WARN",
	Info:  "INFO",
	Debug: "DEBUG",
	Trace: "TRACE",
}

func (l Level) String() string {
	if s, ok := levelName[l]; ok {
		return s
	}
	return "UNKNOWN"
}

// Enabled reports whether a record at level l should be admitted when
// the logger is configured at threshold 'configured'.
func (l Level) Enabled(configured Level) bool {
	return l <= configured
}

// Command discriminates a Record's purpose: an ordinary log entry, or
// one of the two control signals that drive the pipeline.
type Command int

const (
	// CommandRecord carries a normal, formattable log event.
	CommandRecord Command = iota
	// CommandFlush drains the ingest stage's buffer into the sink stage.
	CommandFlush
	// CommandExit terminates both pipeline stages. The ingest stage
	// does not forward records it is still buffering; only a preceding
	// Flush delivers them.
	CommandExit
)

func (c Command) String() string {
	switch c {
	case CommandFlush:
		return "flush"
	case CommandExit:
		return "exit"
	default:
		return "record"
	}
}

// Record is one log event, or a control command riding the same
// pipeline. Formatted is populated exactly once, by the Formatter, in
// the sink stage, before any Appender observes the record.
type Record struct {
	Command Command
	Level   Level

	Target     string
	Args       string
	ModulePath string
	File       string
	Line       int // 0 means "no line info"

	Now time.Time

	Formatted string
}

// flushRecord / exitRecord build the conventional control records sent
// by Flush and Exit. Their Args/Formatted carry a sentinel that
// appenders are free to ignore.
func flushRecord() *Record {
	return &Record{Command: CommandFlush, Level: Info, Args: "flush", Formatted: "flush", Now: time.Now()}
}

func exitRecord() *Record {
	return &Record{Command: CommandExit, Level: Info, Args: "exit", Formatted: "exit", Now: time.Now()}
}

// Filter is a predicate over record metadata, consulted by a producer
// before a record is ever enqueued. Rejected records never reach the
// pipeline.
type Filter interface {
	Accept(rec *Record) bool
}

// NoFilter is the only built-in Filter: it admits everything. Filter
// predicates beyond the identity one are an external collaborator of
// this package.
type NoFilter struct{}

// Accept always returns true.
func (NoFilter) Accept(*Record) bool { return true }

// internalModulePathBlacklist holds module paths that are dropped
// before ever reaching a Filter, regardless of what the Filter would
// decide. This exists so the library does not recursively log about
// its own runtime's I/O polling path - the Go analogue of the
// `may::io::sys::select` carve-out in the pipeline this package is
// modeled on.
var internalModulePathBlacklist = map[string]bool{
	"internal/poll": true,
}

func blacklisted(modulePath string) bool {
	return internalModulePathBlacklist[modulePath]
}
