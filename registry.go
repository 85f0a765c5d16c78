package fastlog

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// registry is the process-wide slot described by the spec: it holds
// whichever pipeline is currently installed, plus the Filter and
// configured Level consulted by every producer call. It is guarded by
// a read-write lock; producers only ever take the read side, so there
// is no contention with writers once init_* has returned.
type registry struct {
	mu          sync.RWMutex
	initialized bool
	p           *pipeline
	filter      Filter
	level       atomic.Int32
}

var reg registry

// InitCustomLog wires an arbitrary set of appenders, a level, a
// filter and a formatter into a running pipeline and installs it as
// the process-wide logger. A second call (without an intervening
// process restart) returns ErrAlreadyInitialized; re-initialization is
// not supported.
func InitCustomLog(appenders []Appender, level Level, filter Filter, formatter Formatter) (*WaitGroup, error) {
	if len(appenders) == 0 {
		return nil, ErrEmptyAppenders
	}
	if filter == nil {
		filter = NoFilter{}
	}
	if formatter == nil {
		formatter = DefaultFormatter{}
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.initialized {
		return nil, ErrAlreadyInitialized
	}

	p := newPipeline(appenders, formatter)
	reg.p = p
	reg.filter = filter
	reg.level.Store(int32(level))
	reg.initialized = true

	return p.wg, nil
}

// InitLog wires a PlainFileAppender (and optionally a console
// appender for interactive debugging) into InitCustomLog.
func InitLog(path string, level Level, filter Filter, debugConsole bool) (*WaitGroup, error) {
	fileApp, err := NewPlainFileAppender(path)
	if err != nil {
		return nil, err
	}
	appenders := []Appender{fileApp}
	if debugConsole {
		appenders = append(appenders, NewConsoleAppender())
	}
	return InitCustomLog(appenders, level, filter, DefaultFormatter{})
}

// InitSplitLog wires a SplitFileAppender (and optionally a console
// appender) into InitCustomLog.
func InitSplitLog(dir string, maxTempSize uint64, rolling RollingType, level Level, filter Filter, packer Packer, console bool) (*WaitGroup, error) {
	splitApp, err := NewSplitFileAppender(dir, maxTempSize, rolling, packer)
	if err != nil {
		return nil, err
	}
	appenders := []Appender{splitApp}
	if console {
		appenders = append(appenders, NewConsoleAppender())
	}
	return InitCustomLog(appenders, level, filter, DefaultFormatter{})
}

// Flush submits a Flush control record, draining the ingest stage's
// buffer into the sink stage. It does not block on completion; pair
// it with a WaitGroup.Wait after Exit for a synchronous drain.
func Flush() error {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if !reg.initialized {
		return ErrNotInitialized
	}
	reg.p.ingestQ.Push(flushRecord())
	return nil
}

// Exit submits an Exit control record, terminating both pipeline
// stages. Records still held in the ingest buffer (not followed by a
// Flush) are discarded, so call Flush first to deliver them.
func Exit() error {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if !reg.initialized {
		return ErrNotInitialized
	}
	reg.p.ingestQ.Push(exitRecord())
	return nil
}

// CurrentLevel returns the level the active pipeline was configured
// with. If no pipeline is installed it returns the zero Level, which
// is none of the named levels; IsInitialized tells the two apart.
func CurrentLevel() Level {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return Level(reg.level.Load())
}

// IsInitialized reports whether an init_* call has installed a
// pipeline.
func IsInitialized() bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.initialized
}

// submit is the single entry point used by every producer-facing log
// call. It applies the internal recursion guard, the configured
// Level, and the installed Filter, in that order, before handing the
// record to the ingest stage.
func submit(level Level, modulePath, target, file string, line int, args string) error {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if !reg.initialized {
		return ErrNotInitialized
	}
	if blacklisted(modulePath) {
		return nil
	}
	if !level.Enabled(Level(reg.level.Load())) {
		return nil
	}

	rec := &Record{
		Command:    CommandRecord,
		Level:      level,
		Target:     target,
		Args:       args,
		ModulePath: modulePath,
		File:       file,
		Line:       line,
		Now:        time.Now(),
	}

	if !reg.filter.Accept(rec) {
		return nil
	}

	reg.p.ingestQ.Push(rec)
	return nil
}

// callerInfo captures the immediate caller's file, line and an
// approximation of its module path (the Go package import path),
// mirroring what a std-logging-facade adapter would otherwise supply.
// Such an adapter is itself an external collaborator of this package;
// callerInfo exists only so the package-level convenience functions
// below have something reasonable to put in those fields.
func callerInfo(skip int) (file string, line int, modulePath string) {
	pc, f, l, ok := runtime.Caller(skip)
	if !ok {
		return "", 0, ""
	}
	file, line = f, l
	if fn := runtime.FuncForPC(pc); fn != nil {
		// fn.Name() is "<import path>.<func>"; cut at the first '.'
		// after the last '/' to keep just the import path.
		name := fn.Name()
		slash := strings.LastIndexByte(name, '/')
		if dot := strings.IndexByte(name[slash+1:], '.'); dot >= 0 {
			name = name[:slash+1+dot]
		}
		modulePath = name
	}
	return
}

// Errorf logs at Error level.
func Errorf(format string, v ...interface{}) error { return logf(Error, format, v...) }

// Warnf logs at Warn level.
func Warnf(format string, v ...interface{}) error { return logf(Warn, format, v...) }

// Infof logs at Info level.
func Infof(format string, v ...interface{}) error { return logf(Info, format, v...) }

// Debugf logs at Debug level.
func Debugf(format string, v ...interface{}) error { return logf(Debug, format, v...) }

// Tracef logs at Trace level.
func Tracef(format string, v ...interface{}) error { return logf(Trace, format, v...) }

func logf(level Level, format string, v ...interface{}) error {
	file, line, modulePath := callerInfo(3)
	return submit(level, modulePath, "", file, line, fmt.Sprintf(format, v...))
}
