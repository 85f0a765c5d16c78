package fastlog

import (
	"fmt"
	"os"
)

// PlainFileAppender appends formatted text to a single file, given at
// construction time. It never rotates or prunes; it is the simple
// sibling of SplitFileAppender. Control records are no-ops.
type PlainFileAppender struct {
	path string
	file *os.File
}

// NewPlainFileAppender opens (creating if necessary) path for
// appending.
func NewPlainFileAppender(path string) (*PlainFileAppender, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, &IoError{Path: path, Cause: fmt.Errorf("open plain file appender: %w", err)}
	}
	return &PlainFileAppender{path: path, file: f}, nil
}

// DoLog appends rec.Formatted for Record commands; control commands
// are ignored.
func (p *PlainFileAppender) DoLog(rec *Record) error {
	if rec.Command != CommandRecord {
		return nil
	}
	if _, err := p.file.WriteString(rec.Formatted); err != nil {
		return &IoError{Path: p.path, Cause: err}
	}
	return nil
}

// Close releases the underlying file handle. It is not part of the
// Appender contract; callers that own a PlainFileAppender directly
// (rather than through init_log) may call it after exit()+wait().
func (p *PlainFileAppender) Close() error {
	return p.file.Close()
}
