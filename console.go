package fastlog

import (
	"io"
	"os"
)

// ConsoleAppender writes a record's formatted text to an io.Writer,
// defaulting to the process' standard output. Control records are
// no-ops.
type ConsoleAppender struct {
	w io.Writer
}

// NewConsoleAppender returns a ConsoleAppender writing to os.Stdout.
func NewConsoleAppender() *ConsoleAppender {
	return &ConsoleAppender{w: os.Stdout}
}

// NewConsoleAppenderTo returns a ConsoleAppender writing to an
// arbitrary io.Writer - useful in tests, or to redirect to stderr.
func NewConsoleAppenderTo(w io.Writer) *ConsoleAppender {
	return &ConsoleAppender{w: w}
}

// DoLog writes rec.Formatted verbatim for Record commands; control
// commands are ignored.
func (c *ConsoleAppender) DoLog(rec *Record) error {
	if rec.Command != CommandRecord {
		return nil
	}
	_, err := io.WriteString(c.w, rec.Formatted)
	return err
}
