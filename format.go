package fastlog

import "time"

// Formatter renders a Record's textual Formatted field. It is invoked
// exactly once per non-control record, in the sink stage, before any
// Appender sees the record. Implementations must be deterministic and
// pure with respect to the record's fields.
type Formatter interface {
	Format(rec *Record)
}

// DefaultFormatter renders a one-line, human-readable entry:
//
//	<ISO-8601 local time> <LEVEL> <module_path> - <args>
type DefaultFormatter struct{}

// Format mutates rec.Formatted in place.
func (DefaultFormatter) Format(rec *Record) {
	b := make([]byte, 0, len(rec.Args)+64)
	b = appendTimestamp(b, rec.Now)
	b = append(b, ' ')
	b = append(b, rec.Level.String()...)
	b = append(b, ' ')
	b = append(b, rec.ModulePath...)
	b = append(b, " - "...)
	b = append(b, rec.Args...)
	b = append(b, '\n')
	rec.Formatted = string(b)
}

// appendTimestamp writes an ISO-8601 local timestamp with microsecond
// resolution: 2006-01-02T15:04:05.000000
func appendTimestamp(out []byte, t time.Time) []byte {
	t = t.Local()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	micros := t.Nanosecond() / 1000

	out = itoa(out, year, 4)
	out = append(out, '-')
	out = itoa(out, int(month), 2)
	out = append(out, '-')
	out = itoa(out, day, 2)
	out = append(out, 'T')
	out = itoa(out, hour, 2)
	out = append(out, ':')
	out = itoa(out, min, 2)
	out = append(out, ':')
	out = itoa(out, sec, 2)
	out = append(out, '.')
	out = itoa(out, micros, 6)
	return out
}

// itoa is a cheap integer to fixed-width decimal ASCII converter,
// avoiding the allocation overhead of fmt.Sprintf on the hot
// formatting path.
func itoa(out []byte, i int, wid int) []byte {
	var u uint = uint(i)
	var b [32]byte

	bp := len(b) - 1
	for u >= 10 || wid > 1 {
		wid--
		q := u / 10
		b[bp] = byte('0' + u - q*10)
		bp--
		u = q
	}
	b[bp] = byte('0' + u)
	return append(out, b[bp:]...)
}
