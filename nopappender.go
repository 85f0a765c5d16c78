// Copyright 2009 The Go Authors. All rights reserved.
//
// Changes Copyright 2012, Sudhi Herle <sudhi -at- herle.net>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastlog

// NopAppender discards every record it receives. It is useful as a
// placeholder appender in tests and benchmarks where I/O itself is not
// under test.
type NopAppender struct{}

// DoLog does nothing and never errors.
func (NopAppender) DoLog(*Record) error { return nil }
