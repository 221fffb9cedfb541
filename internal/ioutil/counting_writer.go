// Package ioutil contains writer helpers used by the rendering code.
package ioutil

import (
	"fmt"
	"io"
	"sync"

	"braces.dev/errtrace"
)

// CRLF is the line terminator of the SIP wire format.
const CRLF = "\r\n"

// CountingWriter wraps an io.Writer and tracks the total number of bytes written.
// The first write error is sticky: all subsequent writes are skipped and
// the error is reported by [CountingWriter.Result].
type CountingWriter struct {
	w   io.Writer
	num int
	err error
}

// NewCountingWriter creates a new CountingWriter wrapping the given writer.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Write implements io.Writer and tracks bytes written.
func (cw *CountingWriter) Write(p []byte) (n int, err error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	n, err = cw.w.Write(p)
	return n, errtrace.Wrap(cw.track(n, err))
}

// WriteString writes a string and tracks bytes written.
func (cw *CountingWriter) WriteString(s string) (n int, err error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	n, err = io.WriteString(cw.w, s)
	return n, errtrace.Wrap(cw.track(n, err))
}

// Fprint writes the operands in their default formats.
func (cw *CountingWriter) Fprint(args ...any) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	cw.track(fmt.Fprint(cw.w, args...)) //nolint:errcheck
	return cw
}

// Fprintf writes formatted output with a format string.
func (cw *CountingWriter) Fprintf(format string, args ...any) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	cw.track(fmt.Fprintf(cw.w, format, args...)) //nolint:errcheck
	return cw
}

// Line writes the operands followed by CRLF.
// Operands are written back to back, no spaces are added between them.
func (cw *CountingWriter) Line(args ...any) *CountingWriter {
	for _, arg := range args {
		cw.Fprint(arg)
	}
	return cw.Fprint(CRLF)
}

// Call executes a RenderTo-style function and tracks bytes written.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	cw.track(fn(cw.w)) //nolint:errcheck
	return cw
}

func (cw *CountingWriter) track(n int, err error) error {
	cw.num += n
	if err != nil {
		cw.err = errtrace.Wrap(err)
	}
	return cw.err
}

// Result returns the total number of bytes written and any error encountered.
func (cw *CountingWriter) Result() (num int, err error) {
	return cw.num, errtrace.Wrap(cw.err)
}

// Err returns any error that occurred during writing.
func (cw *CountingWriter) Err() error {
	return errtrace.Wrap(cw.err)
}

// Count returns the total number of bytes written.
func (cw *CountingWriter) Count() int {
	return cw.num
}

var cntWrtPool = &sync.Pool{
	New: func() any { return &CountingWriter{} },
}

func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := cntWrtPool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

func FreeCountingWriter(cw *CountingWriter) {
	cw.w = nil
	cw.num = 0
	cw.err = nil
	cntWrtPool.Put(cw)
}
