package logger

import (
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/philipp01105/streamlog/buffer"
	"github.com/philipp01105/streamlog/core"
)

// Stream is one log record under construction. Append methods write into
// the record's buffer and return the stream so calls can be chained; Send
// dispatches the record and returns the stream to its pool.
//
// A nil *Stream is a disabled record: every method is a no-op.
type Stream struct {
	buf *buffer.Buffer
	sev core.Severity

	// errno suffix captured when the record was opened
	hasErrno bool
	errno    syscall.Errno
	errText  string
}

var streamPool = sync.Pool{
	New: func() interface{} {
		return new(Stream)
	},
}

// open starts a record attributed to the call site skip frames above
// open's caller.
func open(sev core.Severity, skip int) *Stream {
	return openAt(sev, core.Caller(skip+1))
}

func openAt(sev core.Severity, loc core.Location) *Stream {
	if !sev.Valid() {
		sev = core.InfoSeverity
	}
	s := streamPool.Get().(*Stream)
	s.sev = sev
	s.buf = buffer.Acquire()
	_, _ = s.buf.WriteString(loc.File)
	_ = s.buf.WriteByte(':')
	s.buf.AppendInt(int64(loc.Line))
	_, _ = s.buf.WriteString("] ")
	return s
}

func (s *Stream) off() bool {
	return s == nil || s.buf == nil
}

// Severity returns the record's severity.
func (s *Stream) Severity() core.Severity {
	if s.off() {
		return core.InfoSeverity
	}
	return s.sev
}

// Enabled reports whether the stream will reach a sink.
func (s *Stream) Enabled() bool {
	return !s.off()
}

// Str appends v.
func (s *Stream) Str(v string) *Stream {
	if s.off() {
		return s
	}
	_, _ = s.buf.WriteString(v)
	return s
}

// Bytes appends v.
func (s *Stream) Bytes(v []byte) *Stream {
	if s.off() {
		return s
	}
	_, _ = s.buf.Write(v)
	return s
}

// Byte appends a single byte.
func (s *Stream) Byte(c byte) *Stream {
	if s.off() {
		return s
	}
	_ = s.buf.WriteByte(c)
	return s
}

// Int appends the decimal form of v.
func (s *Stream) Int(v int) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendInt(int64(v))
	return s
}

// Int64 appends the decimal form of v.
func (s *Stream) Int64(v int64) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendInt(v)
	return s
}

// Uint64 appends the decimal form of v.
func (s *Stream) Uint64(v uint64) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendUint(v)
	return s
}

// Float64 appends v in its shortest round-trip form.
func (s *Stream) Float64(v float64) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendFloat(v)
	return s
}

// Bool appends "true" or "false".
func (s *Stream) Bool(v bool) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendBool(v)
	return s
}

// Dur appends d as time.Duration.String would print it.
func (s *Stream) Dur(d time.Duration) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendDuration(d)
	return s
}

// Time appends t in RFC 3339 form with nanoseconds.
func (s *Stream) Time(t time.Time) *Stream {
	if s.off() {
		return s
	}
	s.buf.AppendTime(t, time.RFC3339Nano)
	return s
}

// Err appends err.Error(), or "<nil>".
func (s *Stream) Err(err error) *Stream {
	if s.off() {
		return s
	}
	if err == nil {
		_, _ = s.buf.WriteString("<nil>")
		return s
	}
	_, _ = s.buf.WriteString(err.Error())
	return s
}

// Stringer appends v.String(). It is not called on a disabled stream.
func (s *Stream) Stringer(v fmt.Stringer) *Stream {
	if s.off() {
		return s
	}
	if v == nil {
		_, _ = s.buf.WriteString("<nil>")
		return s
	}
	_, _ = s.buf.WriteString(v.String())
	return s
}

// Any appends v in fmt's %v form.
func (s *Stream) Any(v interface{}) *Stream {
	if s.off() {
		return s
	}
	_, _ = fmt.Fprint(s.buf, v)
	return s
}

// Print appends args as fmt.Print would.
func (s *Stream) Print(args ...interface{}) *Stream {
	if s.off() {
		return s
	}
	_, _ = fmt.Fprint(s.buf, args...)
	return s
}

// Printf appends a formatted string.
func (s *Stream) Printf(format string, args ...interface{}) *Stream {
	if s.off() {
		return s
	}
	_, _ = fmt.Fprintf(s.buf, format, args...)
	return s
}

// Func runs f only when the stream is enabled. Expensive values should be
// computed inside f so disabled records never pay for them.
func (s *Stream) Func(f func(*Stream)) *Stream {
	if s.off() {
		return s
	}
	f(s)
	return s
}

// Write implements io.Writer so the stream can be used with fmt.Fprintf
// and friends. It never fails; overflow is truncated.
func (s *Stream) Write(p []byte) (int, error) {
	if s.off() {
		return len(p), nil
	}
	return s.buf.Write(p)
}

// Msg appends msg and sends the record.
func (s *Stream) Msg(msg string) {
	s.Str(msg).Send()
}

// Msgf appends a formatted message and sends the record.
func (s *Stream) Msgf(format string, args ...interface{}) {
	s.Printf(format, args...).Send()
}

// Send finishes the record and hands it to the active sink. A Fatal
// record flushes the sink and aborts the process, so Send does not
// return for it.
//
// The stream is recycled; it must not be used after Send.
func (s *Stream) Send() {
	if s.off() {
		return
	}
	if s.hasErrno || s.errText != "" {
		s.appendErrSuffix()
	}

	st := active.Load()
	if st == nil {
		uninitialized(s.buf.Bytes())
	} else {
		dispatch(st, s.sev, s.buf.Finish(st.newline))
	}
	s.release()
}

func (s *Stream) release() {
	buffer.Release(s.buf)
	s.buf = nil
	s.hasErrno = false
	s.errno = 0
	s.errText = ""
	streamPool.Put(s)
}
