package logger

import (
	"errors"
	"syscall"

	"github.com/philipp01105/streamlog/core"
)

// PInfo opens an info record that ends with the errno found in err.
//
// The suffix is ": <text> [<errno>]", where text comes from the Go
// runtime's errno table (syscall.Errno.Error), so it is lowercase and
// the same on every platform Go supports. The errno is taken from err
// when the record is opened, so later failures cannot change it. An
// error that carries no errno is rendered as ": <err>", and a nil error
// as errno 0.
func PInfo(err error) *Stream {
	return open(core.InfoSeverity, 1).captureErr(err)
}

// PWarning is PInfo at warning severity.
func PWarning(err error) *Stream {
	return open(core.WarningSeverity, 1).captureErr(err)
}

// PError is PInfo at error severity.
func PError(err error) *Stream {
	return open(core.ErrorSeverity, 1).captureErr(err)
}

// PFatal is PInfo at fatal severity. Sending it aborts the process.
func PFatal(err error) *Stream {
	return open(core.FatalSeverity, 1).captureErr(err)
}

// PErrno opens a record at sev that ends with the given raw errno.
func PErrno(sev Severity, errno syscall.Errno) *Stream {
	s := open(sev, 1)
	s.hasErrno = true
	s.errno = errno
	return s
}

func (s *Stream) captureErr(err error) *Stream {
	var errno syscall.Errno
	switch {
	case err == nil:
		s.hasErrno = true
	case errors.As(err, &errno):
		s.hasErrno = true
		s.errno = errno
	default:
		s.errText = err.Error()
	}
	return s
}

func (s *Stream) appendErrSuffix() {
	_, _ = s.buf.WriteString(": ")
	if !s.hasErrno {
		_, _ = s.buf.WriteString(s.errText)
		return
	}
	_, _ = s.buf.WriteString(strerror(s.errno))
	_, _ = s.buf.WriteString(" [")
	s.buf.AppendInt(int64(s.errno))
	_ = s.buf.WriteByte(']')
}

// strerror returns the runtime's text for errno. Errno 0 has no entry in
// that table and is rendered as "success" to match its casing.
func strerror(errno syscall.Errno) string {
	if errno == 0 {
		return "success"
	}
	return errno.Error()
}
