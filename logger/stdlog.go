package logger

import (
	"bytes"
	"log"

	"github.com/philipp01105/streamlog/core"
)

// stdWriter turns each line written by a *log.Logger into a record.
type stdWriter struct {
	sev core.Severity
}

func (w *stdWriter) Write(p []byte) (int, error) {
	// log.Logger calls Write once per entry
	loc := core.Caller(stdLogDepth)
	s := openAt(w.sev, loc)
	s.Bytes(bytes.TrimSuffix(p, []byte{'\n'}))
	s.Send()
	return len(p), nil
}

// stdLogDepth skips Write, log.(*Logger).output and the Print function
// to reach the caller of the standard logger.
const stdLogDepth = 3

// NewStdLogger returns a *log.Logger whose output becomes records at sev.
// The logger's own prefix and timestamp flags are disabled.
func NewStdLogger(sev Severity) *log.Logger {
	return log.New(&stdWriter{sev: sev}, "", 0)
}

// RedirectStdLog sends the standard library's default logger to the
// facade at info severity and returns a function restoring the previous
// output and flags.
func RedirectStdLog() func() {
	prevFlags := log.Flags()
	prevPrefix := log.Prefix()
	prevOut := log.Writer()
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(&stdWriter{sev: core.InfoSeverity})
	return func() {
		log.SetFlags(prevFlags)
		log.SetPrefix(prevPrefix)
		log.SetOutput(prevOut)
	}
}

