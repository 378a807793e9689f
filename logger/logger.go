package logger

import "github.com/philipp01105/streamlog/core"

// Info opens an informational record.
func Info() *Stream {
	return open(core.InfoSeverity, 1)
}

// Warning opens a warning record.
func Warning() *Stream {
	return open(core.WarningSeverity, 1)
}

// Error opens an error record.
func Error() *Stream {
	return open(core.ErrorSeverity, 1)
}

// Fatal opens a fatal record. Sending it writes the record, flushes the
// sink and aborts the process; code after Send never runs.
func Fatal() *Stream {
	return open(core.FatalSeverity, 1)
}

// If opens a record at sev only when cond holds.
func If(cond bool, sev Severity) *Stream {
	if !cond {
		return nil
	}
	return open(sev, 1)
}

// V opens an info record when level is at or below the current
// verbosity and returns nil otherwise.
func V(level int) *Stream {
	if int64(level) > verbosity.Load() {
		return nil
	}
	return open(core.InfoSeverity, 1)
}

// VEnabled reports whether V(level) would produce a record.
func VEnabled(level int) bool {
	return int64(level) <= verbosity.Load()
}

// Debug opens an info record for debug tracing. Builds tagged ndebug
// compile it to a nil stream.
func Debug() *Stream {
	if !debugEnabled {
		return nil
	}
	return open(core.InfoSeverity, 1)
}

// Depth opens a record at sev attributed to the call site depth frames
// above the caller. Depth(sev, 0) is equivalent to the severity
// functions; wrappers pass 1 to report their own caller.
func Depth(sev Severity, depth int) *Stream {
	return open(sev, depth+1)
}
