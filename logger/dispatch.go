package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/crash"
	"github.com/philipp01105/streamlog/sink"
)

// state is the process-wide facade state. It is replaced as a whole by
// Initialize and Shutdown and only read on the logging path.
type state struct {
	sink    sink.Sink
	newline bool
	crash   *crash.Handler
}

var (
	active    atomic.Pointer[state]
	verbosity atomic.Int64
)

// abort terminates the process after a fatal record or uninitialized use.
// It is a variable to allow overriding in tests.
var abort = abortProcess

// diagnostics receives the facade's own error lines.
var diagnostics io.Writer = os.Stderr

// dispatch hands a finished message to the sink. Write errors belong to
// the backend and are not retried.
func dispatch(st *state, sev core.Severity, msg []byte) {
	_ = st.sink.Write(sev, msg)
	if sev == core.FatalSeverity {
		_ = st.sink.Flush()
		abort()
	}
}

func uninitialized(msg []byte) {
	fmt.Fprintf(diagnostics, "logging: record sent while uninitialized: %s\n", bytes.TrimSuffix(msg, []byte{'\n'}))
	abort()
}
