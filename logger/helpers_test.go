package logger

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/sink/sinktest"
)

// initRecorder activates the facade on an in-memory sink for one test.
func initRecorder(t *testing.T, configure ...func(*Options)) *sinktest.Recorder {
	t.Helper()
	rec := sinktest.New()
	opts := NewOptions()
	opts.Sink = rec
	opts.Stacktrace = false
	opts.VerbosityEnv = ""
	for _, f := range configure {
		f(opts)
	}
	if err := Initialize(opts); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() {
		_ = Shutdown()
		SetVerbosity(0)
	})
	return rec
}

// stubAbort replaces the process abort and counts calls.
func stubAbort(t *testing.T) *int {
	t.Helper()
	calls := 0
	oldAbort := abort
	abort = func() { calls++ }
	t.Cleanup(func() { abort = oldAbort })
	return &calls
}

// captureDiagnostics redirects the facade's stderr lines.
func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := diagnostics
	diagnostics = &buf
	t.Cleanup(func() { diagnostics = old })
	return &buf
}

// line returns the line number of its caller.
func line() int {
	_, _, l, _ := runtime.Caller(1)
	return l
}

type discardSink struct{}

func (discardSink) Write(core.Severity, []byte) error { return nil }
func (discardSink) Flush() error                      { return nil }
func (discardSink) Close() error                      { return nil }
