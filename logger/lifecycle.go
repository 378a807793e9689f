package logger

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/philipp01105/streamlog/crash"
	"github.com/philipp01105/streamlog/sink"
)

var (
	// ErrAlreadyInitialized is returned by Initialize while the facade is active.
	ErrAlreadyInitialized = errors.New("logging: already initialized")
	// ErrNotInitialized is returned by Shutdown and Flush while the facade is inactive.
	ErrNotInitialized = errors.New("logging: not initialized")
)

// Initialize builds the sink described by opts and activates the facade.
// A nil opts uses NewOptions. Calling it again before Shutdown returns
// ErrAlreadyInitialized and leaves the active facade untouched.
//
// Initialize and Shutdown must not run concurrently with each other or
// with records being sent.
func Initialize(opts *Options) error {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Complete(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("logging: invalid options: %w", err)
	}
	if active.Load() != nil {
		return ErrAlreadyInitialized
	}

	s, err := newSink(opts)
	if err != nil {
		return fmt.Errorf("logging: create %s backend: %w", opts.Backend, err)
	}

	st := &state{
		sink:    s,
		newline: opts.newlinePolicy(),
	}
	if opts.Stacktrace {
		st.crash = crash.Install(onFailureSignal)
	}
	if !active.CompareAndSwap(nil, st) {
		st.crash.Stop()
		_ = s.Close()
		return ErrAlreadyInitialized
	}
	verbosity.Store(int64(initialVerbosity(opts)))
	return nil
}

// initialVerbosity returns opts.Verbosity unless the verbosity
// environment variable holds an integer.
func initialVerbosity(opts *Options) int {
	if opts.VerbosityEnv == "" {
		return opts.Verbosity
	}
	v, ok := os.LookupEnv(opts.VerbosityEnv)
	if !ok {
		return opts.Verbosity
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return opts.Verbosity
	}
	return n
}

// Shutdown flushes and closes the sink and returns the facade to the
// uninitialized state. A later Initialize starts over.
func Shutdown() error {
	st := active.Swap(nil)
	if st == nil {
		return ErrNotInitialized
	}
	st.crash.Stop()
	return multierr.Combine(st.sink.Flush(), st.sink.Close())
}

// Flush pushes buffered records of the active sink to their destination.
func Flush() error {
	st := active.Load()
	if st == nil {
		return ErrNotInitialized
	}
	return st.sink.Flush()
}

// Active reports whether the facade is initialized.
func Active() bool {
	return active.Load() != nil
}

// SetVerbosity changes the level V compares against.
func SetVerbosity(level int) {
	verbosity.Store(int64(level))
}

// Verbosity returns the current verbosity level.
func Verbosity() int {
	return int(verbosity.Load())
}

// Newline reports whether records get a trailing newline. It is false
// while uninitialized.
func Newline() bool {
	st := active.Load()
	return st != nil && st.newline
}

// Stats returns the drop and throughput counters of the active sink, if
// it keeps any.
func Stats() (sink.Snapshot, bool) {
	st := active.Load()
	if st == nil {
		return sink.Snapshot{}, false
	}
	sp, ok := st.sink.(sink.StatsProvider)
	if !ok {
		return sink.Snapshot{}, false
	}
	return sp.Stats(), true
}

// onFailureSignal records the signal and flushes before the crash
// handler re-raises it.
func onFailureSignal(sig os.Signal) {
	st := active.Load()
	if st == nil {
		return
	}
	Error().Str("*** received signal: ").Str(sig.String()).Str(" ***").Send()
	_ = st.sink.Flush()
}
