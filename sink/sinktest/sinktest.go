// Package sinktest provides an in-memory sink for tests.
package sinktest

import (
	"sync"

	"github.com/philipp01105/streamlog/core"
)

// Entry is one record received by a Recorder.
type Entry struct {
	Severity core.Severity
	Message  string
}

// Recorder is a sink.Sink that keeps a copy of every record it receives.
type Recorder struct {
	// WriteErr, when set, is returned from every Write after the record
	// has been recorded.
	WriteErr error

	mu      sync.Mutex
	entries []Entry
	flushes int
	closes  int
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Write(sev core.Severity, msg []byte) error {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Severity: sev, Message: string(msg)})
	err := r.WriteErr
	r.mu.Unlock()
	return err
}

func (r *Recorder) Flush() error {
	r.mu.Lock()
	r.flushes++
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closes++
	r.mu.Unlock()
	return nil
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded message texts in arrival order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

// Last returns the most recent entry. ok is false when nothing was recorded.
func (r *Recorder) Last() (e Entry, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushes
}

func (r *Recorder) Closes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}

// Reset forgets all entries and counters.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.flushes = 0
	r.closes = 0
	r.mu.Unlock()
}
