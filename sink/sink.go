package sink

import (
	"errors"

	"github.com/philipp01105/streamlog/core"
)

// ErrClosed is returned by Write and Flush after Close.
var ErrClosed = errors.New("sink: closed")

// Sink is the backend a finished message is dispatched to. Exactly one
// sink is active per process.
type Sink interface {
	// Write hands a finished message to the backend. msg is only valid
	// for the duration of the call; sinks that keep it must copy it.
	Write(sev core.Severity, msg []byte) error

	// Flush pushes buffered output to its destination
	Flush() error

	// Close flushes and releases the backend
	Close() error
}

// StatsProvider is implemented by sinks that count dropped, blocked and
// processed records.
type StatsProvider interface {
	Stats() Snapshot
}
