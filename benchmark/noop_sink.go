package benchmark

import "github.com/philipp01105/streamlog/core"

// noopSink accepts finished messages without formatting or writing them,
// isolating the cost of the facade itself.
type noopSink struct{}

func (noopSink) Write(_ core.Severity, msg []byte) error {
	_ = len(msg)
	return nil
}

func (noopSink) Flush() error { return nil }

func (noopSink) Close() error { return nil }
