// Package sink defines the Sink interface every logging backend
// implements, plus the overflow policy and statistics shared by the
// queueing backends.
//
// The facade holds exactly one Sink after Initialize and calls Write
// with a finished message: the "file:line] " prefix, the text, and a
// trailing newline when the newline policy is on. The slice is only valid
// during Write, because the facade reuses its message buffer; sinks that
// defer the write (asyncsink's file mode) copy it into a pooled
// core.Record. The facade never double-buffers on top of a backend.
//
// Backends live in sub-packages:
//
//   - stdsink writes synchronously to stdout (info) and stderr (others).
//   - asyncsink writes to stdout, or to a file through a bounded queue
//     drained by a background goroutine.
//   - zapsink hands records to a go.uber.org/zap core.
//   - sinktest records messages in memory for tests.
//
// When an async queue is full, a per-severity OverflowPolicy applies:
// DropNewest (default for info, warning, error), DropOldest, or Block
// with a timeout (default for fatal). Dropped, blocked, processed and
// failed counts are tracked by Stats.
package sink
