// Package asyncsink provides the asynchronous backend.
//
// With an empty Filename it returns a synchronous stdout writer (every
// severity goes to stdout, as a single console logger does). With a
// Filename it opens the file in append mode and returns a FileSink: Write
// copies the message into a pooled record and pushes it onto a bounded
// queue drained by one background goroutine, so callers never wait on
// disk I/O.
//
// When the queue is full the per-severity OverflowPolicy applies. The
// default discards info, warning and error records rather than blocking
// the caller, and blocks with a timeout for fatal records before falling
// back to a synchronous write. Records at or above FlushOn flush the
// buffered file writer as soon as they are written.
//
// Flush waits (up to DrainTimeout) until every record queued before the
// call has been written and the file writer flushed. Close drains the
// queue with the same timeout, then flushes, syncs and closes the file.
package asyncsink
