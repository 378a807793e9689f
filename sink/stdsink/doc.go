// Package stdsink provides the simple console backend: info records go
// to stdout, warning, error and fatal records go to stderr, each line
// prefixed with the glog header.
//
// Writes are synchronous. Writers known to be safe for concurrent Write
// calls (*os.File, io.Discard, or any writer flagged ConcurrentWriter)
// are written without locking; ordering between goroutines is then
// whatever the platform stream provides. Other writers are serialized by
// a mutex shared between stdout and stderr when both are the same writer.
package stdsink
