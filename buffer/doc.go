// Package buffer provides the fixed-capacity message buffer a log record
// is composed into.
//
// A Buffer holds Capacity bytes inline and never grows. Appends stop
// silently at Capacity-2 so that Finish always has room for a trailing
// newline plus one spare byte; callers must not rely on full-length output
// for oversized payloads.
//
// Buffers are recycled through a sync.Pool. Acquire hands out a buffer
// owned by exactly one record under construction, and Release returns it
// once the sink has consumed the finished bytes. In steady state each P
// keeps a warm buffer, so composing a record does not allocate.
package buffer
