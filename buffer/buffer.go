package buffer

import (
	"strconv"
	"sync"
	"time"
)

// Capacity is the size of every message buffer in bytes.
const Capacity = 4096

// limit is the writable region; two bytes stay reserved for Finish.
const limit = Capacity - 2

// Buffer is a fixed-capacity byte buffer for a single log message.
type Buffer struct {
	data      [Capacity]byte
	n         int
	truncated bool
}

var pool = sync.Pool{
	New: func() interface{} {
		return new(Buffer)
	},
}

// Acquire returns an empty buffer from the pool.
func Acquire() *Buffer {
	b := pool.Get().(*Buffer)
	b.Reset()
	return b
}

// Release returns b to the pool. b must not be used afterwards.
func Release(b *Buffer) {
	if b == nil {
		return
	}
	pool.Put(b)
}

// Reset empties the buffer
func (b *Buffer) Reset() {
	b.n = 0
	b.truncated = false
}

// Len returns the number of bytes written
func (b *Buffer) Len() int {
	return b.n
}

// Truncated reports whether an append was cut short.
func (b *Buffer) Truncated() bool {
	return b.truncated
}

// Bytes returns the written content. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

// Write appends p, truncating at the writable limit. It always reports
// len(p) so fmt and io helpers keep going on a full buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.append(p)
	return len(p), nil
}

// WriteString appends s, truncating at the writable limit.
func (b *Buffer) WriteString(s string) (int, error) {
	room := limit - b.n
	if room <= 0 {
		if len(s) > 0 {
			b.truncated = true
		}
		return len(s), nil
	}
	if len(s) > room {
		s = s[:room]
		b.truncated = true
	}
	b.n += copy(b.data[b.n:], s)
	return len(s), nil
}

// WriteByte appends c unless the buffer is full.
func (b *Buffer) WriteByte(c byte) error {
	if b.n >= limit {
		b.truncated = true
		return nil
	}
	b.data[b.n] = c
	b.n++
	return nil
}

func (b *Buffer) append(p []byte) {
	room := limit - b.n
	if len(p) > room {
		p = p[:max(room, 0)]
		b.truncated = true
	}
	b.n += copy(b.data[b.n:], p)
}

// scratch formats numbers on the stack before they are appended, so a
// value that straddles the limit is cut rather than dropped.
type scratch [64]byte

// AppendInt appends the decimal form of v.
func (b *Buffer) AppendInt(v int64) {
	var s scratch
	b.append(strconv.AppendInt(s[:0], v, 10))
}

// AppendUint appends the decimal form of v.
func (b *Buffer) AppendUint(v uint64) {
	var s scratch
	b.append(strconv.AppendUint(s[:0], v, 10))
}

// AppendFloat appends v in the shortest representation that round-trips.
func (b *Buffer) AppendFloat(v float64) {
	var s scratch
	b.append(strconv.AppendFloat(s[:0], v, 'g', -1, 64))
}

// AppendBool appends "true" or "false".
func (b *Buffer) AppendBool(v bool) {
	var s scratch
	b.append(strconv.AppendBool(s[:0], v))
}

// AppendTime appends t formatted with layout.
func (b *Buffer) AppendTime(t time.Time, layout string) {
	var s scratch
	b.append(t.AppendFormat(s[:0], layout))
}

// AppendDuration appends d in time.Duration.String form.
func (b *Buffer) AppendDuration(d time.Duration) {
	_, _ = b.WriteString(d.String())
}

// Finish terminates the message and returns it. When newline is true and
// the content does not already end in '\n', one is added; the reserved
// bytes guarantee it fits. The result aliases the buffer and is valid
// until the next write or Release.
func (b *Buffer) Finish(newline bool) []byte {
	if newline && (b.n == 0 || b.data[b.n-1] != '\n') {
		b.data[b.n] = '\n'
		b.n++
	}
	return b.data[:b.n]
}
