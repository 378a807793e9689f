package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/streamlog/core"
)

// Formatter renders a record into a line.
type Formatter interface {
	// Format appends the formatted record to buf
	Format(r *core.Record, buf *bytes.Buffer)
}

// Config holds formatter configuration
type Config struct {
	// TimestampFormat is the time layout of the header (default: "0102 15:04:05.000000")
	TimestampFormat string
	// UTC renders timestamps in UTC instead of local time
	UTC bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty pooled buffer.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// WriteTo formats r into a pooled buffer and writes it to w in a single
// Write call.
func WriteTo(f Formatter, r *core.Record, w io.Writer) (int, error) {
	buf := GetBuffer()
	f.Format(r, buf)
	n, err := w.Write(buf.Bytes())
	PutBuffer(buf)
	return n, err
}
