package formatter

import (
	"bytes"
	"strconv"

	"github.com/philipp01105/streamlog/core"
)

// DefaultTimestampFormat is the glog header time layout (month, day,
// time with microseconds).
const DefaultTimestampFormat = "0102 15:04:05.000000"

// TextFormatter renders records as
//
//	<L><mmdd> <hh:mm:ss.uuuuuu> <tid> <file>:<line>] <text>
//
// The "file:line] " part is already at the front of the message.
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	return &TextFormatter{Config: cfg}
}

// Format appends the header and message to buf.
func (f *TextFormatter) Format(r *core.Record, buf *bytes.Buffer) {
	buf.WriteByte(r.Severity.Letter())

	t := r.Time
	if f.UTC {
		t = t.UTC()
	}
	// Append-style formatting avoids string allocation
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	buf.WriteByte(' ')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(r.ThreadID), 10))
	buf.WriteByte(' ')

	buf.Write(r.Message)
}
