package core

import (
	"sync"
	"time"
)

// Record is a finished message as seen by a sink. Message includes the
// "file:line] " prefix and any trailing newline added by the facade.
type Record struct {
	Time     time.Time
	Severity Severity
	ThreadID int
	Message  []byte
}

// recordPool is a pool of Record objects for sinks that queue records.
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Message: make([]byte, 0, 256),
		}
	},
}

// GetRecord retrieves a Record from the pool and copies msg into it, so
// the record outlives the caller's message buffer.
func GetRecord(t time.Time, sev Severity, tid int, msg []byte) *Record {
	r := recordPool.Get().(*Record)
	r.Time = t
	r.Severity = sev
	r.ThreadID = tid
	r.Message = append(r.Message[:0], msg...)
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	// Don't keep records grown by an oversized message
	if cap(r.Message) > 8*1024 {
		return
	}
	r.Message = r.Message[:0]
	recordPool.Put(r)
}
