package sink

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/philipp01105/streamlog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest record when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest record when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// ParseOverflowPolicy converts "drop-newest", "drop-oldest" or "block"
// (case-insensitive, "discard" is an alias of drop-newest) to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop-newest", "dropnewest", "discard":
		return DropNewest, nil
	case "drop-oldest", "dropoldest":
		return DropOldest, nil
	case "block":
		return Block, nil
	default:
		return DropNewest, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// DefaultLevelPolicy discards info, warning and error records under load
// and blocks (with timeout) for fatal ones, which must reach the sink.
func DefaultLevelPolicy() map[core.Severity]OverflowPolicy {
	return map[core.Severity]OverflowPolicy{
		core.InfoSeverity:    DropNewest,
		core.WarningSeverity: DropNewest,
		core.ErrorSeverity:   DropNewest,
		core.FatalSeverity:   Block,
	}
}

// NewStoppedTimer returns a timer that is stopped and drained, ready for
// Reset.
func NewStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// Stats tracks sink statistics
type Stats struct {
	dropped   [core.NumSeverities]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a severity
func (s *Stats) IncrementDropped(sev core.Severity) {
	if sev.Valid() {
		s.dropped[sev].Add(1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// IncrementFailed atomically increments the write failure counter
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// GetDropped returns the dropped count for a severity
func (s *Stats) GetDropped(sev core.Severity) uint64 {
	if !sev.Valid() {
		return 0
	}
	return s.dropped[sev].Load()
}

// GetTotalDropped returns the total dropped across all severities
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += s.dropped[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
	s.failed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	DroppedTotal   map[core.Severity]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Severity]uint64, core.NumSeverities)
	for i := range s.dropped {
		dropped[core.Severity(i)] = s.dropped[i].Load()
	}
	return Snapshot{
		DroppedTotal:   dropped,
		BlockedTotal:   s.blocked.Load(),
		ProcessedTotal: s.processed.Load(),
		FailedTotal:    s.failed.Load(),
	}
}
