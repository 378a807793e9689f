package asyncsink

import (
	"bufio"
	"bytes"
	"os"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
	"github.com/philipp01105/streamlog/sink"
)

// FileSink writes records to a file from a background goroutine fed by a
// bounded queue.
type FileSink struct {
	file      *os.File
	bufWriter *bufio.Writer
	formatter formatter.Formatter
	clock     core.Clock
	flushOn   core.Severity
	mu        sync.Mutex // protects bufWriter, file and syncBuf
	syncBuf   bytes.Buffer

	queue          chan *core.Record
	flushReq       chan chan error
	wg             sync.WaitGroup
	overflowPolicy map[core.Severity]sink.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	blockMu        sync.Mutex // guards blockTimer
	blockTimer     *time.Timer
	stats          *sink.Stats
	closed         chan struct{}
	closeOnce      sync.Once
	closeErr       error
}

func newFileSink(cfg Config, file *os.File) *FileSink {
	s := &FileSink{
		file:           file,
		bufWriter:      bufio.NewWriterSize(file, 4096),
		formatter:      cfg.Formatter,
		clock:          core.NewClock(cfg.CoarseClock),
		flushOn:        cfg.FlushOn,
		queue:          make(chan *core.Record, cfg.QueueSize),
		flushReq:       make(chan chan error),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		blockTimer:     sink.NewStoppedTimer(),
		stats:          sink.NewStats(),
		closed:         make(chan struct{}),
	}
	s.syncBuf.Grow(256)

	s.wg.Add(1)
	go s.process()
	return s
}

// Write copies msg into a pooled record and queues it according to the
// overflow policy for sev.
func (s *FileSink) Write(sev core.Severity, msg []byte) error {
	select {
	case <-s.closed:
		return sink.ErrClosed
	default:
	}

	r := core.GetRecord(s.clock(), sev, core.ThreadID(), msg)

	policy, ok := s.overflowPolicy[sev]
	if !ok {
		policy = sink.DropNewest // Default if not specified
	}

	switch policy {
	case sink.Block:
		select {
		case s.queue <- r:
			return nil
		default:
		}
		return s.enqueueBlocking(r)

	case sink.DropOldest:
		select {
		case s.queue <- r:
			return nil
		default:
			// Queue full - try to drop oldest
			select {
			case old := <-s.queue:
				s.stats.IncrementDropped(old.Severity)
				core.PutRecord(old)
			default:
			}
			select {
			case s.queue <- r:
				return nil
			default:
				// Still full, drop this one
				s.stats.IncrementDropped(sev)
				core.PutRecord(r)
				return nil
			}
		}

	default:
		select {
		case s.queue <- r:
			return nil
		default:
			// Queue full - drop this record
			s.stats.IncrementDropped(sev)
			core.PutRecord(r)
			return nil
		}
	}
}

// enqueueBlocking waits up to blockTimeout for queue space, then falls
// back to writing synchronously.
func (s *FileSink) enqueueBlocking(r *core.Record) error {
	s.blockMu.Lock()
	s.blockTimer.Reset(s.blockTimeout)
	defer func() {
		if !s.blockTimer.Stop() {
			select {
			case <-s.blockTimer.C:
			default:
			}
		}
		s.blockMu.Unlock()
	}()

	select {
	case s.queue <- r:
		return nil
	case <-s.blockTimer.C:
		s.stats.IncrementBlocked()
	case <-s.closed:
	}
	err := s.writeRecord(r)
	core.PutRecord(r)
	return err
}

// writeRecord formats r into the sink-owned buffer and writes it to the
// buffered file writer, flushing for severities at or above flushOn.
func (s *FileSink) writeRecord(r *core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncBuf.Reset()
	s.formatter.Format(r, &s.syncBuf)
	_, err := s.bufWriter.Write(s.syncBuf.Bytes())
	if err == nil && r.Severity >= s.flushOn {
		err = s.bufWriter.Flush()
	}
	if err != nil {
		s.stats.IncrementFailed()
		return err
	}
	s.stats.IncrementProcessed()
	return nil
}

// process is the single consumer of the queue
func (s *FileSink) process() {
	defer s.wg.Done()

	for {
		select {
		case r := <-s.queue:
			s.writeRecord(r)
			core.PutRecord(r)
			s.drainAvailable()
		case reply := <-s.flushReq:
			// Everything queued before the request is already in the channel
			s.drainAvailable()
			s.mu.Lock()
			err := s.bufWriter.Flush()
			s.mu.Unlock()
			reply <- err
		case <-s.closed:
			deadline := time.After(s.drainTimeout)
			for {
				select {
				case r := <-s.queue:
					s.writeRecord(r)
					core.PutRecord(r)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

// drainAvailable writes queued records without blocking
func (s *FileSink) drainAvailable() {
	for {
		select {
		case r := <-s.queue:
			s.writeRecord(r)
			core.PutRecord(r)
		default:
			return
		}
	}
}

// Flush waits until all records queued before the call are written and
// the file writer is flushed, or until DrainTimeout elapses.
func (s *FileSink) Flush() error {
	reply := make(chan error, 1)
	timeout := time.NewTimer(s.drainTimeout)
	defer timeout.Stop()

	select {
	case s.flushReq <- reply:
	case <-s.closed:
		return sink.ErrClosed
	case <-timeout.C:
		return errFlushTimeout
	}

	select {
	case err := <-reply:
		return err
	case <-timeout.C:
		return errFlushTimeout
	}
}

// Close drains the queue with a timeout, then flushes, syncs and closes
// the file. Later calls return the first result.
func (s *FileSink) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.wg.Wait()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.closeErr = multierr.Combine(
			s.bufWriter.Flush(),
			s.file.Sync(),
			s.file.Close(),
		)
	})
	return s.closeErr
}

// Stats returns a snapshot of the current statistics
func (s *FileSink) Stats() sink.Snapshot {
	return s.stats.GetSnapshot()
}
