package stdsink

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
	"github.com/philipp01105/streamlog/sink"
)

// Config holds configuration for the std sink
type Config struct {
	// Stdout receives info records (default: os.Stdout)
	Stdout io.Writer
	// Stderr receives warning, error and fatal records (default: os.Stderr)
	Stderr io.Writer
	// Formatter renders the line (default: TextFormatter)
	Formatter formatter.Formatter
	// CoarseClock stamps records from the cached coarse clock
	CoarseClock bool
	// ConcurrentWriter indicates both writers support concurrent Write
	// calls. Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// output is one destination stream. mu is shared when stdout and stderr
// are the same writer.
type output struct {
	w              io.Writer
	mu             *sync.Mutex
	concurrentSafe bool
}

func (o *output) write(p []byte) error {
	if o.concurrentSafe {
		_, err := o.w.Write(p)
		return err
	}
	o.mu.Lock()
	_, err := o.w.Write(p)
	o.mu.Unlock()
	return err
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the sink to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// Sink writes formatted records to stdout and stderr.
type Sink struct {
	stdout    *output
	stderr    *output
	formatter formatter.Formatter
	clock     core.Clock
	stats     *sink.Stats
	closed    chan struct{}
	closeOnce sync.Once
}

// New creates a std sink.
func New(cfg Config) *Sink {
	applyDefaults(&cfg)

	outMu := &sync.Mutex{}
	stdout := &output{
		w:              cfg.Stdout,
		mu:             outMu,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Stdout),
	}
	stderr := stdout
	if cfg.Stderr != cfg.Stdout {
		stderr = &output{
			w:              cfg.Stderr,
			mu:             &sync.Mutex{},
			concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Stderr),
		}
	}

	return &Sink{
		stdout:    stdout,
		stderr:    stderr,
		formatter: cfg.Formatter,
		clock:     core.NewClock(cfg.CoarseClock),
		stats:     sink.NewStats(),
		closed:    make(chan struct{}),
	}
}

// Write formats the record and writes it to the stream for its severity.
func (s *Sink) Write(sev core.Severity, msg []byte) error {
	select {
	case <-s.closed:
		return sink.ErrClosed
	default:
	}

	out := s.stderr
	if sev == core.InfoSeverity {
		out = s.stdout
	}

	r := core.Record{
		Time:     s.clock(),
		Severity: sev,
		ThreadID: core.ThreadID(),
		Message:  msg,
	}
	buf := formatter.GetBuffer()
	s.formatter.Format(&r, buf)
	err := out.write(buf.Bytes())
	formatter.PutBuffer(buf)

	if err != nil {
		s.stats.IncrementFailed()
		return err
	}
	s.stats.IncrementProcessed()
	return nil
}

type flusher interface {
	Flush() error
}

// Flush flushes writers that buffer (for example a *bufio.Writer).
// Console files are unbuffered and left alone.
func (s *Sink) Flush() error {
	if err := flushOutput(s.stdout); err != nil {
		return err
	}
	if s.stderr != s.stdout {
		return flushOutput(s.stderr)
	}
	return nil
}

func flushOutput(o *output) error {
	f, ok := o.w.(flusher)
	if !ok {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return f.Flush()
}

// Close flushes the writers. The writers themselves are not closed.
func (s *Sink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.Flush()
		close(s.closed)
	})
	return err
}

// Stats returns a snapshot of the current statistics
func (s *Sink) Stats() sink.Snapshot {
	return s.stats.GetSnapshot()
}
