package asyncsink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
	"github.com/philipp01105/streamlog/sink"
	"github.com/philipp01105/streamlog/sink/stdsink"
)

// DefaultQueueSize is the default capacity of the file queue.
const DefaultQueueSize = 8192

// Config holds configuration for the async sink
type Config struct {
	// Filename is the log file; empty selects the console
	Filename string
	// Console is the console destination when Filename is empty (default: os.Stdout)
	Console io.Writer
	// Formatter renders the line (default: TextFormatter)
	Formatter formatter.Formatter
	// QueueSize is the capacity of the file queue (default: 8192)
	QueueSize int
	// OverflowPolicy defines per-severity overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Severity]sink.OverflowPolicy
	// FlushOn is the lowest severity that flushes the file writer when written
	FlushOn core.Severity
	// BlockTimeout is the timeout for the Block overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds Flush and the queue drain on Close (default: 5s)
	DrainTimeout time.Duration
	// CoarseClock stamps records from the cached coarse clock
	CoarseClock bool
}

// DefaultConfig returns a console configuration that flushes on warnings.
func DefaultConfig() Config {
	return Config{
		QueueSize:      DefaultQueueSize,
		OverflowPolicy: sink.DefaultLevelPolicy(),
		FlushOn:        core.WarningSeverity,
		BlockTimeout:   100 * time.Millisecond,
		DrainTimeout:   5 * time.Second,
	}
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = sink.DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// New creates the async sink. It returns a synchronous console sink when
// cfg.Filename is empty and a *FileSink otherwise.
func New(cfg Config) (sink.Sink, error) {
	applyDefaults(&cfg)

	if cfg.Filename == "" {
		console := cfg.Console
		if console == nil {
			console = os.Stdout
		}
		return stdsink.New(stdsink.Config{
			Stdout:      console,
			Stderr:      console,
			Formatter:   cfg.Formatter,
			CoarseClock: cfg.CoarseClock,
		}), nil
	}

	fs, err := NewFileSink(cfg)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// NewFileSink opens cfg.Filename for appending and starts the writer
// goroutine.
func NewFileSink(cfg Config) (*FileSink, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("asyncsink: filename is required")
	}
	applyDefaults(&cfg)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("asyncsink: %w", err)
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("asyncsink: %w", err)
	}

	return newFileSink(cfg, file), nil
}

var errFlushTimeout = errors.New("asyncsink: flush timed out")
